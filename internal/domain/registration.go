package domain

import "time"

type Designation string

const (
	DesignationFaculty       Designation = "Faculty"
	DesignationAcademicAdmin Designation = "Academic Administrator"
	DesignationOfficer       Designation = "Officer"
	DesignationOther         Designation = "Other"
)

func ParseDesignation(s string) (Designation, bool) {
	switch Designation(s) {
	case DesignationFaculty, DesignationAcademicAdmin, DesignationOfficer, DesignationOther:
		return Designation(s), true
	default:
		return "", false
	}
}

type ContactMethod string

const (
	ContactEmail ContactMethod = "Email"
	ContactPhone ContactMethod = "Phone"
	ContactBoth  ContactMethod = "Both"
)

func ParseContactMethod(s string) (ContactMethod, bool) {
	switch ContactMethod(s) {
	case ContactEmail, ContactPhone, ContactBoth:
		return ContactMethod(s), true
	default:
		return "", false
	}
}

// Registration is the sole persisted entity. The ID is assigned by the store
// on create; there is no update operation in its lifecycle.
type Registration struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	DateOfBirth   string        `json:"dob"`
	WhatsApp      string        `json:"whatsapp"`
	Affiliation   string        `json:"affiliation"`
	Department    string        `json:"department"`
	Designation   Designation   `json:"designation"`
	ContactMethod ContactMethod `json:"contactMethod"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// RegistrationReq carries raw form input; enum fields stay strings until
// validation admits them.
type RegistrationReq struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	DateOfBirth   string `json:"dob"`
	WhatsApp      string `json:"whatsapp"`
	Affiliation   string `json:"affiliation"`
	Department    string `json:"department"`
	Designation   string `json:"designation"`
	ContactMethod string `json:"contactMethod"`
}

type AdminUser struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
