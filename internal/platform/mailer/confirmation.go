package mailer

import (
	"fmt"
	"strings"
)

const ConfirmationSubject = "MMTTC Workshop Registration Confirmation"

// Confirmation is the canonical field set for the registration confirmation
// email. Every provider adapter receives the same schema.
type Confirmation struct {
	RegistrationID string
	Name           string
	Email          string
	Phone          string
	DateOfBirth    string
	WhatsApp       string
	Affiliation    string
	Department     string
	Designation    string
	ContactMethod  string
	WorkshopTitle  string
	WorkshopDates  string
}

// SendConfirmation renders the confirmation and sends it through svc.
// Callers treat failures as log-only; a registration is successful once
// persisted, whether or not this email goes out.
func SendConfirmation(svc Service, c Confirmation) error {
	_, err := svc.Send(c.Email, c.Name, ConfirmationSubject, confirmationText(c), confirmationHTML(c))
	return err
}

func confirmationText(c Confirmation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", c.Name)
	fmt.Fprintf(&b, "Thank you for registering for the workshop on %q (%s).\n\n", c.WorkshopTitle, c.WorkshopDates)
	b.WriteString("Here are your registration details:\n")
	fmt.Fprintf(&b, "Registration ID: %s\n", c.RegistrationID)
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	fmt.Fprintf(&b, "Date of Birth: %s\n", c.DateOfBirth)
	fmt.Fprintf(&b, "WhatsApp: %s\n", c.WhatsApp)
	fmt.Fprintf(&b, "Affiliation: %s\n", c.Affiliation)
	fmt.Fprintf(&b, "Department: %s\n", c.Department)
	fmt.Fprintf(&b, "Designation: %s\n", c.Designation)
	fmt.Fprintf(&b, "Contact Method: %s\n", c.ContactMethod)
	b.WriteString("\nPlease note that participation is based on selection. The list of selected candidates will be communicated by December 12, 2025.\n")
	b.WriteString("\nRegards,\nMMTTC, University of Jammu\n")
	return b.String()
}

func confirmationHTML(c Confirmation) string {
	return fmt.Sprintf(
		`<p>Hello %s,</p>
<p>Thank you for registering for the workshop on <b>%s</b> (%s).</p>
<p>Your registration ID is <b>%s</b>. Participation is based on selection; selected candidates will be notified by December 12, 2025.</p>
<p>Regards,<br>MMTTC, University of Jammu</p>`,
		c.Name, c.WorkshopTitle, c.WorkshopDates, c.RegistrationID,
	)
}
