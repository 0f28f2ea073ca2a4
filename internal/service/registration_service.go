package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mmttc/workshop-registration/internal/domain"
	"github.com/mmttc/workshop-registration/internal/platform/mailer"
	"github.com/mmttc/workshop-registration/internal/repo/postgres"
	"github.com/mmttc/workshop-registration/pkg/config"
	"github.com/mmttc/workshop-registration/pkg/events"
	"github.com/mmttc/workshop-registration/pkg/logger"
)

type RegistrationService interface {
	Submit(ctx context.Context, req *domain.RegistrationReq) (*domain.Registration, error)
	SeatsRemaining(ctx context.Context) (int, error)
	List(ctx context.Context, search string) ([]domain.Registration, int, error)
	Delete(ctx context.Context, id string) error
	ExportCSV(ctx context.Context) (string, error)
}

type registrationService struct {
	repo     postgres.RegistrationsRepo
	emailSvc mailer.Service
	bus      events.Publisher
	workshop config.WorkshopConfig
}

func NewRegistrationService(
	repo postgres.RegistrationsRepo,
	emailSvc mailer.Service,
	bus events.Publisher,
	workshop config.WorkshopConfig,
) RegistrationService {
	return &registrationService{
		repo:     repo,
		emailSvc: emailSvc,
		bus:      bus,
		workshop: workshop,
	}
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

// validate is first-failure-wins; the check order is fixed so the message a
// user sees for a given form state never changes.
func validate(req *domain.RegistrationReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return domain.NewValidationError("name", "Name is required")
	}
	if !emailRe.MatchString(req.Email) {
		return domain.NewValidationError("email", "Valid email required")
	}
	if !phoneRe.MatchString(req.Phone) {
		return domain.NewValidationError("phone", "Valid phone number required")
	}
	if strings.TrimSpace(req.DateOfBirth) == "" {
		return domain.NewValidationError("dob", "Date of birth is required")
	}
	if strings.TrimSpace(req.WhatsApp) == "" {
		return domain.NewValidationError("whatsapp", "WhatsApp number is required")
	}
	if strings.TrimSpace(req.Department) == "" {
		return domain.NewValidationError("department", "Department is required")
	}
	if strings.TrimSpace(req.Designation) == "" {
		return domain.NewValidationError("designation", "Designation is required")
	}
	if strings.TrimSpace(req.Affiliation) == "" {
		return domain.NewValidationError("affiliation", "Affiliation is required")
	}
	if _, ok := domain.ParseDesignation(req.Designation); !ok {
		return domain.NewValidationError("designation", "Invalid designation")
	}
	if _, ok := domain.ParseContactMethod(req.ContactMethod); !ok {
		return domain.NewValidationError("contactMethod", "Please select a contact method")
	}
	return nil
}

// Submit runs the registration workflow: validate, capacity check, duplicate
// check, create, notify. Each step short-circuits on failure and no write
// happens before all checks pass. The capacity and duplicate pre-checks are
// advisory reads; the store enforces both again inside the insert, so a race
// lost between check and create still comes back as the matching domain error.
func (s *registrationService) Submit(ctx context.Context, req *domain.RegistrationReq) (*domain.Registration, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	if s.workshop.Capacity-total <= 0 {
		return nil, domain.ErrCapacityFull
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		logger.ErrorContext(ctx, "Duplicate check failed", "error", err, "email", req.Email)
		return nil, domain.ErrVerifyUnavailable
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	reg, err := s.repo.Create(ctx, req, s.workshop.Capacity)
	if err != nil {
		return nil, err
	}

	// The registration is successful from here on. Notification failures are
	// logged and swallowed; nothing rolls back the created row.
	s.notify(ctx, reg)

	return reg, nil
}

func (s *registrationService) notify(ctx context.Context, reg *domain.Registration) {
	event := events.RegistrationCreatedEvent{
		RegistrationID: reg.ID,
		Name:           reg.Name,
		Email:          reg.Email,
		Phone:          reg.Phone,
		Affiliation:    reg.Affiliation,
		Department:     reg.Department,
		Designation:    string(reg.Designation),
		ContactMethod:  string(reg.ContactMethod),
		CreatedAt:      reg.CreatedAt,
	}
	if err := s.bus.Publish(ctx, events.RegistrationCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish registration created event", "error", err, "registration_id", reg.ID)
	}

	err := mailer.SendConfirmation(s.emailSvc, mailer.Confirmation{
		RegistrationID: reg.ID,
		Name:           reg.Name,
		Email:          reg.Email,
		Phone:          reg.Phone,
		DateOfBirth:    reg.DateOfBirth,
		WhatsApp:       reg.WhatsApp,
		Affiliation:    reg.Affiliation,
		Department:     reg.Department,
		Designation:    string(reg.Designation),
		ContactMethod:  string(reg.ContactMethod),
		WorkshopTitle:  s.workshop.Title,
		WorkshopDates:  s.workshop.Dates,
	})
	if err != nil {
		logger.WarnContext(ctx, "Confirmation email not sent", "error", err, "registration_id", reg.ID)
	}
}

// SeatsRemaining is recomputed from a count query on every call, never
// decremented locally, to stay consistent with concurrent writers.
func (s *registrationService) SeatsRemaining(ctx context.Context) (int, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	if remaining := s.workshop.Capacity - total; remaining > 0 {
		return remaining, nil
	}
	return 0, nil
}

// List returns the newest registrations, capped at the admin page size, with
// the total count. The search term is a case-insensitive substring match
// against name or email, applied to the fetched page only.
func (s *registrationService) List(ctx context.Context, search string) ([]domain.Registration, int, error) {
	regs, total, err := s.repo.List(ctx, s.workshop.AdminPageSize)
	if err != nil {
		return nil, 0, err
	}
	return Filter(regs, search), total, nil
}

func Filter(regs []domain.Registration, term string) []domain.Registration {
	if term == "" {
		return regs
	}
	term = strings.ToLower(term)
	out := make([]domain.Registration, 0, len(regs))
	for _, reg := range regs {
		if strings.Contains(strings.ToLower(reg.Name), term) ||
			strings.Contains(strings.ToLower(reg.Email), term) {
			out = append(out, reg)
		}
	}
	return out
}

func (s *registrationService) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}

	if err := s.bus.Publish(ctx, events.RegistrationDeleted, events.RegistrationDeletedEvent{
		RegistrationID: id,
		DeletedAt:      time.Now(),
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to publish registration deleted event", "error", err, "registration_id", id)
	}
	return nil
}

func (s *registrationService) ExportCSV(ctx context.Context) (string, error) {
	regs, _, err := s.repo.List(ctx, s.workshop.AdminPageSize)
	if err != nil {
		return "", err
	}
	return BuildCSV(regs)
}
