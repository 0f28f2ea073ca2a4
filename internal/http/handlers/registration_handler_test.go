package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mmttc/workshop-registration/internal/domain"
	"github.com/mmttc/workshop-registration/internal/http/handlers"
	"github.com/mmttc/workshop-registration/internal/service"
	"github.com/mmttc/workshop-registration/pkg/config"
)

// ---------- Mocks ----------

type mockRepo struct {
	regs      []domain.Registration
	existsErr error
}

func (m *mockRepo) Count(context.Context) (int, error) { return len(m.regs), nil }

func (m *mockRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, r := range m.regs {
		if r.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) Create(_ context.Context, in *domain.RegistrationReq, capacity int) (*domain.Registration, error) {
	if len(m.regs) >= capacity {
		return nil, domain.ErrCapacityFull
	}
	reg := domain.Registration{
		ID:            fmt.Sprintf("reg-%d", len(m.regs)+1),
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		DateOfBirth:   in.DateOfBirth,
		WhatsApp:      in.WhatsApp,
		Affiliation:   in.Affiliation,
		Department:    in.Department,
		Designation:   domain.Designation(in.Designation),
		ContactMethod: domain.ContactMethod(in.ContactMethod),
		CreatedAt:     time.Now(),
	}
	m.regs = append(m.regs, reg)
	return &reg, nil
}

func (m *mockRepo) List(_ context.Context, limit int) ([]domain.Registration, int, error) {
	out := make([]domain.Registration, len(m.regs))
	copy(out, m.regs)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, len(m.regs), nil
}

func (m *mockRepo) Delete(_ context.Context, id string) (bool, error) {
	for i, r := range m.regs {
		if r.ID == id {
			m.regs = append(m.regs[:i], m.regs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type noopMailer struct{}

func (noopMailer) Send(string, string, string, string, string) (string, error) { return "id", nil }

type noopBus struct{}

func (noopBus) Publish(context.Context, string, interface{}) error { return nil }
func (noopBus) Close() error                                       { return nil }

// ---------- Helpers ----------

func testWorkshop() config.WorkshopConfig {
	return config.WorkshopConfig{
		Capacity:      25,
		Title:         "Python for Artificial Intelligence Driven Teaching & Research",
		Dates:         "December 15–19, 2025",
		AdminPageSize: 500,
	}
}

func newPublicRouter(repo *mockRepo) http.Handler {
	svc := service.NewRegistrationService(repo, noopMailer{}, noopBus{}, testWorkshop())
	h := handlers.NewRegistrationHandler(svc, testWorkshop())

	r := chi.NewRouter()
	r.Post("/registrations", h.Submit)
	r.Get("/seats", h.Seats)
	r.Get("/workshop", h.Workshop)
	return r
}

func submitBody() map[string]string {
	return map[string]string{
		"name":          "Asha Verma",
		"email":         "asha@example.com",
		"phone":         "9876543210",
		"dob":           "01/01/1990",
		"whatsapp":      "9876543210",
		"affiliation":   "XYZ College",
		"department":    "Physics",
		"designation":   "Faculty",
		"contactMethod": "Email",
	}
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// ---------- Tests ----------

func TestSubmitHandlerCreated(t *testing.T) {
	repo := &mockRepo{}
	h := newPublicRouter(repo)

	rec := postJSON(t, h, "/registrations", submitBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Registration   domain.Registration `json:"registration"`
		SeatsRemaining int                 `json:"seats_remaining"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Registration.ID == "" {
		t.Fatal("registration id missing")
	}
	if out.SeatsRemaining != 24 {
		t.Fatalf("seats_remaining = %d, want 24", out.SeatsRemaining)
	}
}

func TestSubmitHandlerValidationMessage(t *testing.T) {
	h := newPublicRouter(&mockRepo{})

	body := submitBody()
	body["designation"] = "Professor"

	rec := postJSON(t, h, "/registrations", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid designation") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestSubmitHandlerDuplicate(t *testing.T) {
	repo := &mockRepo{regs: []domain.Registration{{ID: "reg-1", Email: "asha@example.com"}}}
	h := newPublicRouter(repo)

	rec := postJSON(t, h, "/registrations", submitBody())
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "EMAIL_EXISTS") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestSubmitHandlerCapacityFull(t *testing.T) {
	repo := &mockRepo{}
	for i := 0; i < 25; i++ {
		repo.regs = append(repo.regs, domain.Registration{ID: fmt.Sprintf("reg-%d", i+1), Email: fmt.Sprintf("p%d@example.com", i+1)})
	}
	h := newPublicRouter(repo)

	rec := postJSON(t, h, "/registrations", submitBody())
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "CAPACITY_FULL") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestSubmitHandlerVerifyUnavailable(t *testing.T) {
	repo := &mockRepo{existsErr: fmt.Errorf("store unreachable")}
	h := newPublicRouter(repo)

	rec := postJSON(t, h, "/registrations", submitBody())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please try again") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestSubmitHandlerBadJSON(t *testing.T) {
	h := newPublicRouter(&mockRepo{})

	req := httptest.NewRequest(http.MethodPost, "/registrations", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSeatsHandler(t *testing.T) {
	repo := &mockRepo{regs: []domain.Registration{{ID: "reg-1"}, {ID: "reg-2"}}}
	h := newPublicRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/seats", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var out struct {
		Capacity       int `json:"capacity"`
		SeatsRemaining int `json:"seats_remaining"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Capacity != 25 || out.SeatsRemaining != 23 {
		t.Fatalf("got %+v", out)
	}
}

func TestWorkshopHandler(t *testing.T) {
	h := newPublicRouter(&mockRepo{})

	req := httptest.NewRequest(http.MethodGet, "/workshop", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Python for Artificial Intelligence") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
