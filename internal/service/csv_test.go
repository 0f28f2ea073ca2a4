package service_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mmttc/workshop-registration/internal/domain"
	"github.com/mmttc/workshop-registration/internal/service"
)

func TestBuildCSVEmpty(t *testing.T) {
	_, err := service.BuildCSV(nil)
	if !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestBuildCSVHeaderAndRow(t *testing.T) {
	created := time.Date(2025, 12, 1, 15, 4, 5, 0, time.UTC)
	regs := []domain.Registration{{
		ID:            "abc-123",
		Name:          "Asha Verma",
		Email:         "asha@example.com",
		Phone:         "9876543210",
		DateOfBirth:   "01/01/1990",
		WhatsApp:      "9876543210",
		Affiliation:   "XYZ College",
		Department:    "Physics",
		Designation:   domain.DesignationFaculty,
		ContactMethod: domain.ContactEmail,
		CreatedAt:     created,
	}}

	out, err := service.BuildCSV(regs)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}

	wantHeader := "ID,Name,Email,Phone,DOB,WhatsApp,Affiliation,Department,Designation,Contact Method,Registration Date"
	if lines[0] != wantHeader {
		t.Fatalf("header = %q, want %q", lines[0], wantHeader)
	}

	wantRow := `"abc-123","Asha Verma","asha@example.com","9876543210","01/01/1990","9876543210","XYZ College","Physics","Faculty","Email","12/1/2025, 3:04:05 PM"`
	if lines[1] != wantRow {
		t.Fatalf("row = %q, want %q", lines[1], wantRow)
	}
}

// The export wraps fields in quotes but does not escape embedded quotes or
// commas; that behavior is part of the documented format.
func TestBuildCSVDoesNotEscapeEmbeddedQuotes(t *testing.T) {
	regs := []domain.Registration{{
		ID:    "r1",
		Name:  `Asha "AV" Verma`,
		Email: "asha@example.com",
	}}

	out, err := service.BuildCSV(regs)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(out, `"Asha "AV" Verma"`) {
		t.Fatalf("embedded quotes must pass through unescaped, got %q", out)
	}
}
