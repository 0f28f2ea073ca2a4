package service

import (
	"strings"

	"github.com/mmttc/workshop-registration/internal/domain"
)

// ExportFilename is the download name the admin dashboard expects.
const ExportFilename = "workshop-registrations.csv"

var csvHeaders = []string{
	"ID", "Name", "Email", "Phone", "DOB", "WhatsApp",
	"Affiliation", "Department", "Designation", "Contact Method", "Registration Date",
}

// BuildCSV renders the fixed 11-column export. Every field is wrapped in
// double quotes with empty values coerced to "", and embedded quotes or
// commas are NOT escaped beyond the wrapping quotes. That fragility is part
// of the documented export format consumers already parse; encoding/csv
// would change it.
func BuildCSV(regs []domain.Registration) (string, error) {
	if len(regs) == 0 {
		return "", domain.ErrNoData
	}

	lines := make([]string, 0, len(regs)+1)
	lines = append(lines, strings.Join(csvHeaders, ","))

	for _, r := range regs {
		fields := []string{
			r.ID,
			r.Name,
			r.Email,
			r.Phone,
			r.DateOfBirth,
			r.WhatsApp,
			r.Affiliation,
			r.Department,
			string(r.Designation),
			string(r.ContactMethod),
			r.CreatedAt.Format("1/2/2006, 3:04:05 PM"),
		}
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = `"` + f + `"`
		}
		lines = append(lines, strings.Join(quoted, ","))
	}

	return strings.Join(lines, "\n"), nil
}
