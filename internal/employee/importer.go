package employee

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/brandingpioneers/hr-management/internal"
)

// ImportResult is the per-batch outcome. Row failures are collected, not
// fatal; a sheet of 100 rows with 3 bad ones still imports 97.
type ImportResult struct {
	ImportedCount int      `json:"imported_count"`
	TotalRows     int      `json:"total_rows"`
	Errors        []string `json:"errors"`
}

var requiredColumns = []string{"name", "employee_code", "email", "department", "manager", "start_date"}

// columnDisplayNames are the header spellings users see in the template and
// in error messages.
var columnDisplayNames = map[string]string{
	"name":          "Name",
	"employee_code": "Employee ID",
	"email":         "Email",
	"department":    "Department",
	"manager":       "Manager",
	"start_date":    "Start Date",
}

// headerAliases maps the header spellings seen in real uploads onto
// canonical column keys.
var headerAliases = map[string]string{
	"name":          "name",
	"employeename":  "name",
	"fullname":      "name",
	"employeeid":    "employee_code",
	"employeecode":  "employee_code",
	"empid":         "employee_code",
	"empcode":       "employee_code",
	"email":         "email",
	"emailaddress":  "email",
	"department":    "department",
	"dept":          "department",
	"manager":       "manager",
	"reportingto":   "manager",
	"startdate":     "start_date",
	"joiningdate":   "start_date",
	"dateofjoining": "start_date",
	"position":      "position",
	"designation":   "position",
	"role":          "position",
	"phone":         "phone",
	"phonenumber":   "phone",
	"mobile":        "phone",
	"birthday":      "birthday",
	"dateofbirth":   "birthday",
	"dob":           "birthday",
	"status":        "status",
}

var importDateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"02-Jan-06",
	"Jan 2, 2006",
}

type Importer struct {
	service *Service
	logger  *slog.Logger
}

func NewImporter(service *Service, logger *slog.Logger) *Importer {
	return &Importer{service: service, logger: logger}
}

// Import reads an uploaded sheet and creates one employee per data row.
func (i *Importer) Import(ctx context.Context, actorID, actorEmail, filename string, file io.Reader) (*ImportResult, error) {
	rows, err := readRows(filename, file)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, internal.NewBadRequestError("The file contains no rows", internal.ErrCodeImportUnreadable)
	}

	columns, missing := mapHeader(rows[0])
	if len(missing) > 0 {
		display := make([]string, len(missing))
		for idx, col := range missing {
			display[idx] = columnDisplayNames[col]
		}
		return nil, internal.NewBadRequestError(
			fmt.Sprintf("Missing required columns: %s", strings.Join(display, ", ")),
			internal.ErrCodeImportMissingCols,
		)
	}

	result := &ImportResult{Errors: []string{}}
	for idx, row := range rows[1:] {
		result.TotalRows++
		rowNum := idx + 2

		if isEmptyRow(row) {
			result.TotalRows--
			continue
		}

		dto, err := rowToDTO(row, columns)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		if _, err := i.service.Create(ctx, actorID, actorEmail, dto); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		result.ImportedCount++
	}

	i.logger.Info("employee import finished",
		"file", filename, "imported", result.ImportedCount, "total", result.TotalRows, "failed", len(result.Errors))

	return result, nil
}

const (
	templateSheetName     = "Employee Template"
	instructionsSheetName = "Instructions"
)

// Template produces the downloadable xlsx: the "Employee Template" sheet with
// the expected header row and one example entry, plus an instructions sheet.
func (i *Importer) Template() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), templateSheetName); err != nil {
		return nil, err
	}

	header := []interface{}{"Name", "Employee ID", "Email", "Department", "Position", "Manager", "Phone", "Start Date", "Birthday"}
	example := []interface{}{"Jane Doe", "BP001", "jane.doe@example.com", "Engineering", "Developer", "John Smith", "+1-555-0100", "2024-01-15", "1995-06-20"}

	if err := f.SetSheetRow(templateSheetName, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(templateSheetName, "A2", &example); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(instructionsSheetName); err != nil {
		return nil, err
	}
	notes := []string{
		"How to fill the Employee Template sheet:",
		"1. Name, Employee ID, Email, Department, Manager and Start Date are required.",
		"2. Position, Phone and Birthday are optional.",
		"3. Dates use YYYY-MM-DD; common spreadsheet date formats are also accepted.",
		"4. Employee ID and Email must be unique across the company.",
		"5. Replace the example row with your own data before uploading.",
	}
	for idx, note := range notes {
		cell := fmt.Sprintf("A%d", idx+1)
		if err := f.SetCellValue(instructionsSheetName, cell, note); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func readRows(filename string, file io.Reader) ([][]string, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, internal.NewBadRequestError("Could not read the CSV file", internal.ErrCodeImportUnreadable)
		}
		return rows, nil
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		f, err := excelize.OpenReader(file)
		if err != nil {
			return nil, internal.NewBadRequestError("Could not read the spreadsheet", internal.ErrCodeImportUnreadable)
		}
		defer f.Close()

		rows, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, internal.NewBadRequestError("Could not read the spreadsheet", internal.ErrCodeImportUnreadable)
		}
		return rows, nil
	default:
		return nil, internal.NewBadRequestError("Unsupported file type, expected .xlsx, .xls or .csv", internal.ErrCodeImportUnreadable)
	}
}

// mapHeader resolves the header row to canonical column indexes and reports
// which required columns are absent.
func mapHeader(header []string) (map[string]int, []string) {
	columns := make(map[string]int)
	for idx, cell := range header {
		key := normalizeHeader(cell)
		if canonical, ok := headerAliases[key]; ok {
			if _, exists := columns[canonical]; !exists {
				columns[canonical] = idx
			}
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	return columns, missing
}

func normalizeHeader(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	cell = strings.NewReplacer(" ", "", "_", "", "-", "", ".", "").Replace(cell)
	return cell
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func rowToDTO(row []string, columns map[string]int) (CreateEmployeeDTO, error) {
	dto := CreateEmployeeDTO{
		Name:         cellAt(row, columns["name"]),
		EmployeeCode: cellAt(row, columns["employee_code"]),
		Email:        cellAt(row, columns["email"]),
		Department:   cellAt(row, columns["department"]),
		Manager:      cellAt(row, columns["manager"]),
	}

	if idx, ok := columns["position"]; ok {
		dto.Position = cellAt(row, idx)
	}
	if idx, ok := columns["phone"]; ok {
		dto.Phone = cellAt(row, idx)
	}
	if idx, ok := columns["status"]; ok {
		dto.Status = Status(strings.ToLower(cellAt(row, idx)))
	}

	startDate, err := normalizeImportDate(cellAt(row, columns["start_date"]))
	if err != nil {
		return dto, fmt.Errorf("invalid start date %q", cellAt(row, columns["start_date"]))
	}
	dto.StartDate = startDate

	if idx, ok := columns["birthday"]; ok {
		raw := cellAt(row, idx)
		if raw != "" {
			birthday, err := normalizeImportDate(raw)
			if err != nil {
				return dto, fmt.Errorf("invalid birthday %q", raw)
			}
			dto.Birthday = birthday
		}
	}

	return dto, nil
}

// normalizeImportDate accepts the date spellings spreadsheets produce and
// returns the canonical YYYY-MM-DD form.
func normalizeImportDate(value string) (string, error) {
	if value == "" {
		return "", fmt.Errorf("empty date")
	}
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(dateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date format")
}
