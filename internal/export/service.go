package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/MrJamesThe3rd/presence/internal/attendance"
)

// NoRowsNotice is the message shown to the user when there is nothing to export.
const NoRowsNotice = "No attendance records to export"

// ErrNoRows is returned when an export is requested for an empty row set.
var ErrNoRows = errors.New(NoRowsNotice)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Format is the file type of an export.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" and "xlsx"; an empty string means csv.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatCSV, "":
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}

	return "", fmt.Errorf("unknown export format %q", s)
}

// File is a rendered export.
type File struct {
	Name        string
	ContentType string
	Format      Format
	Layout      attendance.Layout
	Scope       attendance.Scope
	Rows        int
	Data        []byte
}

// sheetName is the single worksheet of XLSX exports.
const sheetName = "Attendance"

// Service renders view rows into downloadable files.
type Service struct {
	now func() time.Time
}

// NewService creates a Service. now supplies the export date used in
// filenames; nil means time.Now.
func NewService(now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{now: now}
}

// Export renders rows in the requested format.
func (s *Service) Export(format Format, rows []attendance.Row, scope attendance.Scope, facets attendance.Facets) (*File, error) {
	if format == FormatXLSX {
		return s.XLSX(rows, scope, facets)
	}

	return s.CSV(rows, scope, facets)
}

// CSV renders rows as a UTF-8 CSV file with a leading byte order mark.
// The column set follows the layout of facets.
func (s *Service) CSV(rows []attendance.Row, scope attendance.Scope, facets attendance.Facets) (*File, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	layout := facets.Layout()

	var buf bytes.Buffer

	w := transform.NewWriter(&buf, unicode.UTF8BOM.NewEncoder())

	if err := gocsv.Marshal(csvRows(rows, layout), w); err != nil {
		return nil, fmt.Errorf("marshalling csv: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encoding csv: %w", err)
	}

	return &File{
		Name:        Filename(scope, layout, s.now(), FormatCSV),
		ContentType: ContentTypeCSV,
		Format:      FormatCSV,
		Layout:      layout,
		Scope:       scope,
		Rows:        len(rows),
		Data:        buf.Bytes(),
	}, nil
}

// XLSX renders rows as a single-sheet workbook with the same columns as CSV.
func (s *Service) XLSX(rows []attendance.Row, scope attendance.Scope, facets attendance.Facets) (*File, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	layout := facets.Layout()

	table, err := marshalTable(rows, layout)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	for i, record := range table {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("resolving cell: %w", err)
		}

		values := make([]any, len(record))
		for j, v := range record {
			values[j] = v
		}

		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freezing header: %w", err)
	}

	out, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	return &File{
		Name:        Filename(scope, layout, s.now(), FormatXLSX),
		ContentType: ContentTypeXLSX,
		Format:      FormatXLSX,
		Layout:      layout,
		Scope:       scope,
		Rows:        len(rows),
		Data:        out.Bytes(),
	}, nil
}

// Save writes file into dir, creating the directory when needed, and
// returns the written path.
func (s *Service) Save(dir string, file *File) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, file.Name)

	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}

// Filename builds the deterministic export name
// attendance-{today|all-time}{layout suffix}-{YYYY-MM-DD}.{ext}.
func Filename(scope attendance.Scope, layout attendance.Layout, date time.Time, format Format) string {
	ext := string(format)
	if ext == "" {
		ext = string(FormatCSV)
	}

	return fmt.Sprintf("attendance-%s%s-%s.%s", scope.Label(), layout.FileSuffix(), date.Format(time.DateOnly), ext)
}

// marshalTable renders rows to header plus records through the same struct
// tags the CSV export uses.
func marshalTable(rows []attendance.Row, layout attendance.Layout) ([][]string, error) {
	out, err := gocsv.MarshalString(csvRows(rows, layout))
	if err != nil {
		return nil, fmt.Errorf("marshalling rows: %w", err)
	}

	table, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading marshalled rows: %w", err)
	}

	return table, nil
}
