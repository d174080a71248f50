package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/presence/internal/attendance"
	"github.com/MrJamesThe3rd/presence/internal/encoding"
)

// ErrEmptyFile is returned by ReadCSV when the input holds no header line.
var ErrEmptyFile = errors.New("csv file is empty")

// Table is a CSV export read back from disk.
type Table struct {
	Charset string
	Header  []string
	Records [][]string
}

// Layout guesses the export layout from the header.
func (t *Table) Layout() (attendance.Layout, bool) {
	if len(t.Header) < 6 {
		return 0, false
	}

	switch t.Header[5] {
	case "Action":
		return attendance.LayoutActions, true
	case "Check In":
		if len(t.Header) > 7 {
			return attendance.LayoutPaired, true
		}

		return attendance.LayoutCheckIns, true
	case "Check Out":
		return attendance.LayoutCheckOuts, true
	}

	return 0, false
}

// ReadCSV parses an export, tolerating the byte order mark and files that
// were re-saved in another charset.
func ReadCSV(r io.Reader) (*Table, error) {
	utf8Reader, charset, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(utf8Reader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	return &Table{
		Charset: charset,
		Header:  records[0],
		Records: records[1:],
	}, nil
}
