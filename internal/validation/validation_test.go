package validation_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/presence/internal/validation"
)

type shift struct {
	Start string `json:"start" validate:"required,datetime=15:04"`
	End   string `json:"end" validate:"required,datetime=15:04"`
	Break int    `json:"break" validate:"gte=0"`
}

type window struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func init() {
	validation.RegisterStructValidation(func(sl validator.StructLevel) {
		w := sl.Current().Interface().(window)
		if w.To <= w.From {
			sl.ReportError(w.To, "to", "To", "gtfield", "from")
		}
	}, window{})
}

func TestStruct(t *testing.T) {
	type testCase struct {
		name    string
		in      any
		wantMsg string
	}

	tests := []testCase{
		{name: "Valid", in: shift{Start: "09:00", End: "17:30"}},
		{name: "Missing", in: shift{End: "17:30"}, wantMsg: "start is required"},
		{name: "Bad Format", in: shift{Start: "9am", End: "17:30"}, wantMsg: "start must be a time in 15:04 format"},
		{
			name:    "Several",
			in:      shift{Start: "09:00", End: "25:00", Break: -1},
			wantMsg: "end must be a time in 15:04 format; break must be at least 0",
		},
		{name: "Struct Rule", in: window{From: 5, To: 3}, wantMsg: "to must be after from"},
		{name: "Struct Rule Valid", in: window{From: 3, To: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Struct(tt.in)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, validation.ErrInvalid)
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}
