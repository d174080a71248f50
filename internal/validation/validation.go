package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("validation failed")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name, the name callers see.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	return v
}

// FieldError is one failed rule.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (f FieldError) message() string {
	switch f.Tag {
	case "required":
		return f.Field + " is required"
	case "datetime":
		return fmt.Sprintf("%s must be a time in %s format", f.Field, f.Param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", f.Field, f.Param)
	case "gtfield":
		return fmt.Sprintf("%s must be after %s", f.Field, f.Param)
	}

	return fmt.Sprintf("%s is invalid (%s)", f.Field, f.Tag)
}

// Error lists every failed rule of a struct.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.message()
	}

	return strings.Join(msgs, "; ")
}

func (e *Error) Unwrap() error { return ErrInvalid }

// Struct checks s against its validate tags and registered struct rules.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	out := &Error{Fields: make([]FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}

	return out
}

// RegisterStructValidation adds a cross-field rule for the given types.
// Register rules at package initialisation, before the first Struct call.
func RegisterStructValidation(fn validator.StructLevelFunc, types ...any) {
	validate.RegisterStructValidation(fn, types...)
}
