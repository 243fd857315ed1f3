package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMissingField is returned when a record lacks an attribute scoring depends on.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField is returned when an attribute is present but out of range.
	ErrInvalidField = errors.New("invalid field")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Validate checks that the candidate carries everything the matcher reads.
func (c *Candidate) Validate() error {
	return structError("candidate", c.ID, validate.Struct(c))
}

// Validate checks that the job carries both qualification bounds.
func (j *Job) Validate() error {
	return structError("job", j.ID, validate.Struct(j))
}

func structError(kind, id string, err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating %s: %w", kind, err)
	}

	subject := kind
	if id != "" {
		subject = fmt.Sprintf("%s %s", kind, id)
	}

	// The first failing field decides the class of the error.
	first := fieldErrs[0]
	if first.Tag() == "required" {
		return fmt.Errorf("%s: %w: %s", subject, ErrMissingField, first.Field())
	}
	return fmt.Errorf("%s: %w: %s fails %q", subject, ErrInvalidField, first.Field(), first.Tag())
}
