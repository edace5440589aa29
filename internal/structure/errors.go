package structure

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrOutOfRange is the sentinel underlying every position-range failure.
var ErrOutOfRange = errors.New("value out of range")

// RangeError reports a position-valued field outside its declared interval.
// It is returned at construction/registration time; queries never produce it.
type RangeError struct {
	Entity string      // "subplot", "reversal", "narrative device", ...
	Field  string      // struct field that failed
	Value  interface{} // offending value
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s field %s out of range [0,1]: %v", e.Entity, e.Field, e.Value)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// IsOutOfRange reports whether err is a position-range violation.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

var validate = validator.New()

// checkRanges runs struct tag validation and converts the first failure into
// a RangeError for the named entity.
func checkRanges(entity string, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &RangeError{Entity: entity, Field: verrs[0].Field(), Value: verrs[0].Value()}
	}
	return fmt.Errorf("validating %s: %w", entity, err)
}
