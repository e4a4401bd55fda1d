package entries

import (
	"errors"
	"fmt"
)

// ErrUnknownField matches every *FieldError via errors.Is
var ErrUnknownField = errors.New("unknown field")

// FieldError is returned when a field name is not in the allow-list, or when
// Top is asked about an empty collection.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("Field '%s' does not exist, or no log entries found.", e.Field)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrUnknownField
}
