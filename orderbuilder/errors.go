package orderbuilder

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptySelection       = errors.New("no valid variant with quantity selected")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrQuantityTooLarge     = fmt.Errorf("%w: too large", ErrInvalidQuantity)
	ErrNegativeQuantity     = fmt.Errorf("%w: cannot be negative", ErrInvalidQuantity)
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrUnknownVariant       = errors.New("variant not offered by product")
	ErrMissingRequiredField = errors.New("missing required field")
)

// MissingFieldsError lists every required field absent at submission time.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return ErrMissingRequiredField.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingRequiredField
}
