package variants

import "errors"

var (
	ErrDuplicateGroup      = errors.New("attribute group already exists")
	ErrDuplicateValue      = errors.New("value already exists in attribute group")
	ErrGroupNotFound       = errors.New("attribute group not found")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrNegativeStock       = errors.New("stock quantity cannot be negative")
	ErrCombinationNotFound = errors.New("combination not found")
	ErrUnknownEvent        = errors.New("unknown matrix event")
)
