package service

import "errors"

var (
	// ErrSubmissionFailed wraps any failure of the order store while submitting a draft.
	ErrSubmissionFailed = errors.New("order submission failed")
	// ErrPricingUnavailable is returned when no discount rules were loaded.
	ErrPricingUnavailable = errors.New("pricing engine not configured")
	// ErrImagesUnavailable is returned when Google Drive credentials are missing.
	ErrImagesUnavailable = errors.New("product images not configured")
	ErrInvalidImageSize  = errors.New("invalid image size")
	ErrNoImage           = errors.New("product has no image")
)
