package estimate

import "errors"

// Error classes. Every failure returned by a strategy wraps exactly one of
// them so that callers can pick a response status with errors.Is.
var (
	// ErrInvalidInput: missing photo, malformed data URI or empty dish name.
	// Nothing was sent to any external service.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtraction: the OCR pre-pass found no text on the label photo.
	ErrExtraction = errors.New("no text could be extracted from the label; retake the photo with better lighting and focus")

	// ErrTextDetection: the OCR service itself failed (network, quota, bad
	// credentials). Distinct from ErrExtraction, which means it ran and saw
	// nothing.
	ErrTextDetection = errors.New("text detection service failed, please try again")

	// ErrEngine: the reasoning engine failed or answered with something that
	// does not satisfy the nutrition schema.
	ErrEngine = errors.New("could not estimate nutrients, please try again")
)
