package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrConfig indicates required configuration is missing or empty.
	// It is raised before any input is read or any request is made.
	ErrConfig = errors.New("invalid configuration")

	// ErrValidation indicates the input document or mapping table cannot be
	// used: no name mapping, an empty name, or a malformed mapping file.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidResponse indicates a successful CRM response whose body did
	// not carry the expected payload.
	ErrInvalidResponse = errors.New("invalid response structure")
)
