package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and substrate layers return
// these (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: key or record does not exist in the store
//   - ErrConflict: write would violate a uniqueness rule
//   - ErrInvalidState: record is in the wrong state for the requested operation
//   - ErrUnavailable: backend temporarily unavailable
//   - ErrOverflow: a checked counter or aggregate would exceed its width
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
	ErrOverflow     = errors.New("arithmetic overflow")
)
