package models

import "errors"

// Error kinds for the storage layers. Repository and object-store methods wrap
// one of these so callers can tell failure apart from absence with errors.Is;
// the HTTP layer still flattens them to the legacy empty/zero responses.
var (
	// ErrStoreUnavailable covers pool exhaustion and lost connections.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrStatement covers malformed statements and constraint violations.
	ErrStatement = errors.New("statement failed")

	// ErrObjectStore covers upload-URL issuance and object delete failures.
	ErrObjectStore = errors.New("object store failure")

	// ErrNotFound marks a logically absent record.
	ErrNotFound = errors.New("not found")
)
