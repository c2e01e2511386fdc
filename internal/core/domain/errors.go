package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or store backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// Indexing Errors.

	// ErrEmptyCorpus indicates no qualifying documents were found to index.
	ErrEmptyCorpus = errors.New("no documents found")

	// ErrIndexNotFound indicates the persisted index artifacts are missing.
	// The caller should run indexing first.
	ErrIndexNotFound = errors.New("index not found")

	// ErrIndexCorrupt indicates the persisted index is unreadable or
	// structurally inconsistent. Nothing is partially loaded.
	ErrIndexCorrupt = errors.New("index corrupt")

	// Answer Generation Errors.

	// ErrMissingCredential indicates answer generation was requested
	// without the provider credential configured.
	ErrMissingCredential = errors.New("missing credential")

	// ErrRemoteCall indicates the answer generation request failed
	// (transport error, timeout or non-2xx response).
	ErrRemoteCall = errors.New("remote call failed")
)
