package domain

import "errors"

// ErrNotFound is returned when the referenced package does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a local, pre-store check
// (e.g. missing title, non-image upload). It never reaches the store.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrStoreUnavailable wraps any transport, auth, or constraint failure
// reported by the live backend. The demo store never returns it.
// Handlers should map this to HTTP 503.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrDeleteBlocked is returned when a delete reached the live backend without
// error but removed zero rows. With row-level security enabled this is almost
// always a missing DELETE policy rather than a missing row.
// Handlers should map this to HTTP 409.
var ErrDeleteBlocked = errors.New("delete blocked")
