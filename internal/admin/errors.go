package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/gobishoftu/site/backend/internal/domain"
)

var (
	// ErrAccessDenied is returned by Login for a wrong access code.
	ErrAccessDenied = errors.New("access denied")

	// ErrLoggedOut is returned by any operation on a session that is not logged in.
	ErrLoggedOut = errors.New("not logged in")

	// ErrNoDraft is returned by draft operations when the edit surface is closed.
	ErrNoDraft = errors.New("no draft open")

	// ErrLoggedIn is returned by Login on a session that is already logged in.
	ErrLoggedIn = errors.New("already logged in")

	// ErrBusy is returned by Submit and Refresh while a save or a delete is
	// still running.
	ErrBusy = errors.New("change in progress")
)

// Message translates an admin or store error into the text shown to the admin.
// A blocked delete gets its own actionable message rather than the generic
// store failure, because the fix is a policy change on the database.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrDeleteBlocked):
		return "Deletion blocked: the database accepted the request but removed nothing. " +
			"Enable the DELETE row-level security policy on the packages table, then try again."
	case errors.Is(err, ErrAccessDenied):
		return "Wrong code. Try again."
	case errors.Is(err, ErrLoggedOut):
		return "Your admin session has ended. Log in again."
	case errors.Is(err, ErrNoDraft):
		return "Open a package for editing first."
	case errors.Is(err, ErrLoggedIn):
		return "You are already logged in."
	case errors.Is(err, ErrBusy):
		return "Still saving the previous change. Please wait."
	case errors.Is(err, domain.ErrValidation):
		return validationDetail(err)
	case errors.Is(err, domain.ErrNotFound):
		return "That package no longer exists. Refresh the list."
	case errors.Is(err, context.DeadlineExceeded):
		return "The package store took too long to respond. Try again."
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "Could not reach the package store. Try again."
	default:
		return "Something went wrong. Try again."
	}
}

// validationDetail extracts the human-readable part after the wrapped sentinel.
// e.g. "admin.Session.Submit: validation error: title is required" → "title is required"
func validationDetail(err error) string {
	_, detail, ok := strings.Cut(err.Error(), domain.ErrValidation.Error()+": ")
	if !ok || detail == "" {
		return "Please check the form and try again."
	}
	return detail
}
