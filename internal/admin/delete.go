package admin

import (
	"context"
	"fmt"
	"slices"

	"github.com/gobishoftu/site/backend/internal/domain"
)

// DeleteOutcome reports what one delete activation did.
type DeleteOutcome int

const (
	// DeleteIgnored means nothing changed (another delete or a save is in flight, or a reload is running).
	DeleteIgnored DeleteOutcome = iota
	// DeleteArmed means the package is now awaiting confirmation.
	DeleteArmed
	// DeleteDeleted means the store confirmed the removal.
	DeleteDeleted
	// DeleteRolledBack means the store refused; the list was restored.
	DeleteRolledBack
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteArmed:
		return "armed"
	case DeleteDeleted:
		return "deleted"
	case DeleteRolledBack:
		return "rolled_back"
	default:
		return "ignored"
	}
}

// MarshalText renders the outcome by name in JSON responses.
func (o DeleteOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// ActivateDelete is the two-step delete control. The first activation on a
// package arms it; a second activation on the same armed package removes it
// from the list immediately and asks the store to delete it. If the store
// fails (including a zero-row delete) the list is restored exactly and the
// error is returned. Activating a different package re-arms on that one.
// While a delete is in flight, a save is running, or the list is reloading,
// every activation is ignored.
func (s *Session) ActivateDelete(ctx context.Context, id string) (DeleteOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLoggedOut {
		return DeleteIgnored, fmt.Errorf("admin.Session.ActivateDelete: %w", ErrLoggedOut)
	}
	if s.inFlight != "" || s.submitting || s.state != StateReady {
		return DeleteIgnored, nil
	}
	if _, ok := s.find(id); !ok {
		return DeleteIgnored, fmt.Errorf("admin.Session.ActivateDelete %s: %w", id, domain.ErrNotFound)
	}
	if s.armed != id {
		s.armed = id
		return DeleteArmed, nil
	}

	s.armed = ""
	s.inFlight = id
	epoch := s.epoch

	cctx, cancel := s.withTimeout(ctx)
	defer cancel()
	err := optimistic(cctx, &s.mu, &s.packages, &s.version,
		func(list []domain.Package) []domain.Package {
			return slices.DeleteFunc(list, func(p domain.Package) bool { return p.ID == id })
		},
		func(ctx context.Context) error { return s.store.Delete(ctx, id) },
	)
	if epoch == s.epoch {
		s.inFlight = ""
	}

	if err != nil {
		s.logger.ErrorContext(ctx, "delete package failed", "id", id, "error", err)
		return DeleteRolledBack, fmt.Errorf("admin.Session.ActivateDelete %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "package deleted", "id", id)
	return DeleteDeleted, nil
}

// Disarm clears a pending delete confirmation.
func (s *Session) Disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = ""
}
