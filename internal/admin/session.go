// Package admin implements the access-code-gated admin workflow: one Session
// per logged-in admin holding a cached projection of the package store, a
// draft editor, image ingestion, and the two-step optimistic delete.
//
// The cache is never a second source of truth. It is replaced by a fresh
// ListAll after every successful create/update and restored from a snapshot
// after every failed delete.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/gobishoftu/site/backend/internal/domain"
)

// PackageStore defines the store operations the admin workflow depends on.
// Defining the interface here (in the consumer package) lets tests inject a
// double that fails, blocks, or counts calls without a database.
type PackageStore interface {
	ListAll(ctx context.Context) ([]domain.Package, error)
	Create(ctx context.Context, draft domain.PackageDraft) (domain.Package, error)
	Update(ctx context.Context, id string, patch domain.PackagePatch) error
	Delete(ctx context.Context, id string) error
}

// State is the login state of a Session.
type State int

const (
	StateLoggedOut State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "logged_out"
	}
}

// MarshalText renders the state by name in JSON snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Options configures sessions.
type Options struct {
	// AccessCode is the static secret compared by exact string equality.
	AccessCode string
	// StoreTimeout bounds each store call. Zero means no timeout.
	StoreTimeout time.Duration
	// MaxImageBytes caps IngestImage. Zero means DefaultMaxImageBytes.
	MaxImageBytes int64
	Logger        *slog.Logger
}

// Session is one admin's view of the package store.
// It is safe for concurrent use; s.mu is released while store calls run so
// the in-flight and loading states are observable from other goroutines.
type Session struct {
	store  PackageStore
	opts   Options
	logger *slog.Logger

	mu    sync.Mutex
	state State
	// epoch increments on logout; store results from an older epoch are dropped.
	epoch uint64
	// version increments whenever packages is replaced wholesale.
	version  uint64
	packages []domain.Package
	loadErr  error

	armed    string
	inFlight string

	editing    bool
	submitting bool
	draftID    string
	draft      domain.PackageDraft
}

// NewSession returns a logged-out session over store.
func NewSession(store PackageStore, opts Options) *Session {
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = DefaultMaxImageBytes
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{store: store, opts: opts, logger: logger}
}

// Login checks code and, when it matches, loads the package list.
// The session is Ready once the fetch settles, even if the fetch failed;
// the failure is then visible as Snapshot.LoadError.
// A wrong code leaves the session logged out. There is no lockout.
// The code is checked first; a session that is already logged in (or
// loading) then returns ErrLoggedIn.
func (s *Session) Login(ctx context.Context, code string) error {
	s.mu.Lock()
	if code != s.opts.AccessCode {
		s.mu.Unlock()
		return fmt.Errorf("admin.Session.Login: %w", ErrAccessDenied)
	}
	if s.state != StateLoggedOut {
		s.mu.Unlock()
		return fmt.Errorf("admin.Session.Login: %w", ErrLoggedIn)
	}
	s.state = StateLoading
	epoch := s.epoch
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "admin logged in")
	if err := s.load(ctx, epoch); err != nil {
		s.logger.WarnContext(ctx, "initial package load failed", "error", err)
	}
	return nil
}

// Logout discards the cache, the draft, and any armed or in-flight delete.
// Store calls still running complete against the store but their results
// are not applied to this session.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.version++
	s.state = StateLoggedOut
	s.packages = nil
	s.loadErr = nil
	s.armed = ""
	s.inFlight = ""
	s.closeDraft()
}

// Refresh re-fetches the package list from the store.
// It is refused with ErrBusy while a delete is in flight: a list read before
// the store removes the row would resurrect it in the cache.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateLoggedOut {
		s.mu.Unlock()
		return fmt.Errorf("admin.Session.Refresh: %w", ErrLoggedOut)
	}
	if s.inFlight != "" {
		s.mu.Unlock()
		return fmt.Errorf("admin.Session.Refresh: %w", ErrBusy)
	}
	s.state = StateLoading
	epoch := s.epoch
	s.mu.Unlock()

	return s.load(ctx, epoch)
}

// load fetches every package and replaces the cache, unless the session was
// logged out (epoch changed) while the fetch ran.
func (s *Session) load(ctx context.Context, epoch uint64) error {
	cctx, cancel := s.withTimeout(ctx)
	pkgs, err := s.store.ListAll(cctx)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return fmt.Errorf("admin.Session.load: %w", ErrLoggedOut)
	}
	s.state = StateReady
	if err != nil {
		s.loadErr = err
		return fmt.Errorf("admin.Session.load: %w", err)
	}
	s.packages = pkgs
	s.version++
	s.loadErr = nil
	return nil
}

// Snapshot is a point-in-time copy of a session for rendering.
type Snapshot struct {
	State     State                `json:"state"`
	Packages  []domain.Package     `json:"packages"`
	ArmedID   string               `json:"armed_id,omitempty"`
	InFlight  string               `json:"in_flight_id,omitempty"`
	Editing   bool                 `json:"editing"`
	DraftID   string               `json:"draft_id,omitempty"`
	Draft     *domain.PackageDraft `json:"draft,omitempty"`
	LoadError string               `json:"load_error,omitempty"`
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:    s.state,
		Packages: make([]domain.Package, 0, len(s.packages)),
		ArmedID:  s.armed,
		InFlight: s.inFlight,
		Editing:  s.editing,
	}
	for _, p := range s.packages {
		p.PackageDraft = p.PackageDraft.Clone()
		snap.Packages = append(snap.Packages, p)
	}
	if s.editing {
		d := s.draft.Clone()
		snap.Draft = &d
		snap.DraftID = s.draftID
	}
	if s.loadErr != nil {
		snap.LoadError = "Failed to load packages. " + Message(s.loadErr)
	}
	return snap
}

// State returns the current login state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// withTimeout derives the per-call store context.
func (s *Session) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.StoreTimeout)
}

// find returns the cached package with id. Callers must hold s.mu.
func (s *Session) find(id string) (domain.Package, bool) {
	i := slices.IndexFunc(s.packages, func(p domain.Package) bool { return p.ID == id })
	if i < 0 {
		return domain.Package{}, false
	}
	return s.packages[i], true
}
