// Package memory implements the demo-mode backend: an in-process store that
// satisfies repo.Store without any external service. Each Store is an
// explicitly constructed instance so tests get isolated state.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/gobishoftu/site/backend/internal/domain"
)

// Option configures a Store.
type Option func(*Store)

// WithReadDelay sets the artificial latency applied to list calls.
func WithReadDelay(d time.Duration) Option {
	return func(s *Store) { s.readDelay = d }
}

// WithClock replaces time.Now for created_at assignment.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithoutSeed starts the store empty instead of with the demo packages.
func WithoutSeed() Option {
	return func(s *Store) { s.seed = false }
}

// WithLogger sets the logger used to echo received feedback.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store keeps packages newest-first in memory. Reads sleep for readDelay to
// approximate network latency; writes apply immediately.
type Store struct {
	mu sync.RWMutex

	seed      bool
	packages  []domain.Package
	feedback  []domain.Feedback
	readDelay time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// NewStore returns a Store seeded with the demo packages.
func NewStore(opts ...Option) *Store {
	s := &Store{
		readDelay: 500 * time.Millisecond,
		now:       time.Now,
		logger:    slog.Default(),
		seed:      true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed {
		s.packages = createDemoPackages(s.now().UTC())
	}
	return s
}

// ListAll returns a copy of every package, newest first.
func (s *Store) ListAll(ctx context.Context) ([]domain.Package, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "ListAll")
	defer span.End()

	if err := s.wait(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.AddEvent("RLock")
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sorted(func(domain.Package) bool { return true }), nil
}

// ListActive returns a copy of the active packages, newest first.
func (s *Store) ListActive(ctx context.Context) ([]domain.Package, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "ListActive")
	defer span.End()

	if err := s.wait(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.AddEvent("RLock")
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sorted(func(p domain.Package) bool { return p.IsActive }), nil
}

// Create assigns an id and created_at and puts the package at the head of the list.
func (s *Store) Create(ctx context.Context, draft domain.PackageDraft) (domain.Package, error) {
	_, span := tracer.Start(ctx, "Create")
	defer span.End()

	p := domain.Package{
		ID:           uuid.NewString(),
		PackageDraft: draft.Clone(),
		CreatedAt:    s.now().UTC(),
	}

	span.AddEvent("Lock")
	s.mu.Lock()
	defer s.mu.Unlock()

	s.packages = slices.Insert(s.packages, 0, p)
	return clonePackage(p), nil
}

// Update merges patch into the package with the given id.
func (s *Store) Update(ctx context.Context, id string, patch domain.PackagePatch) error {
	_, span := tracer.Start(ctx, "Update")
	defer span.End()

	span.AddEvent("Lock")
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		err := fmt.Errorf("memory.Store.Update: %w", domain.ErrNotFound)
		span.RecordError(err)
		return err
	}
	patch.Apply(&s.packages[i].PackageDraft)
	return nil
}

// Delete removes the package with the given id.
// The demo store can see every row, so a missing id is reported as
// domain.ErrNotFound rather than domain.ErrDeleteBlocked.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, span := tracer.Start(ctx, "Delete")
	defer span.End()

	span.AddEvent("Lock")
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		err := fmt.Errorf("memory.Store.Delete: %w", domain.ErrNotFound)
		span.RecordError(err)
		return err
	}
	s.packages = slices.Delete(s.packages, i, i+1)
	return nil
}

// SendFeedback records the message in memory and logs it.
func (s *Store) SendFeedback(ctx context.Context, fb domain.FeedbackDraft) error {
	ctx, span := tracer.Start(ctx, "SendFeedback")
	defer span.End()

	s.mu.Lock()
	s.feedback = append(s.feedback, domain.Feedback{
		ID:            uuid.NewString(),
		FeedbackDraft: fb,
		CreatedAt:     s.now().UTC(),
	})
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "demo feedback received", "name", fb.Name, "message_len", len(fb.Message))
	return nil
}

// Feedback returns a copy of the recorded feedback, oldest first.
func (s *Store) Feedback() []domain.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.feedback)
}

// wait blocks for readDelay or until ctx is done.
func (s *Store) wait(ctx context.Context) error {
	if s.readDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.readDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// sorted returns deep copies of the packages matching keep, ordered by
// created_at descending. Ties keep list order, which is insertion-newest-first.
// Callers must hold s.mu.
func (s *Store) sorted(keep func(domain.Package) bool) []domain.Package {
	out := []domain.Package{}
	for _, p := range s.packages {
		if keep(p) {
			out = append(out, clonePackage(p))
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Package) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return out
}

// index returns the position of id in s.packages, or -1. Callers must hold s.mu.
func (s *Store) index(id string) int {
	return slices.IndexFunc(s.packages, func(p domain.Package) bool { return p.ID == id })
}

func clonePackage(p domain.Package) domain.Package {
	p.PackageDraft = p.PackageDraft.Clone()
	return p
}
