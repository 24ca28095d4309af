// Package repo contains all database access logic for the GoBishoftu backend.
// Each resource has its own file with an interface and a Postgres implementation;
// the demo backend lives in repo/memory and satisfies the same Store interface.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gobishoftu/site/backend/internal/domain"
)

var tracer = otel.GetTracerProvider().Tracer("github.com/gobishoftu/site/backend/internal/repo")

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, and unit
// tests to pass a fake that reports arbitrary affected-row counts.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the full persistence capability used by the services and the
// admin controller. Both the live Postgres backend and the demo backend
// implement it.
type Store interface {
	PackageRepo
	FeedbackRepo
}

type pgStore struct {
	PackageRepo
	FeedbackRepo
}

// NewStore constructs the Postgres-backed Store over the provided db connection.
func NewStore(db db) Store {
	return pgStore{
		PackageRepo:  NewPackageRepo(db),
		FeedbackRepo: NewFeedbackRepo(db),
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// unavailable wraps a backend failure so callers can match it with
// errors.Is(err, domain.ErrStoreUnavailable) while keeping the driver error.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

// finish records err on span and ends it.
func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
