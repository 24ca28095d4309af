package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gobishoftu/site/backend/internal/domain"
)

// FeedbackRepo defines the persistence operations for visitor feedback.
// Feedback is append-only: there is no update, delete, or read path.
type FeedbackRepo interface {
	// SendFeedback inserts a feedback message. The store assigns id and created_at.
	SendFeedback(ctx context.Context, fb domain.FeedbackDraft) error
}

// pgFeedbackRepo is the Postgres implementation of FeedbackRepo.
type pgFeedbackRepo struct {
	db db
}

// NewFeedbackRepo constructs a FeedbackRepo backed by the provided db connection.
func NewFeedbackRepo(db db) FeedbackRepo {
	return &pgFeedbackRepo{db: db}
}

// SendFeedback inserts a single feedback row.
func (r *pgFeedbackRepo) SendFeedback(ctx context.Context, fb domain.FeedbackDraft) (err error) {
	ctx, span := tracer.Start(ctx, "FeedbackRepo.SendFeedback")
	defer func() { finish(span, err) }()

	const q = `INSERT INTO feedback (name, message) VALUES (@name, @message)`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"name": fb.Name, "message": fb.Message}); err != nil {
		return unavailable("repo.FeedbackRepo.SendFeedback", err)
	}
	return nil
}
