package domain

import "time"

// FeedbackDraft is a visitor message as submitted from the contact form.
// Name is optional; Message is required.
type FeedbackDraft struct {
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// Feedback is a persisted visitor message. Feedback is append-only: it is
// never updated, deleted, or read back by this service.
type Feedback struct {
	ID string `json:"id"`
	FeedbackDraft
	CreatedAt time.Time `json:"created_at"`
}
