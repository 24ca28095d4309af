// Package handler implements the HTTP handlers for the GoBishoftu API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, packages.go, admin.go, etc.) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gobishoftu/site/backend/internal/admin"
	"github.com/gobishoftu/site/backend/internal/domain"
)

// CatalogServicer defines the public listing operation the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type CatalogServicer interface {
	ListActive(ctx context.Context, lang domain.Language) ([]domain.LocalizedPackage, error)
}

// FeedbackServicer defines the contact-form operation.
type FeedbackServicer interface {
	Send(ctx context.Context, fb domain.FeedbackDraft) error
}

// SessionManager issues and resolves admin sessions by cookie token.
type SessionManager interface {
	Login(ctx context.Context, code string) (string, *admin.Session, error)
	Get(token string) (*admin.Session, bool)
	Logout(token string)
}

// Options carries the non-service settings the handlers need.
type Options struct {
	// Mode is reported by /healthz ("demo" or "live").
	Mode string
	// SessionTTL sets the admin cookie lifetime.
	SessionTTL time.Duration
	// MaxImageBytes bounds the multipart form parsed for an image upload.
	MaxImageBytes int64
	// BookingLink is the Telegram chat a package's booking_url opens.
	// Empty omits booking_url from the listing.
	BookingLink string
	Logger      *slog.Logger
}

// Server holds every handler dependency.
type Server struct {
	catalog  CatalogServicer
	feedback FeedbackServicer
	sessions SessionManager
	opts     Options
	booking  *url.URL
	logger   *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(catalog CatalogServicer, feedback FeedbackServicer, sessions SessionManager, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = admin.DefaultMaxImageBytes
	}
	srv := &Server{catalog: catalog, feedback: feedback, sessions: sessions, opts: opts, logger: logger}
	if opts.BookingLink != "" {
		u, err := url.Parse(opts.BookingLink)
		if err != nil {
			logger.Warn("invalid booking link; booking_url disabled", "link", opts.BookingLink, "error", err)
		} else {
			srv.booking = u
		}
	}
	return srv
}

// Routes returns the API router. Cross-cutting middleware (request id,
// logging, recovery, CORS, body limits) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)
	r.Get("/packages", s.listPackages)
	r.Post("/feedback", s.sendFeedback)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", s.login)
		r.Post("/logout", s.logout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			r.Get("/state", s.getState)
			r.Post("/refresh", s.refresh)
			r.Post("/disarm", s.disarm)

			r.Post("/draft", s.openDraft)
			r.Patch("/draft", s.patchDraft)
			r.Delete("/draft", s.cancelDraft)
			r.Post("/draft/image", s.uploadImage)
			r.Post("/draft/submit", s.submitDraft)
			r.Post("/draft/features/{list}", s.addFeature)
			r.Put("/draft/features/{list}/{index}", s.setFeature)
			r.Delete("/draft/features/{list}/{index}", s.removeFeature)

			r.Post("/packages/{id}/delete", s.activateDelete)
		})
	})

	return r
}
