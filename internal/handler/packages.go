package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"golang.org/x/text/language"

	"github.com/gobishoftu/site/backend/internal/domain"
)

// supportedLanguages is ordered so the matcher's index maps onto domain.Language.
var (
	supportedLanguages = []domain.Language{domain.English, domain.Amharic}
	languageMatcher    = language.NewMatcher([]language.Tag{language.English, language.Amharic})
)

// requestLanguage picks the display language: the lang query parameter wins,
// then the Accept-Language header, then English.
func requestLanguage(r *http.Request) domain.Language {
	if q := r.URL.Query().Get("lang"); q != "" {
		return domain.ParseLanguage(q)
	}
	header := r.Header.Get("Accept-Language")
	if header == "" {
		return domain.English
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return domain.English
	}
	_, idx, conf := languageMatcher.Match(tags...)
	if conf == language.No {
		return domain.English
	}
	return supportedLanguages[idx]
}

// localizedPackageResponse is the public wire form of a package.
type localizedPackageResponse struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	FullDescription string              `json:"full_description"`
	Features        []string            `json:"features"`
	Image           string              `json:"image"`
	Duration        string              `json:"duration,omitempty"`
	Date            *openapi_types.Date `json:"date,omitempty"`
	Price           string              `json:"price,omitempty"`
	StartTime       string              `json:"start_time,omitempty"`
	EndTime         string              `json:"end_time,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	BookingURL      string              `json:"booking_url,omitempty"`
}

type listPackagesResponse struct {
	Language string                     `json:"lang"`
	Data     []localizedPackageResponse `json:"data"`
}

// listPackages handles GET /packages.
func (s *Server) listPackages(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r)
	pkgs, err := s.catalog.ListActive(r.Context(), lang)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]localizedPackageResponse, len(pkgs))
	for i, p := range pkgs {
		data[i] = localizedToResponse(p)
		data[i].BookingURL = s.bookingURL(p.Title)
	}
	w.Header().Set("Content-Language", string(lang))
	writeJSON(w, http.StatusOK, listPackagesResponse{Language: string(lang), Data: data})
}

// bookingMessage is the chat text prefilled by a package's booking link.
const bookingMessage = "Hi GoBishoftu 👋 I’m interested in the %s package."

// bookingURL returns the Telegram deep link that opens the booking chat with
// a message naming title, or "" when no booking link is configured.
func (s *Server) bookingURL(title string) string {
	if s.booking == nil {
		return ""
	}
	u := *s.booking
	q := url.QueryEscape(fmt.Sprintf(bookingMessage, title))
	u.RawQuery = "text=" + strings.ReplaceAll(q, "+", "%20")
	return u.String()
}

type feedbackRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// sendFeedback handles POST /feedback.
func (s *Server) sendFeedback(w http.ResponseWriter, r *http.Request) {
	var body feedbackRequest
	if err := decodeJSON(r, &body, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.feedback.Send(r.Context(), domain.FeedbackDraft{Name: body.Name, Message: body.Message}); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func localizedToResponse(p domain.LocalizedPackage) localizedPackageResponse {
	return localizedPackageResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		FullDescription: p.FullDescription,
		Features:        p.Features,
		Image:           p.Image,
		Duration:        p.Duration,
		Date:            toDate(p.Date),
		Price:           p.Price,
		StartTime:       p.StartTime,
		EndTime:         p.EndTime,
		CreatedAt:       p.CreatedAt,
	}
}

// toDate converts an optional calendar date to its YYYY-MM-DD wire type.
func toDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

// fromDate converts a wire date back to a UTC midnight time.
func fromDate(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &t
}
