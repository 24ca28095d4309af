package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/gobishoftu/site/backend/internal/admin"
	"github.com/gobishoftu/site/backend/internal/domain"
)

// SessionCookie names the cookie carrying the admin session token.
const SessionCookie = "admin_session"

type sessionKey struct{}

// requireSession resolves the admin session from its cookie and stores it in
// the request context. Requests without a live session get 401.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(SessionCookie)
		if err != nil {
			s.writeError(w, r, admin.ErrLoggedOut)
			return
		}
		sess, ok := s.sessions.Get(c.Value)
		if !ok {
			s.writeError(w, r, admin.ErrLoggedOut)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

func sessionFrom(r *http.Request) *admin.Session {
	return r.Context().Value(sessionKey{}).(*admin.Session)
}

// ---- login / logout / state ------------------------------------------------

type loginRequest struct {
	Code string `json:"code"`
}

// login handles POST /admin/login.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decodeJSON(r, &body, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	token, sess, err := s.sessions.Login(r.Context(), body.Code)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.opts.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, snapshotToResponse(sess.Snapshot()))
}

// logout handles POST /admin/logout. It succeeds whether or not a session exists.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		s.sessions.Logout(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// getState handles GET /admin/state.
func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, snapshotToResponse(sessionFrom(r).Snapshot()))
}

// refresh handles POST /admin/refresh.
func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, sessionFrom(r).Refresh(r.Context()))
}

// disarm handles POST /admin/disarm.
func (s *Server) disarm(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).Disarm()
	s.respond(w, r, nil)
}

// ---- draft -----------------------------------------------------------------

type openDraftRequest struct {
	ID string `json:"id"`
}

// openDraft handles POST /admin/draft. An empty body or id opens a new draft.
func (s *Server) openDraft(w http.ResponseWriter, r *http.Request) {
	var body openDraftRequest
	if err := decodeJSON(r, &body, true); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess := sessionFrom(r)
	if body.ID == "" {
		s.respond(w, r, sess.NewDraft())
		return
	}
	s.respond(w, r, sess.EditDraft(body.ID))
}

// optionalDate records whether "date" was present in a PATCH body so an
// explicit null can clear the date while an absent key leaves it alone.
type optionalDate struct {
	Set   bool
	Value *openapi_types.Date
}

func (o *optionalDate) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var d openapi_types.Date
	if err := json.Unmarshal(b, &d); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	o.Value = &d
	return nil
}

// draftPatchRequest is the body of PATCH /admin/draft. Absent fields are untouched.
type draftPatchRequest struct {
	Title             *string      `json:"title"`
	TitleAm           *string      `json:"title_am"`
	Description       *string      `json:"description"`
	DescriptionAm     *string      `json:"description_am"`
	FullDescription   *string      `json:"full_description"`
	FullDescriptionAm *string      `json:"full_description_am"`
	Features          *[]string    `json:"features"`
	FeaturesAm        *[]string    `json:"features_am"`
	Image             *string      `json:"image"`
	Duration          *string      `json:"duration"`
	DurationAm        *string      `json:"duration_am"`
	Date              optionalDate `json:"date"`
	Price             *string      `json:"price"`
	StartTime         *string      `json:"start_time"`
	EndTime           *string      `json:"end_time"`
	IsActive          *bool        `json:"is_active"`
}

func (b draftPatchRequest) toPatch() domain.PackagePatch {
	p := domain.PackagePatch{
		Title:             b.Title,
		TitleAm:           b.TitleAm,
		Description:       b.Description,
		DescriptionAm:     b.DescriptionAm,
		FullDescription:   b.FullDescription,
		FullDescriptionAm: b.FullDescriptionAm,
		Features:          b.Features,
		FeaturesAm:        b.FeaturesAm,
		Image:             b.Image,
		Duration:          b.Duration,
		DurationAm:        b.DurationAm,
		Price:             b.Price,
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		IsActive:          b.IsActive,
	}
	if b.Date.Set {
		date := fromDate(b.Date.Value)
		p.Date = &date
	}
	return p
}

// patchDraft handles PATCH /admin/draft.
func (s *Server) patchDraft(w http.ResponseWriter, r *http.Request) {
	var body draftPatchRequest
	if err := decodeJSON(r, &body, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, sessionFrom(r).PatchDraft(body.toPatch()))
}

// cancelDraft handles DELETE /admin/draft.
func (s *Server) cancelDraft(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).CancelDraft()
	s.respond(w, r, nil)
}

// uploadImage handles POST /admin/draft/image (multipart field "image").
func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	// Anything beyond the image itself spills to disk rather than memory.
	if err := r.ParseMultipartForm(s.opts.MaxImageBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, err)
			return
		}
		s.writeError(w, r, fmt.Errorf("%w: expected a multipart form with an image field", domain.ErrValidation))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: image field is required", domain.ErrValidation))
		return
	}
	defer file.Close()

	s.respond(w, r, sessionFrom(r).IngestImage(header.Header.Get("Content-Type"), file))
}

// submitDraft handles POST /admin/draft/submit.
func (s *Server) submitDraft(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, sessionFrom(r).Submit(r.Context()))
}

// ---- features --------------------------------------------------------------

type featureRequest struct {
	Text string `json:"text"`
}

func featureParams(r *http.Request, withIndex bool) (admin.FeatureList, int, error) {
	list, err := admin.ParseFeatureList(chi.URLParam(r, "list"))
	if err != nil {
		return "", 0, err
	}
	if !withIndex {
		return list, 0, nil
	}
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return "", 0, fmt.Errorf("%w: feature index must be an integer", domain.ErrValidation)
	}
	return list, i, nil
}

// addFeature handles POST /admin/draft/features/{list}.
func (s *Server) addFeature(w http.ResponseWriter, r *http.Request) {
	list, _, err := featureParams(r, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body featureRequest
	if err := decodeJSON(r, &body, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, sessionFrom(r).AddFeature(list, body.Text))
}

// setFeature handles PUT /admin/draft/features/{list}/{index}.
func (s *Server) setFeature(w http.ResponseWriter, r *http.Request) {
	list, i, err := featureParams(r, true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body featureRequest
	if err := decodeJSON(r, &body, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, sessionFrom(r).SetFeature(list, i, body.Text))
}

// removeFeature handles DELETE /admin/draft/features/{list}/{index}.
func (s *Server) removeFeature(w http.ResponseWriter, r *http.Request) {
	list, i, err := featureParams(r, true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, sessionFrom(r).RemoveFeature(list, i))
}

// ---- delete ----------------------------------------------------------------

type deleteResponse struct {
	Outcome admin.DeleteOutcome `json:"outcome"`
	State   stateResponse       `json:"state"`
}

// activateDelete handles POST /admin/packages/{id}/delete.
func (s *Server) activateDelete(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	outcome, err := sess.ActivateDelete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Outcome: outcome, State: snapshotToResponse(sess.Snapshot())})
}

// respond writes the session snapshot on success and the mapped error otherwise.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotToResponse(sessionFrom(r).Snapshot()))
}
