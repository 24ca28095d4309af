package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobishoftu/site/backend/internal/domain"
	"github.com/gobishoftu/site/backend/internal/handler"
)

func catalogRecording(got *domain.Language) *mockCatalog {
	return &mockCatalog{listActive: func(_ context.Context, lang domain.Language) ([]domain.LocalizedPackage, error) {
		*got = lang
		return []domain.LocalizedPackage{}, nil
	}}
}

func TestListPackages_LanguageSelection(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		accept string
		want   domain.Language
	}{
		{"default", "", "", domain.English},
		{"query wins", "?lang=am", "en-US", domain.Amharic},
		{"unknown query falls back", "?lang=fr", "am", domain.English},
		{"accept-language amharic", "", "am-ET,am;q=0.9,en;q=0.8", domain.Amharic},
		{"accept-language english", "", "en-GB,en;q=0.9", domain.English},
		{"unsupported accept-language", "", "de-DE", domain.English},
		{"malformed accept-language", "", ";;;", domain.English},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got domain.Language
			ts := newTestServer(t, catalogRecording(&got), nil)

			req := httptest.NewRequest(http.MethodGet, "/packages"+tc.query, nil)
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			rec := httptest.NewRecorder()
			ts.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, string(tc.want), rec.Header().Get("Content-Language"))
		})
	}
}

func TestListPackages_Body(t *testing.T) {
	date := time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC)
	ts := newTestServer(t, &mockCatalog{listActive: func(context.Context, domain.Language) ([]domain.LocalizedPackage, error) {
		return []domain.LocalizedPackage{{ID: "1", Title: "ሆራ ሐይቅ", Features: []string{}, Date: &date}}, nil
	}}, nil)

	rec := do(t, ts, http.MethodGet, "/packages?lang=am", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Lang string           `json:"lang"`
		Data []map[string]any `json:"data"`
	}](t, rec)
	assert.Equal(t, "am", body.Lang)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "ሆራ ሐይቅ", body.Data[0]["title"])
	assert.Equal(t, "2023-11-15", body.Data[0]["date"], "dates are YYYY-MM-DD on the wire")
	assert.Equal(t, []any{}, body.Data[0]["features"])
	assert.Equal(t,
		"https://t.me/gobishiftu?text=Hi%20GoBishoftu%20%F0%9F%91%8B%20I%E2%80%99m%20interested%20in%20the%20%E1%88%86%E1%88%AB%20%E1%88%90%E1%8B%AD%E1%89%85%20package.",
		body.Data[0]["booking_url"])
}

func TestListPackages_BookingURLOmittedWithoutLink(t *testing.T) {
	catalog := &mockCatalog{listActive: func(context.Context, domain.Language) ([]domain.LocalizedPackage, error) {
		return []domain.LocalizedPackage{{ID: "1", Title: "Crater Lakes & Coffee", Features: []string{}}}, nil
	}}
	srv := handler.NewServer(catalog, nil, nil, handler.Options{Mode: "demo"})

	rec := do(t, srv.Routes(), http.MethodGet, "/packages", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Data []map[string]any `json:"data"`
	}](t, rec)
	require.Len(t, body.Data, 1)
	assert.NotContains(t, body.Data[0], "booking_url")
}

func TestListPackages_StoreUnavailable(t *testing.T) {
	ts := newTestServer(t, &mockCatalog{listActive: func(context.Context, domain.Language) ([]domain.LocalizedPackage, error) {
		return nil, errors.Join(domain.ErrStoreUnavailable, errors.New("dial tcp"))
	}}, nil)

	rec := do(t, ts, http.MethodGet, "/packages", "", nil)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "store_unavailable", decode[errorBody](t, rec).Error.Code)
}

func TestSendFeedback_204(t *testing.T) {
	var got domain.FeedbackDraft
	ts := newTestServer(t, nil, &mockFeedback{send: func(_ context.Context, fb domain.FeedbackDraft) error {
		got = fb
		return nil
	}})

	rec := do(t, ts, http.MethodPost, "/feedback", `{"name":"Abebe","message":"Great"}`, nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, domain.FeedbackDraft{Name: "Abebe", Message: "Great"}, got)
}

func TestSendFeedback_ValidationIs422(t *testing.T) {
	ts := newTestServer(t, nil, &mockFeedback{send: func(context.Context, domain.FeedbackDraft) error {
		return errors.Join(errors.New("service.FeedbackService.Send"), domain.ErrValidation)
	}})

	rec := do(t, ts, http.MethodPost, "/feedback", `{"message":"  "}`, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decode[errorBody](t, rec).Error.Code)
}

func TestSendFeedback_MalformedJSON(t *testing.T) {
	called := false
	ts := newTestServer(t, nil, &mockFeedback{send: func(context.Context, domain.FeedbackDraft) error {
		called = true
		return nil
	}})

	rec := do(t, ts, http.MethodPost, "/feedback", `{"message":`, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, called)
}
