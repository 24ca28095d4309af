package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/gobishoftu/site/backend/internal/admin"
	"github.com/gobishoftu/site/backend/internal/domain"
)

// draftResponse is the wire form of every editable package field.
type draftResponse struct {
	Title             string              `json:"title"`
	TitleAm           string              `json:"title_am"`
	Description       string              `json:"description"`
	DescriptionAm     string              `json:"description_am"`
	FullDescription   string              `json:"full_description"`
	FullDescriptionAm string              `json:"full_description_am"`
	Features          []string            `json:"features"`
	FeaturesAm        []string            `json:"features_am"`
	Image             string              `json:"image"`
	Duration          string              `json:"duration"`
	DurationAm        string              `json:"duration_am"`
	Date              *openapi_types.Date `json:"date"`
	Price             string              `json:"price"`
	StartTime         string              `json:"start_time"`
	EndTime           string              `json:"end_time"`
	IsActive          bool                `json:"is_active"`
}

// packageResponse is the admin wire form of a stored package.
type packageResponse struct {
	ID string `json:"id"`
	draftResponse
	CreatedAt time.Time `json:"created_at"`
}

// stateResponse is the admin session snapshot.
type stateResponse struct {
	State      admin.State       `json:"state"`
	Packages   []packageResponse `json:"packages"`
	ArmedID    string            `json:"armed_id,omitempty"`
	InFlightID string            `json:"in_flight_id,omitempty"`
	Editing    bool              `json:"editing"`
	DraftID    string            `json:"draft_id,omitempty"`
	Draft      *draftResponse    `json:"draft,omitempty"`
	LoadError  string            `json:"load_error,omitempty"`
}

func draftToResponse(d domain.PackageDraft) draftResponse {
	return draftResponse{
		Title:             d.Title,
		TitleAm:           d.TitleAm,
		Description:       d.Description,
		DescriptionAm:     d.DescriptionAm,
		FullDescription:   d.FullDescription,
		FullDescriptionAm: d.FullDescriptionAm,
		Features:          nonNil(d.Features),
		FeaturesAm:        nonNil(d.FeaturesAm),
		Image:             d.Image,
		Duration:          d.Duration,
		DurationAm:        d.DurationAm,
		Date:              toDate(d.Date),
		Price:             d.Price,
		StartTime:         d.StartTime,
		EndTime:           d.EndTime,
		IsActive:          d.IsActive,
	}
}

func snapshotToResponse(snap admin.Snapshot) stateResponse {
	resp := stateResponse{
		State:      snap.State,
		Packages:   make([]packageResponse, len(snap.Packages)),
		ArmedID:    snap.ArmedID,
		InFlightID: snap.InFlight,
		Editing:    snap.Editing,
		DraftID:    snap.DraftID,
		LoadError:  snap.LoadError,
	}
	for i, p := range snap.Packages {
		resp.Packages[i] = packageResponse{ID: p.ID, draftResponse: draftToResponse(p.PackageDraft), CreatedAt: p.CreatedAt}
	}
	if snap.Draft != nil {
		d := draftToResponse(*snap.Draft)
		resp.Draft = &d
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
