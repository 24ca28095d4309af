// Package domain contains the core data types for the GoBishoftu backend.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, admin, handler).
package domain

import (
	"slices"
	"time"
)

// PackageDraft holds every caller-editable field of a Package.
// It is the input to Store.Create and the working copy in the admin editor.
// Identity and creation time are deliberately absent: only the store assigns them.
type PackageDraft struct {
	Title             string     `json:"title"`
	TitleAm           string     `json:"title_am,omitempty"`
	Description       string     `json:"description"`
	DescriptionAm     string     `json:"description_am,omitempty"`
	FullDescription   string     `json:"full_description,omitempty"`
	FullDescriptionAm string     `json:"full_description_am,omitempty"`
	Features          []string   `json:"features"`
	FeaturesAm        []string   `json:"features_am,omitempty"`
	Image             string     `json:"image"`
	Duration          string     `json:"duration,omitempty"`
	DurationAm        string     `json:"duration_am,omitempty"`
	Date              *time.Time `json:"date,omitempty"` // calendar date; nil when unscheduled
	Price             string     `json:"price,omitempty"`
	StartTime         string     `json:"start_time,omitempty"`
	EndTime           string     `json:"end_time,omitempty"`
	IsActive          bool       `json:"is_active"`
}

// Package is a bookable day-trip offer as persisted by the store.
// Inactive packages are visible to admins only.
type Package struct {
	ID string `json:"id"`
	PackageDraft
	CreatedAt time.Time `json:"created_at"`
}

// PackagePatch is a partial update. Nil fields are left untouched by Store.Update.
type PackagePatch struct {
	Title             *string
	TitleAm           *string
	Description       *string
	DescriptionAm     *string
	FullDescription   *string
	FullDescriptionAm *string
	Features          *[]string
	FeaturesAm        *[]string
	Image             *string
	Duration          *string
	DurationAm        *string
	Date              **time.Time
	Price             *string
	StartTime         *string
	EndTime           *string
	IsActive          *bool
}

// Clone returns a copy of d whose feature slices do not alias the original.
func (d PackageDraft) Clone() PackageDraft {
	d.Features = slices.Clone(d.Features)
	d.FeaturesAm = slices.Clone(d.FeaturesAm)
	if d.Date != nil {
		date := *d.Date
		d.Date = &date
	}
	return d
}

// Patch returns a PackagePatch that sets every field of d.
// The admin editor submits edits this way so cleared fields are written too.
func (d PackageDraft) Patch() PackagePatch {
	c := d.Clone()
	return PackagePatch{
		Title:             &c.Title,
		TitleAm:           &c.TitleAm,
		Description:       &c.Description,
		DescriptionAm:     &c.DescriptionAm,
		FullDescription:   &c.FullDescription,
		FullDescriptionAm: &c.FullDescriptionAm,
		Features:          &c.Features,
		FeaturesAm:        &c.FeaturesAm,
		Image:             &c.Image,
		Duration:          &c.Duration,
		DurationAm:        &c.DurationAm,
		Date:              &c.Date,
		Price:             &c.Price,
		StartTime:         &c.StartTime,
		EndTime:           &c.EndTime,
		IsActive:          &c.IsActive,
	}
}

// IsEmpty reports whether the patch sets no fields.
func (p PackagePatch) IsEmpty() bool {
	return p == PackagePatch{}
}

// Apply merges the non-nil fields of p into d.
func (p PackagePatch) Apply(d *PackageDraft) {
	setIf(&d.Title, p.Title)
	setIf(&d.TitleAm, p.TitleAm)
	setIf(&d.Description, p.Description)
	setIf(&d.DescriptionAm, p.DescriptionAm)
	setIf(&d.FullDescription, p.FullDescription)
	setIf(&d.FullDescriptionAm, p.FullDescriptionAm)
	if p.Features != nil {
		d.Features = slices.Clone(*p.Features)
	}
	if p.FeaturesAm != nil {
		d.FeaturesAm = slices.Clone(*p.FeaturesAm)
	}
	setIf(&d.Image, p.Image)
	setIf(&d.Duration, p.Duration)
	setIf(&d.DurationAm, p.DurationAm)
	if p.Date != nil {
		if *p.Date == nil {
			d.Date = nil
		} else {
			date := **p.Date
			d.Date = &date
		}
	}
	setIf(&d.Price, p.Price)
	setIf(&d.StartTime, p.StartTime)
	setIf(&d.EndTime, p.EndTime)
	setIf(&d.IsActive, p.IsActive)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
