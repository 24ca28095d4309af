package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobishoftu/site/backend/internal/domain"
)

func packageFixture() domain.Package {
	return domain.Package{
		ID: "pkg-1",
		PackageDraft: domain.PackageDraft{
			Title:         "Lake Hora Easy Day Out",
			TitleAm:       "ሆራ ሐይቅ የቀን ሽርሽር",
			Description:   "Relax by the lake.",
			DescriptionAm: "ሐይቅ ዳር ዘና ይበሉ።",
			Features:      []string{"Lakeside seating", "Local lunch"},
			FeaturesAm:    []string{"ሐይቅ ዳር መቀመጫ"},
			Image:         "https://example.com/hora.jpg",
			Duration:      "1 Day",
			IsActive:      true,
		},
		CreatedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestLocalize_Amharic(t *testing.T) {
	p := packageFixture()

	got := p.Localize(domain.Amharic)

	assert.Equal(t, p.TitleAm, got.Title)
	assert.Equal(t, p.DescriptionAm, got.Description)
	assert.Equal(t, p.FeaturesAm, got.Features)
	// duration_am is unset, so the base value is used.
	assert.Equal(t, "1 Day", got.Duration)
}

func TestLocalize_AmharicFallsBackWhenUnset(t *testing.T) {
	p := packageFixture()
	p.TitleAm = ""
	p.FeaturesAm = nil

	got := p.Localize(domain.Amharic)

	assert.Equal(t, "Lake Hora Easy Day Out", got.Title)
	assert.Equal(t, p.Features, got.Features)
}

func TestLocalize_EnglishIgnoresTranslations(t *testing.T) {
	p := packageFixture()

	got := p.Localize(domain.English)

	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.Description, got.Description)
	assert.Equal(t, p.Features, got.Features)
}

func TestLocalize_FullDescriptionFallsBackToDescription(t *testing.T) {
	p := packageFixture()

	got := p.Localize(domain.English)

	assert.Equal(t, "Relax by the lake.", got.FullDescription)
}

func TestLocalize_NilFeaturesBecomeEmpty(t *testing.T) {
	p := packageFixture()
	p.Features = nil
	p.FeaturesAm = nil

	got := p.Localize(domain.English)

	assert.NotNil(t, got.Features)
	assert.Empty(t, got.Features)
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, domain.Amharic, domain.ParseLanguage("am"))
	assert.Equal(t, domain.English, domain.ParseLanguage("en"))
	assert.Equal(t, domain.English, domain.ParseLanguage("fr"))
	assert.Equal(t, domain.English, domain.ParseLanguage(""))
}

func TestPatchApply_OnlySetFields(t *testing.T) {
	d := packageFixture().PackageDraft
	title := "Renamed"
	active := false

	domain.PackagePatch{Title: &title, IsActive: &active}.Apply(&d)

	assert.Equal(t, "Renamed", d.Title)
	assert.False(t, d.IsActive)
	assert.Equal(t, "Relax by the lake.", d.Description, "unset fields must be untouched")
}

func TestPatchApply_ClearsDate(t *testing.T) {
	d := packageFixture().PackageDraft
	date := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	d.Date = &date

	var none *time.Time
	domain.PackagePatch{Date: &none}.Apply(&d)

	assert.Nil(t, d.Date)
}

func TestDraftPatch_RoundTrip(t *testing.T) {
	src := packageFixture().PackageDraft
	var dst domain.PackageDraft

	src.Patch().Apply(&dst)

	assert.Equal(t, src, dst)
}

func TestDraftClone_DoesNotAliasFeatures(t *testing.T) {
	d := packageFixture().PackageDraft

	c := d.Clone()
	c.Features[0] = "changed"

	require.Len(t, d.Features, 2)
	assert.Equal(t, "Lakeside seating", d.Features[0])
}

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, domain.PackagePatch{}.IsEmpty())
	title := "x"
	assert.False(t, domain.PackagePatch{Title: &title}.IsEmpty())
}
