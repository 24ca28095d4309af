package domain

import "time"

// Language selects which variant of the bilingual package text is shown.
type Language string

const (
	English Language = "en"
	Amharic Language = "am"
)

// ParseLanguage maps a language code to a Language, defaulting to English
// for anything it does not recognise.
func ParseLanguage(code string) Language {
	if Language(code) == Amharic {
		return Amharic
	}
	return English
}

// LocalizedPackage is a Package flattened to a single language for display.
type LocalizedPackage struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	FullDescription string     `json:"full_description"`
	Features        []string   `json:"features"`
	Image           string     `json:"image"`
	Duration        string     `json:"duration,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	Price           string     `json:"price,omitempty"`
	StartTime       string     `json:"start_time,omitempty"`
	EndTime         string     `json:"end_time,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Localize returns the display view of p in lang.
// When lang is Amharic each _am field is used only if it is non-empty; every
// other case falls back to the base field. FullDescription additionally falls
// back to Description when both long variants are empty.
func (p Package) Localize(lang Language) LocalizedPackage {
	am := lang == Amharic
	lp := LocalizedPackage{
		ID:              p.ID,
		Title:           pick(am, p.TitleAm, p.Title),
		Description:     pick(am, p.DescriptionAm, p.Description),
		FullDescription: pick(am, p.FullDescriptionAm, p.FullDescription),
		Features:        p.Features,
		Image:           p.Image,
		Duration:        pick(am, p.DurationAm, p.Duration),
		Date:            p.Date,
		Price:           p.Price,
		StartTime:       p.StartTime,
		EndTime:         p.EndTime,
		CreatedAt:       p.CreatedAt,
	}
	if am && len(p.FeaturesAm) > 0 {
		lp.Features = p.FeaturesAm
	}
	if lp.Features == nil {
		lp.Features = []string{}
	}
	if lp.FullDescription == "" {
		lp.FullDescription = lp.Description
	}
	return lp
}

func pick(am bool, translated, base string) string {
	if am && translated != "" {
		return translated
	}
	return base
}
