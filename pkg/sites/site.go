// Package sites defines the canonical data model for the heritage dataset:
// properties, their geographically distinct components, and the containers
// and lookup structures built on top of them.
package sites

import (
	"sort"
	"strconv"
)

// Category classifies a property in the closed UNESCO taxonomy.
type Category string

// String returns the string representation of a Category.
func (c Category) String() string {
	return string(c)
}

// Property categories.
const (
	CategoryCultural Category = "Cultural"
	CategoryNatural  Category = "Natural"
	CategoryMixed    Category = "Mixed"
)

// Categories returns all valid categories.
func Categories() []Category {
	return []Category{CategoryCultural, CategoryNatural, CategoryMixed}
}

// IsValid reports whether the category is one of the closed set.
func (c Category) IsValid() bool {
	switch c {
	case CategoryCultural, CategoryNatural, CategoryMixed:
		return true
	}
	return false
}

// Translation holds the locale-dependent fields of a property.
type Translation struct {
	Name          string `json:"name"`                    // Display name in this locale
	Description   string `json:"description,omitempty"`   // Short description, markup stripped
	StatesText    string `json:"states,omitempty"`        // State parties as listed in this locale
	LocationText  string `json:"location,omitempty"`      // Human-readable location text
	Justification string `json:"justification,omitempty"` // Inscription justification, markup stripped
}

// Empty reports whether the translation carries no content at all.
func (t Translation) Empty() bool {
	return t.Name == "" && t.Description == "" && t.StatesText == "" &&
		t.LocationText == "" && t.Justification == ""
}

// Site represents one canonical heritage property assembled from all
// per-locale source records sharing the same id number.
type Site struct {
	// Core identification
	ID           string `json:"id"`           // String form of IDNumber, the key downstream consumers use
	IDNumber     int    `json:"idNumber"`     // Cross-source join key and stable sort key
	UniqueNumber int    `json:"uniqueNumber"` // Revision-unique row number from the source feed

	// Geography
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Region    string   `json:"region,omitempty"`   // UNESCO region name
	ISOCodes  []string `json:"isoCodes,omitempty"` // Lowercase ISO 3166-1 alpha-2 codes

	// Classification
	Category      Category `json:"category"`
	CriteriaTxt   string   `json:"criteriaTxt,omitempty"`   // Inscription criteria, e.g. "(i)(iv)"
	DateInscribed string   `json:"dateInscribed,omitempty"` // Year of inscription
	InDanger      bool     `json:"inDanger"`
	DangerPeriod  string   `json:"dangerPeriod,omitempty"` // Raw danger listing text when InDanger
	Transboundary bool     `json:"transboundary"`

	// Per-locale content, keyed by locale code
	Translations map[string]Translation `json:"translations"`

	// Components and derived fields
	Components     []Component `json:"components,omitempty"`
	HasComponents  bool        `json:"hasComponents"`
	ComponentCount int         `json:"componentCount"`
}

// NewSite creates a site for the given id number with an empty translation map.
func NewSite(idNumber int) *Site {
	return &Site{
		ID:           strconv.Itoa(idNumber),
		IDNumber:     idNumber,
		Translations: make(map[string]Translation),
	}
}

// Name returns the site name in the given locale, or the empty string if
// that locale has no translation.
func (s *Site) Name(locale string) string {
	if t, ok := s.Translations[locale]; ok {
		return t.Name
	}
	return ""
}

// AnyName returns the first non-empty name across locales, preferring the
// given locale order. It returns the empty string if no locale has a name.
func (s *Site) AnyName(locales []string) string {
	for _, locale := range locales {
		if name := s.Name(locale); name != "" {
			return name
		}
	}
	for _, t := range s.Translations {
		if t.Name != "" {
			return t.Name
		}
	}
	return ""
}

// SetTranslation sets the translation slot for a locale.
func (s *Site) SetTranslation(locale string, t Translation) {
	if s.Translations == nil {
		s.Translations = make(map[string]Translation)
	}
	s.Translations[locale] = t
}

// Locales returns the locale codes present on the site, sorted.
func (s *Site) Locales() []string {
	locales := make([]string, 0, len(s.Translations))
	for locale := range s.Translations {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// AttachComponents replaces the site's component list and refreshes the
// derived fields. Components are expected to be pre-sorted by the caller.
func (s *Site) AttachComponents(components []Component) {
	s.Components = components
	s.Finalize()
}

// Finalize recomputes the derived component fields. It must be called after
// any mutation of the component list.
func (s *Site) Finalize() {
	s.ComponentCount = len(s.Components)
	s.HasComponents = s.ComponentCount > 0
}
