package embedded

import (
	"github.com/goccy/go-yaml"
	"golang.org/x/text/language"

	"github.com/wanderstone/heritage/pkg/errors"
)

// Locale describes one supported locale of the source lists.
type Locale struct {
	Code    string `yaml:"code"`    // BCP-47 language code, also the source file suffix
	Name    string `yaml:"name"`    // English display name
	Primary bool   `yaml:"primary"` // Exactly one locale carries this
}

// Registry is the ordered set of supported locales. The order is the
// canonical merge order: the first locale's values win non-translatable
// fields when building canonical records.
type Registry struct {
	locales []Locale
	primary string
}

// registryFile mirrors the YAML layout of locales.yaml.
type registryFile struct {
	Locales []Locale `yaml:"locales"`
}

// LoadRegistry parses and validates the embedded locale registry.
func LoadRegistry() (*Registry, error) {
	data, err := FS.ReadFile("locales.yaml")
	if err != nil {
		return nil, errors.WrapIO("read", "locales.yaml", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.NewParseError("yaml", "locales.yaml", "invalid locale registry", err)
	}

	return NewRegistry(file.Locales)
}

// NewRegistry builds a registry from an explicit locale list, validating
// locale codes as BCP-47 tags and requiring exactly one primary locale.
func NewRegistry(locales []Locale) (*Registry, error) {
	if len(locales) == 0 {
		return nil, errors.NewConfigError("locales", "no locales configured", nil)
	}

	r := &Registry{locales: make([]Locale, 0, len(locales))}
	seen := make(map[string]bool, len(locales))

	for _, locale := range locales {
		if _, err := language.Parse(locale.Code); err != nil {
			return nil, errors.NewConfigError("locales", "invalid locale code "+locale.Code, err)
		}
		if seen[locale.Code] {
			return nil, errors.NewConfigError("locales", "duplicate locale code "+locale.Code, nil)
		}
		seen[locale.Code] = true

		if locale.Primary {
			if r.primary != "" {
				return nil, errors.NewConfigError("locales", "multiple primary locales", nil)
			}
			r.primary = locale.Code
		}
		r.locales = append(r.locales, locale)
	}

	if r.primary == "" {
		return nil, errors.NewConfigError("locales", "no primary locale", nil)
	}

	return r, nil
}

// Codes returns the locale codes in canonical merge order.
func (r *Registry) Codes() []string {
	codes := make([]string, len(r.locales))
	for i, locale := range r.locales {
		codes[i] = locale.Code
	}
	return codes
}

// Primary returns the primary locale code.
func (r *Registry) Primary() string {
	return r.primary
}

// Has reports whether the registry contains the given locale code.
func (r *Registry) Has(code string) bool {
	for _, locale := range r.locales {
		if locale.Code == code {
			return true
		}
	}
	return false
}

// Len returns the number of locales.
func (r *Registry) Len() int {
	return len(r.locales)
}

// Narrow returns a registry restricted to the given codes, preserving the
// canonical order. The primary locale must survive the narrowing.
func (r *Registry) Narrow(codes []string) (*Registry, error) {
	want := make(map[string]bool, len(codes))
	for _, code := range codes {
		if !r.Has(code) {
			return nil, errors.NewConfigError("locales", "unsupported locale "+code, nil)
		}
		want[code] = true
	}

	narrowed := make([]Locale, 0, len(codes))
	for _, locale := range r.locales {
		if want[locale.Code] {
			narrowed = append(narrowed, locale)
		}
	}

	return NewRegistry(narrowed)
}
