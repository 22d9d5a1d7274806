// Package validation checks dataset-wide invariants before publication and
// computes the aggregate statistics of the run summary. Validation is
// collect-all-then-decide: the full dataset is scanned, every violation is
// recorded, and only then does the presence of a fatal-class violation
// decide the run. Partial or corrupt output must never be published.
package validation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/wanderstone/heritage/pkg/constants"
	"github.com/wanderstone/heritage/pkg/logging"
	"github.com/wanderstone/heritage/pkg/sites"
)

// Severity classifies a violation.
type Severity string

// Violation severities. Fatal violations abort the run; warnings are
// reported but never block publication.
const (
	SeverityFatal   Severity = "fatal"
	SeverityWarning Severity = "warning"
)

// Violation is one invariant failure, tied to the site (and optionally the
// component) it was found on.
type Violation struct {
	Severity    Severity `json:"severity"`
	SiteID      string   `json:"siteId"`
	ComponentID string   `json:"componentId,omitempty"`
	Message     string   `json:"message"`
}

// String renders the violation for logs and the run summary.
func (v Violation) String() string {
	subject := "site " + v.SiteID
	if v.ComponentID != "" {
		subject = fmt.Sprintf("component %s of site %s", v.ComponentID, v.SiteID)
	}
	return fmt.Sprintf("[%s] %s: %s", v.Severity, subject, v.Message)
}

// Result is the outcome of a full validation pass.
type Result struct {
	Violations []Violation `json:"violations"`
}

// Fatal returns the fatal-class violations.
func (r *Result) Fatal() []Violation {
	return r.bySeverity(SeverityFatal)
}

// Warnings returns the warning-class violations.
func (r *Result) Warnings() []Violation {
	return r.bySeverity(SeverityWarning)
}

// OK reports whether the dataset may be published.
func (r *Result) OK() bool {
	return len(r.Fatal()) == 0
}

func (r *Result) bySeverity(severity Severity) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == severity {
			out = append(out, v)
		}
	}
	return out
}

// Validator checks a finished dataset against its invariants.
type Validator struct {
	locales       []string // Configured locales; a site missing one gets a warning
	primaryLocale string
}

// New creates a Validator for the given configured locales.
func New(locales []string, primaryLocale string) *Validator {
	return &Validator{locales: locales, primaryLocale: primaryLocale}
}

// Validate scans every site and component and returns the complete list of
// violations. It never stops early: one pass surfaces everything wrong with
// the inputs, which is what makes a failed run worth its cost.
func (v *Validator) Validate(list []*sites.Site) *Result {
	result := &Result{}
	seenIDs := make(map[string]bool, len(list))
	seenURIs := make(map[string]string, len(list)) // uri -> site id that owns it

	fatal := func(siteID, componentID, format string, args ...any) {
		result.Violations = append(result.Violations, Violation{
			Severity:    SeverityFatal,
			SiteID:      siteID,
			ComponentID: componentID,
			Message:     fmt.Sprintf(format, args...),
		})
	}
	warn := func(siteID, componentID, format string, args ...any) {
		result.Violations = append(result.Violations, Violation{
			Severity:    SeverityWarning,
			SiteID:      siteID,
			ComponentID: componentID,
			Message:     fmt.Sprintf(format, args...),
		})
	}

	for _, site := range list {
		if site.ID == "" || site.IDNumber == 0 {
			fatal(site.ID, "", "missing identifier (id=%q, idNumber=%d)", site.ID, site.IDNumber)
		}
		if seenIDs[site.ID] {
			fatal(site.ID, "", "duplicate site id")
		}
		seenIDs[site.ID] = true

		if !validLatitude(site.Latitude) || !validLongitude(site.Longitude) {
			fatal(site.ID, "", "coordinates out of bounds: (%v, %v)", site.Latitude, site.Longitude)
		}
		if !site.Category.IsValid() {
			fatal(site.ID, "", "category %q outside the closed set", site.Category)
		}
		if site.AnyName(v.locales) == "" {
			fatal(site.ID, "", "no locale has a non-empty name")
		}
		if site.ComponentCount != len(site.Components) || site.HasComponents != (len(site.Components) > 0) {
			fatal(site.ID, "", "derived component fields out of sync: count=%d len=%d has=%t",
				site.ComponentCount, len(site.Components), site.HasComponents)
		}

		for _, locale := range v.locales {
			translation, ok := site.Translations[locale]
			if !ok {
				warn(site.ID, "", "missing translation for locale %q", locale)
				continue
			}
			if len(translation.Name) > constants.MaxNameLength {
				warn(site.ID, "", "%s name exceeds %d characters", locale, constants.MaxNameLength)
			}
		}

		for i := range site.Components {
			v.validateComponent(site, &site.Components[i], seenURIs, fatal, warn)
		}
	}

	logging.Info().
		Int("sites", len(list)).
		Int("fatal", len(result.Fatal())).
		Int("warnings", len(result.Warnings())).
		Msg("Validation pass complete")

	return result
}

type reportFunc func(siteID, componentID, format string, args ...any)

func (v *Validator) validateComponent(site *sites.Site, component *sites.Component, seenURIs map[string]string, fatal, warn reportFunc) {
	if component.ComponentID == "" {
		fatal(site.ID, "", "component with empty id (uri %q)", component.ExternalURI)
	}
	if strings.HasPrefix(component.ComponentID, sites.WholePropertyPrefix) {
		fatal(site.ID, component.ComponentID, "component id collides with the reserved %q prefix", sites.WholePropertyPrefix)
	}
	if component.ExternalURI == "" {
		fatal(site.ID, component.ComponentID, "empty external URI")
	} else if owner, dup := seenURIs[component.ExternalURI]; dup {
		fatal(site.ID, component.ComponentID, "external URI %q already used by site %s", component.ExternalURI, owner)
	} else {
		seenURIs[component.ExternalURI] = site.ID
	}

	if component.ParentID != site.ID {
		fatal(site.ID, component.ComponentID, "parent id %q does not match owning site", component.ParentID)
	}
	if !validLatitude(component.Latitude) || !validLongitude(component.Longitude) {
		fatal(site.ID, component.ComponentID, "coordinates out of bounds: (%v, %v)", component.Latitude, component.Longitude)
	}

	if component.ExternalURI != "" {
		if u, err := url.Parse(component.ExternalURI); err != nil || !u.IsAbs() {
			warn(site.ID, component.ComponentID, "external URI %q is not an absolute URL", component.ExternalURI)
		}
	}
	if component.LocalName(v.primaryLocale) == "" {
		warn(site.ID, component.ComponentID, "no %s name", v.primaryLocale)
	}
}

func validLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func validLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}
