package sites

import (
	"math"
	"strings"
)

// Component represents one geographically distinct component of a serial or
// transboundary property. Components come from a different source than sites
// and are identified by an external entity URI rather than an id number.
type Component struct {
	ComponentID string  `json:"componentId"` // Trailing path segment of ExternalURI, e.g. "Q186348"
	ExternalURI string  `json:"externalUri"` // Original entity URI, retained verbatim
	ParentID    string  `json:"parentId"`    // ID of the owning site
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	// Optional descriptive fields
	Name        map[string]string `json:"name,omitempty"` // Label keyed by locale code
	AreaKm2     *float64          `json:"areaKm2,omitempty"`
	Designation string            `json:"designation,omitempty"`
}

// ComponentIDFromURI extracts the component id from an entity URI by taking
// the segment after the last slash. An empty or slash-terminated URI yields
// the empty string.
func ComponentIDFromURI(uri string) string {
	if uri == "" {
		return ""
	}
	idx := strings.LastIndex(uri, "/")
	if idx < 0 {
		return uri
	}
	return uri[idx+1:]
}

// WithinTolerance reports whether the component's point lies within the
// given per-axis tolerance of (lat, lon) on both axes. Components within
// tolerance of their parent's point are pseudo-components and are filtered.
func (c Component) WithinTolerance(lat, lon, tolerance float64) bool {
	return math.Abs(c.Latitude-lat) <= tolerance && math.Abs(c.Longitude-lon) <= tolerance
}

// LocalName returns the component label in the given locale, or the empty
// string if absent.
func (c Component) LocalName(locale string) string {
	if c.Name == nil {
		return ""
	}
	return c.Name[locale]
}
