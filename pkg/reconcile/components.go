package reconcile

import (
	"sort"
	"strconv"
	"strings"

	"github.com/wanderstone/heritage/internal/sources/wikidata"
	"github.com/wanderstone/heritage/pkg/logging"
	"github.com/wanderstone/heritage/pkg/sites"
)

// Reconciler attaches externally-sourced component records to their parent
// sites: dedupe by entity URI, normalize the raw parent reference to a base
// id, then filter and attach per site group.
type Reconciler struct {
	primaryLocale string
	diags         Diagnostics
}

// NewReconciler creates a Reconciler. Component labels land in the primary
// locale's name slot.
func NewReconciler(primaryLocale string) *Reconciler {
	return &Reconciler{primaryLocale: primaryLocale}
}

// Reconcile runs the full component flow against the canonical set. Sites
// whose base id never appears keep their empty component list; every
// filtered or discarded record is counted, never fatal.
func (r *Reconciler) Reconcile(set *sites.Set, records []wikidata.Record) {
	deduped, collapsed := Dedupe(records)
	r.diags.DedupedURIs += collapsed

	// Group by base id, preserving input order within each group.
	groups := make(map[string][]wikidata.Record)
	for _, record := range deduped {
		baseID := BaseID(record.WHSID)
		if baseID == "" || !set.Exists(baseID) {
			logging.Debug().
				Str("whs_id", record.WHSID).
				Str("uri", record.Item).
				Msg("Component reference matches no site")
			r.diags.OrphanedRefs++
			continue
		}
		groups[baseID] = append(groups[baseID], record)
	}

	for baseID, group := range groups {
		site, _ := set.Get(baseID)
		r.attach(site, group)
	}
}

// Diagnostics returns the counts accumulated across Reconcile calls.
func (r *Reconciler) Diagnostics() Diagnostics {
	return r.diags
}

// attach filters one site's candidate group and installs the survivors.
func (r *Reconciler) attach(site *sites.Site, group []wikidata.Record) {
	components := make([]sites.Component, 0, len(group))

	for _, record := range group {
		latitude, longitude, ok := parseCoordinates(record)
		if !ok {
			logging.Debug().
				Str("site", site.ID).
				Str("uri", record.Item).
				Msg("Discarding component with unusable coordinates")
			r.diags.DiscardedCoords++
			continue
		}

		component := sites.Component{
			ComponentID: sites.ComponentIDFromURI(record.Item),
			ExternalURI: record.Item,
			ParentID:    site.ID,
			Latitude:    latitude,
			Longitude:   longitude,
			Designation: record.Designation,
		}

		// A component at the parent's own point is a source artifact that
		// represents the property itself, not a distinct location.
		if component.WithinTolerance(site.Latitude, site.Longitude, Tolerance) {
			logging.Debug().
				Str("site", site.ID).
				Str("uri", record.Item).
				Msg("Filtering pseudo-component at the parent's point")
			r.diags.PseudoComponents++
			continue
		}

		if label := strings.TrimSpace(record.ItemLabel); label != "" {
			component.Name = map[string]string{r.primaryLocale: label}
		}
		if area, err := strconv.ParseFloat(strings.TrimSpace(record.AreaKm2), 64); err == nil {
			component.AreaKm2 = &area
		}

		components = append(components, component)
	}

	if len(components) == 0 {
		logging.Debug().
			Str("site", site.ID).
			Int("candidates", len(group)).
			Msg("Component group fully filtered")
		r.diags.EmptiedGroups++
		site.AttachComponents(nil)
		return
	}

	// Entity URIs are unique after dedupe, so this order is stable across runs.
	sort.Slice(components, func(i, j int) bool {
		return components[i].ExternalURI < components[j].ExternalURI
	})
	site.AttachComponents(components)
}

// Dedupe collapses records sharing an entity URI, keeping the first-seen
// record in its original position. A later duplicate replaces the kept one
// only when it has usable coordinates and the kept one does not; a tie with
// both usable keeps first-seen. Returns the survivors and the number of
// duplicates collapsed.
func Dedupe(records []wikidata.Record) ([]wikidata.Record, int) {
	kept := make([]wikidata.Record, 0, len(records))
	position := make(map[string]int, len(records))
	collapsed := 0

	for _, record := range records {
		i, seen := position[record.Item]
		if !seen {
			position[record.Item] = len(kept)
			kept = append(kept, record)
			continue
		}

		collapsed++
		if hasUsableCoordinates(record) && !hasUsableCoordinates(kept[i]) {
			kept[i] = record
		}
	}

	return kept, collapsed
}

// BaseID extracts the leading maximal digit run of a raw parent reference,
// stripping variant suffixes: "1133" → "1133", "1133bis" → "1133",
// "1133-001" → "1133". The run is normalized through its numeric value so
// that zero-padded references ("0438-001" → "438") agree with the site id
// scheme. An empty run means the reference is unusable.
func BaseID(ref string) string {
	i := 0
	for i < len(ref) && ref[i] >= '0' && ref[i] <= '9' {
		i++
	}
	n, err := strconv.Atoi(ref[:i])
	if err != nil {
		return ""
	}
	return strconv.Itoa(n)
}

// parseCoordinates parses a record's coordinate strings. Missing, unparsable
// or zero values are unusable; the zero check matches the source's own
// convention for "no coordinates".
func parseCoordinates(record wikidata.Record) (latitude, longitude float64, ok bool) {
	latitude, latErr := strconv.ParseFloat(strings.TrimSpace(record.Latitude), 64)
	longitude, lonErr := strconv.ParseFloat(strings.TrimSpace(record.Longitude), 64)
	if latErr != nil || lonErr != nil || latitude == 0 || longitude == 0 {
		return 0, 0, false
	}
	return latitude, longitude, true
}

// hasUsableCoordinates reports whether a raw record carries coordinates the
// attach step could use.
func hasUsableCoordinates(record wikidata.Record) bool {
	_, _, ok := parseCoordinates(record)
	return ok
}
