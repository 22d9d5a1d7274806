package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wanderstone/heritage/pkg/sites"
)

// Statistics aggregates dataset-wide counts for operator visibility. The
// numbers carry no contractual weight; they exist so a run summary reads
// like a run summary.
type Statistics struct {
	Sites               int            `json:"sites"`
	ByCategory          map[string]int `json:"byCategory"`
	ByRegion            map[string]int `json:"byRegion"`
	Transboundary       int            `json:"transboundary"`
	InDanger            int            `json:"inDanger"`
	SitesWithComponents int            `json:"sitesWithComponents"`
	Components          int            `json:"components"`

	// Component distribution over sites that have at least one
	MinComponents    int     `json:"minComponents"`
	MedianComponents float64 `json:"medianComponents"`
	MaxComponents    int     `json:"maxComponents"`
}

// Compute derives statistics from a dataset.
func Compute(list []*sites.Site) *Statistics {
	stats := &Statistics{
		Sites:      len(list),
		ByCategory: make(map[string]int),
		ByRegion:   make(map[string]int),
	}

	var counts []int
	for _, site := range list {
		stats.ByCategory[site.Category.String()]++
		if site.Region != "" {
			stats.ByRegion[site.Region]++
		}
		if site.Transboundary {
			stats.Transboundary++
		}
		if site.InDanger {
			stats.InDanger++
		}
		if site.ComponentCount > 0 {
			stats.SitesWithComponents++
			stats.Components += site.ComponentCount
			counts = append(counts, site.ComponentCount)
		}
	}

	if len(counts) > 0 {
		sort.Ints(counts)
		stats.MinComponents = counts[0]
		stats.MaxComponents = counts[len(counts)-1]
		mid := len(counts) / 2
		if len(counts)%2 == 0 {
			stats.MedianComponents = float64(counts[mid-1]+counts[mid]) / 2
		} else {
			stats.MedianComponents = float64(counts[mid])
		}
	}

	return stats
}

// Log emits the statistics as one structured event.
func (s *Statistics) Log(logger *zerolog.Logger) {
	logger.Info().
		Int("sites", s.Sites).
		Interface("by_category", s.ByCategory).
		Int("transboundary", s.Transboundary).
		Int("in_danger", s.InDanger).
		Int("sites_with_components", s.SitesWithComponents).
		Int("components", s.Components).
		Int("min_components", s.MinComponents).
		Float64("median_components", s.MedianComponents).
		Int("max_components", s.MaxComponents).
		Msg("Dataset statistics")
}

// Render returns a human-readable statistics block for the stats command.
func (s *Statistics) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Sites:               %d\n", s.Sites)
	for _, category := range sortedKeys(s.ByCategory) {
		fmt.Fprintf(&b, "  %-19s%d\n", category+":", s.ByCategory[category])
	}
	fmt.Fprintf(&b, "Transboundary:       %d\n", s.Transboundary)
	fmt.Fprintf(&b, "In danger:           %d\n", s.InDanger)
	if len(s.ByRegion) > 0 {
		b.WriteString("Regions:\n")
		for _, region := range sortedKeys(s.ByRegion) {
			fmt.Fprintf(&b, "  %-35s%d\n", region+":", s.ByRegion[region])
		}
	}
	fmt.Fprintf(&b, "Sites with components: %d\n", s.SitesWithComponents)
	fmt.Fprintf(&b, "Components:          %d\n", s.Components)
	if s.SitesWithComponents > 0 {
		fmt.Fprintf(&b, "Components per site: min %d / median %.1f / max %d\n",
			s.MinComponents, s.MedianComponents, s.MaxComponents)
	}

	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
