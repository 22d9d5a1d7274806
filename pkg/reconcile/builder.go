package reconcile

import (
	"strconv"
	"strings"

	"github.com/wanderstone/heritage/internal/sources/whc"
	"github.com/wanderstone/heritage/pkg/logging"
	"github.com/wanderstone/heritage/pkg/sites"
)

// Builder merges per-locale list records into canonical sites. Locales must
// be merged in canonical registry order: the first record seen for an id
// number wins the non-translatable fields, and every locale fills its own
// translation slot.
type Builder struct {
	set   *sites.Set
	diags Diagnostics
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{set: sites.NewSet()}
}

// Merge folds one locale's records into the canonical set. Records whose id
// number or coordinates fail parsing are skipped and counted; a site only
// ever comes into existence from a record that parses.
func (b *Builder) Merge(locale string, records []whc.Record) {
	for _, record := range records {
		idNumber, err := strconv.Atoi(strings.TrimSpace(record.IDNumber))
		if err != nil {
			logging.Warn().
				Str("locale", locale).
				Str("id_number", record.IDNumber).
				Msg("Skipping record with unparsable id number")
			b.diags.SkippedRecords++
			continue
		}

		site, ok := b.set.Get(strconv.Itoa(idNumber))
		if !ok {
			site, err = newSite(idNumber, record)
			if err != nil {
				logging.Warn().
					Str("locale", locale).
					Int("id_number", idNumber).
					Str("latitude", record.Latitude).
					Str("longitude", record.Longitude).
					Msg("Skipping record with unparsable coordinates")
				b.diags.SkippedRecords++
				continue
			}
			_ = b.set.Set(site.ID, site)
		}

		site.SetTranslation(locale, sites.Translation{
			Name:          strings.TrimSpace(record.Site),
			Description:   CleanText(record.ShortDescription),
			StatesText:    strings.TrimSpace(record.States),
			LocationText:  strings.TrimSpace(record.Location),
			Justification: CleanText(record.Justification),
		})
	}
}

// Set returns the canonical set built so far.
func (b *Builder) Set() *sites.Set {
	return b.set
}

// Diagnostics returns the counts accumulated across Merge calls.
func (b *Builder) Diagnostics() Diagnostics {
	return b.diags
}

// newSite constructs a site from the entity-level fields of the first record
// seen for an id number. Coordinate parse failure rejects the record.
func newSite(idNumber int, record whc.Record) (*sites.Site, error) {
	latitude, err := strconv.ParseFloat(strings.TrimSpace(record.Latitude), 64)
	if err != nil {
		return nil, err
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(record.Longitude), 64)
	if err != nil {
		return nil, err
	}

	site := sites.NewSite(idNumber)
	site.Latitude = latitude
	site.Longitude = longitude
	site.Region = strings.TrimSpace(record.Region)
	site.ISOCodes = splitISOCodes(record.ISOCode)
	site.Category = sites.Category(strings.TrimSpace(record.Category))
	site.CriteriaTxt = strings.TrimSpace(record.CriteriaTxt)
	site.DateInscribed = strings.TrimSpace(record.DateInscribed)
	site.Transboundary = parseFlag(record.Transboundary)

	// A non-empty danger string means endangered; the string itself is the
	// listing period.
	if danger := strings.TrimSpace(record.Danger); danger != "" {
		site.InDanger = true
		site.DangerPeriod = danger
	}

	// Best effort: an unparsable unique number degrades to zero rather than
	// rejecting the record.
	if n, err := strconv.Atoi(strings.TrimSpace(record.UniqueNumber)); err == nil {
		site.UniqueNumber = n
	}

	return site, nil
}

// splitISOCodes splits the comma-separated iso_code field into lowercase codes.
func splitISOCodes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	codes := make([]string, 0, len(parts))
	for _, part := range parts {
		if code := strings.ToLower(strings.TrimSpace(part)); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// parseFlag interprets the source's boolean encoding ("1"/"true"/"yes").
func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
