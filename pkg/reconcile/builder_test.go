package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderstone/heritage/internal/sources/whc"
	"github.com/wanderstone/heritage/pkg/sites"
)

func greatWall(locale string) whc.Record {
	record := whc.Record{
		IDNumber:      "438",
		UniqueNumber:  "501",
		Latitude:      "40.4167",
		Longitude:     "116.0833",
		Region:        "Asia and the Pacific",
		ISOCode:       "cn",
		Category:      "Cultural",
		CriteriaTxt:   "(i)(ii)(iii)(iv)(vi)",
		DateInscribed: "1987",
		Transboundary: "0",
	}
	switch locale {
	case "fr":
		record.Site = "La Grande Muraille"
		record.States = "Chine"
	default:
		record.Site = "The Great Wall"
		record.States = "China"
	}
	return record
}

func TestBuilderMergesLocales(t *testing.T) {
	b := NewBuilder()
	b.Merge("en", []whc.Record{greatWall("en")})
	b.Merge("fr", []whc.Record{greatWall("fr")})

	require.Equal(t, 1, b.Set().Len(), "same id number across locales yields one site")

	site, ok := b.Set().Get("438")
	require.True(t, ok)
	assert.Equal(t, 438, site.IDNumber)
	assert.Equal(t, 501, site.UniqueNumber)
	assert.InDelta(t, 40.4167, site.Latitude, 1e-9)
	assert.Equal(t, sites.CategoryCultural, site.Category)
	assert.Equal(t, []string{"cn"}, site.ISOCodes)
	assert.False(t, site.Transboundary)
	assert.False(t, site.InDanger)

	require.Len(t, site.Translations, 2)
	assert.Equal(t, "The Great Wall", site.Translations["en"].Name)
	assert.Equal(t, "La Grande Muraille", site.Translations["fr"].Name)
}

func TestBuilderFirstSeenWinsEntityFields(t *testing.T) {
	first := greatWall("en")
	second := greatWall("fr")
	second.Region = "Asie et Pacifique"
	second.Latitude = "41.0"

	b := NewBuilder()
	b.Merge("en", []whc.Record{first})
	b.Merge("fr", []whc.Record{second})

	site, ok := b.Set().Get("438")
	require.True(t, ok)
	assert.Equal(t, "Asia and the Pacific", site.Region, "first-seen locale wins non-translatable fields")
	assert.InDelta(t, 40.4167, site.Latitude, 1e-9)
}

func TestBuilderSkipsUnparsableRecords(t *testing.T) {
	badCoords := greatWall("en")
	badCoords.IDNumber = "9999"
	badCoords.Latitude = "not-a-number"

	badID := greatWall("en")
	badID.IDNumber = "abc"

	b := NewBuilder()
	b.Merge("en", []whc.Record{greatWall("en"), badCoords, badID})

	assert.Equal(t, 1, b.Set().Len())
	assert.False(t, b.Set().Exists("9999"))
	assert.Equal(t, 2, b.Diagnostics().SkippedRecords)
}

func TestBuilderCleansText(t *testing.T) {
	record := greatWall("en")
	record.ShortDescription = "<p>Walls &amp; towers.</p>"
	record.Justification = "  spread   over\nlines "

	b := NewBuilder()
	b.Merge("en", []whc.Record{record})

	site, ok := b.Set().Get("438")
	require.True(t, ok)
	assert.Equal(t, "Walls & towers.", site.Translations["en"].Description)
	assert.Equal(t, "spread over lines", site.Translations["en"].Justification)
}

func TestBuilderDanger(t *testing.T) {
	record := greatWall("en")
	record.IDNumber = "668"
	record.Danger = "2012-present"

	b := NewBuilder()
	b.Merge("en", []whc.Record{record, greatWall("en")})

	endangered, ok := b.Set().Get("668")
	require.True(t, ok)
	assert.True(t, endangered.InDanger)
	assert.Equal(t, "2012-present", endangered.DangerPeriod)

	safe, ok := b.Set().Get("438")
	require.True(t, ok)
	assert.False(t, safe.InDanger)
	assert.Empty(t, safe.DangerPeriod)
}

func TestBuilderTransboundaryAndISOCodes(t *testing.T) {
	record := greatWall("en")
	record.IDNumber = "1133"
	record.ISOCode = "SK, UA ,de"
	record.Transboundary = "1"

	b := NewBuilder()
	b.Merge("en", []whc.Record{record})

	site, ok := b.Set().Get("1133")
	require.True(t, ok)
	assert.True(t, site.Transboundary)
	assert.Equal(t, []string{"sk", "ua", "de"}, site.ISOCodes)
}
