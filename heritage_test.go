package heritage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderstone/heritage/pkg/errors"
	"github.com/wanderstone/heritage/pkg/logging"
	"github.com/wanderstone/heritage/pkg/sites"
)

const listTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<query>%s</query>
`

func row(idNumber, lat, lon, name string) string {
	return fmt.Sprintf(`<row>
  <id_number>%s</id_number>
  <unique_number>%s</unique_number>
  <latitude>%s</latitude>
  <longitude>%s</longitude>
  <region>Asia and the Pacific</region>
  <iso_code>cn</iso_code>
  <category>Cultural</category>
  <criteria_txt>(i)</criteria_txt>
  <date_inscribed>1987</date_inscribed>
  <danger></danger>
  <transboundary>0</transboundary>
  <site>%s</site>
  <short_description>A site.</short_description>
  <states>China</states>
  <location></location>
  <justification></justification>
</row>`, idNumber, idNumber, lat, lon, name)
}

// writeRaw lays out a raw directory for the two test locales.
func writeRaw(t *testing.T, dir string, enRows, frRows []string, componentRows string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	write("whc-en.xml", fmt.Sprintf(listTemplate, joinRows(enRows)))
	write("whc-fr.xml", fmt.Sprintf(listTemplate, joinRows(frRows)))
	if componentRows != "" {
		write("components.csv", "item,itemLabel,whsId,lat,lon,areaKm2,designation\n"+componentRows)
	}
}

func joinRows(rows []string) string {
	out := ""
	for _, r := range rows {
		out += r + "\n"
	}
	return out
}

func newTestPipeline(t *testing.T, dir string, extra ...Option) Pipeline {
	t.Helper()
	opts := append([]Option{
		WithRawDir(filepath.Join(dir, "raw")),
		WithDatasetPath(filepath.Join(dir, "data", "sites.json")),
		WithServingPath(filepath.Join(dir, "public", "sites.json")),
		WithLocales("en", "fr"),
		WithLogger(&logging.Nop),
	}, extra...)

	p, err := New(opts...)
	require.NoError(t, err)
	return p
}

func loadDataset(t *testing.T, path string) []*sites.Site {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var list []*sites.Site
	require.NoError(t, json.Unmarshal(data, &list))
	return list
}

func TestPipelineRun(t *testing.T) {
	dir := t.TempDir()
	writeRaw(t, filepath.Join(dir, "raw"),
		[]string{
			row("438", "40.4167", "116.0833", "The Great Wall"),
			row("1133", "49.0704", "22.3906", "Primeval Beech Forests"),
		},
		[]string{
			row("438", "40.4167", "116.0833", "La Grande Muraille"),
			row("1133", "49.0704", "22.3906", "Forêts primaires de hêtres"),
		},
		// One real component, one pseudo-component at the parent's point,
		// one duplicate URI where only the second record has coordinates.
		`http://www.wikidata.org/entity/Q27537,Badaling,438-001,40.3542,115.9844,,
http://www.wikidata.org/entity/Q186348,Uholka,1133bis-012,49.0704,22.3906,,
http://www.wikidata.org/entity/Q4118551,Havešová,1133-001,,,,
http://www.wikidata.org/entity/Q4118551,Havešová,1133-001,49.0417,22.3306,,
`)

	p := newTestPipeline(t, dir)
	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.ComponentsSkipped)
	assert.Equal(t, 1, report.Diagnostics.DedupedURIs)
	assert.Equal(t, 1, report.Diagnostics.PseudoComponents)
	require.NotNil(t, report.Statistics)
	assert.Equal(t, 2, report.Statistics.Sites)
	require.Len(t, report.Files, 2)

	list := loadDataset(t, filepath.Join(dir, "data", "sites.json"))
	require.Len(t, list, 2)

	// Sorted by numeric id number; both locales merged onto one site.
	wall := list[0]
	assert.Equal(t, "438", wall.ID)
	assert.Equal(t, "The Great Wall", wall.Translations["en"].Name)
	assert.Equal(t, "La Grande Muraille", wall.Translations["fr"].Name)
	require.Len(t, wall.Components, 1)
	assert.Equal(t, "Q27537", wall.Components[0].ComponentID)
	assert.Equal(t, 1, wall.ComponentCount)

	// The pseudo-component at 1133's own point was filtered; the dedupe
	// kept the duplicate record that carried coordinates.
	beech := list[1]
	require.Len(t, beech.Components, 1)
	assert.Equal(t, "Q4118551", beech.Components[0].ComponentID)
	assert.InDelta(t, 49.0417, beech.Components[0].Latitude, 1e-9)

	// Secondary serving path gets the identical artifact.
	secondary, err := os.ReadFile(filepath.Join(dir, "public", "sites.json"))
	require.NoError(t, err)
	primary, err := os.ReadFile(filepath.Join(dir, "data", "sites.json"))
	require.NoError(t, err)
	assert.Equal(t, primary, secondary)
}

func TestPipelineIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeRaw(t, filepath.Join(dir, "raw"),
		[]string{row("438", "40.4167", "116.0833", "The Great Wall")},
		[]string{row("438", "40.4167", "116.0833", "La Grande Muraille")},
		"http://www.wikidata.org/entity/Q27537,Badaling,438-001,40.3542,115.9844,,\n")

	p := newTestPipeline(t, dir)
	_, err := p.Run(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(dir, "data", "sites.json"))
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(dir, "data", "sites.json"))
	require.NoError(t, err)

	assert.Equal(t, first, second, "two runs over the same input are byte-identical")
}

func TestPipelineMissingComponentExport(t *testing.T) {
	dir := t.TempDir()
	writeRaw(t, filepath.Join(dir, "raw"),
		[]string{row("438", "40.4167", "116.0833", "The Great Wall")},
		[]string{row("438", "40.4167", "116.0833", "La Grande Muraille")},
		"")

	p := newTestPipeline(t, dir)
	report, err := p.Run(context.Background())
	require.NoError(t, err, "missing component export is not fatal")
	assert.True(t, report.ComponentsSkipped)

	list := loadDataset(t, filepath.Join(dir, "data", "sites.json"))
	require.Len(t, list, 1)
	assert.Zero(t, list[0].ComponentCount)
	assert.False(t, list[0].HasComponents)
}

func TestPipelineMissingLocaleListFatal(t *testing.T) {
	dir := t.TempDir()
	writeRaw(t, filepath.Join(dir, "raw"),
		[]string{row("438", "40.4167", "116.0833", "The Great Wall")},
		[]string{row("438", "40.4167", "116.0833", "La Grande Muraille")},
		"")
	require.NoError(t, os.Remove(filepath.Join(dir, "raw", "whc-fr.xml")))

	p := newTestPipeline(t, dir)
	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsMissingInput(err))
	assert.NoFileExists(t, filepath.Join(dir, "data", "sites.json"))
}

func TestPipelineValidationFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	writeRaw(t, filepath.Join(dir, "raw"),
		[]string{row("438", "95", "116.0833", "Out Of Bounds")},
		[]string{row("438", "95", "116.0833", "Hors limites")},
		"")

	p := newTestPipeline(t, dir)
	_, err := p.Run(context.Background())
	require.Error(t, err)

	var failed *errors.ValidationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Positive(t, failed.Violations)
	assert.NoFileExists(t, filepath.Join(dir, "data", "sites.json"))
	assert.NoFileExists(t, filepath.Join(dir, "public", "sites.json"))
}

func TestPipelineDryRun(t *testing.T) {
	dir := t.TempDir()
	writeRaw(t, filepath.Join(dir, "raw"),
		[]string{row("438", "40.4167", "116.0833", "The Great Wall")},
		[]string{row("438", "40.4167", "116.0833", "La Grande Muraille")},
		"")

	p := newTestPipeline(t, dir, WithDryRun(true))
	report, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Files, 2, "dry run still reports would-be sizes")
	assert.NoFileExists(t, filepath.Join(dir, "data", "sites.json"))
}

func TestPipelineSkipsUnparsableRecord(t *testing.T) {
	dir := t.TempDir()
	writeRaw(t, filepath.Join(dir, "raw"),
		[]string{
			row("438", "40.4167", "116.0833", "The Great Wall"),
			row("9999", "not-a-number", "12.5", "Broken Site"),
		},
		[]string{row("438", "40.4167", "116.0833", "La Grande Muraille")},
		"")

	p := newTestPipeline(t, dir)
	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Diagnostics.SkippedRecords)

	list := loadDataset(t, filepath.Join(dir, "data", "sites.json"))
	require.Len(t, list, 1, "unparsable record excluded, run still publishes")
}

func TestNewConfigErrors(t *testing.T) {
	_, err := New(WithRawDir(""))
	require.Error(t, err)

	_, err = New(WithLogger(nil))
	require.Error(t, err)

	_, err = New(WithDatasetPath(""))
	require.Error(t, err)
}

func TestPipelineLogsCarryRunContext(t *testing.T) {
	dir := t.TempDir()
	writeRaw(t, filepath.Join(dir, "raw"),
		[]string{row("438", "40.4167", "116.0833", "The Great Wall")},
		[]string{row("438", "40.4167", "116.0833", "La Grande Muraille")},
		"")

	testLogger := logging.NewTestLogger(t)
	p := newTestPipeline(t, dir, WithLocales("en"), WithLogger(testLogger.Logger))

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	// Stage and locale fields ride the context logger, run id rides every event.
	testLogger.AssertContains(t, `"run_id":"`+report.RunID+`"`)
	testLogger.AssertContains(t, `"stage":"read"`)
	testLogger.AssertContains(t, `"locale":"en"`)
}

func TestPipelineUnknownLocale(t *testing.T) {
	dir := t.TempDir()
	writeRaw(t, filepath.Join(dir, "raw"), []string{row("438", "1", "2", "X")}, []string{row("438", "1", "2", "X")}, "")

	p := newTestPipeline(t, dir, WithLocales("en", "xx"))
	_, err := p.Run(context.Background())
	require.Error(t, err)
	var configErr *errors.ConfigError
	assert.ErrorAs(t, err, &configErr)
}
