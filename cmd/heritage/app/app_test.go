package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderstone/heritage/pkg/logging"
)

func testApp(t *testing.T, config *Config) *App {
	t.Helper()
	if config == nil {
		config = &Config{Quiet: true}
	}
	a, err := New("test", "abc123", "today", "tests", WithConfig(config), WithLogger(&logging.Nop))
	require.NoError(t, err)
	return a
}

// run executes the CLI against a buffer and returns its output.
func run(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := a.createRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, testApp(t, nil), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "heritage test")
	assert.NotContains(t, out, "abc123")
}

func TestVersionCommandVerbose(t *testing.T) {
	out, err := run(t, testApp(t, nil), "--quiet", "--verbose", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "abc123")
}

func localeRow(id, lat, lon, name string) string {
	return fmt.Sprintf(`<row><id_number>%s</id_number><unique_number>%s</unique_number>
<latitude>%s</latitude><longitude>%s</longitude>
<region>Asia and the Pacific</region><iso_code>cn</iso_code>
<category>Cultural</category><criteria_txt>(i)</criteria_txt>
<date_inscribed>1987</date_inscribed><danger></danger>
<transboundary>0</transboundary><site>%s</site>
<short_description></short_description><states>China</states>
<location></location><justification></justification></row>`, id, id, lat, lon, name)
}

// writeTestInputs lays out a raw directory plus app config for a run.
func writeTestInputs(t *testing.T, withComponents bool) *Config {
	t.Helper()
	dir := t.TempDir()
	rawDir := filepath.Join(dir, "raw")
	require.NoError(t, os.MkdirAll(rawDir, 0o755))

	for _, locale := range []string{"en", "fr"} {
		content := `<?xml version="1.0" encoding="UTF-8"?><query>` +
			localeRow("438", "40.4167", "116.0833", "The Great Wall ("+locale+")") +
			`</query>`
		require.NoError(t, os.WriteFile(filepath.Join(rawDir, "whc-"+locale+".xml"), []byte(content), 0o644))
	}

	if withComponents {
		csv := "item,itemLabel,whsId,lat,lon,areaKm2,designation\n" +
			"http://www.wikidata.org/entity/Q27537,Badaling,438-001,40.3542,115.9844,,\n"
		require.NoError(t, os.WriteFile(filepath.Join(rawDir, "components.csv"), []byte(csv), 0o644))
	}

	return &Config{
		Quiet:       true,
		RawDir:      rawDir,
		DatasetPath: filepath.Join(dir, "data", "sites.json"),
		ServingPath: filepath.Join(dir, "public", "sites.json"),
		Locales:     []string{"en", "fr"},
	}
}

func TestBuildCommand(t *testing.T) {
	config := writeTestInputs(t, true)

	out, err := run(t, testApp(t, config), "build")
	require.NoError(t, err)
	assert.Contains(t, out, "published")
	assert.FileExists(t, config.DatasetPath)
	assert.FileExists(t, config.ServingPath)
}

func TestBuildCommandDryRun(t *testing.T) {
	config := writeTestInputs(t, false)

	out, err := run(t, testApp(t, config), "build", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "dry run")
	assert.NoFileExists(t, config.DatasetPath)
}

func TestValidateAndStatsCommands(t *testing.T) {
	config := writeTestInputs(t, true)
	a := testApp(t, config)

	_, err := run(t, a, "build")
	require.NoError(t, err)

	out, err := run(t, a, "validate", config.DatasetPath)
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 1 sites")

	out, err = run(t, a, "stats", config.DatasetPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Sites:")
	assert.Contains(t, out, "Cultural:")
}

func TestInspectCommand(t *testing.T) {
	config := writeTestInputs(t, true)
	a := testApp(t, config)

	_, err := run(t, a, "build")
	require.NoError(t, err)

	// Bare site id
	out, err := run(t, a, "inspect", "438", config.DatasetPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "site 438"), out)

	// Whole-property scope encoding
	out, err = run(t, a, "inspect", "site-438", config.DatasetPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "site 438"), out)

	// Component id
	out, err = run(t, a, "inspect", "Q27537", config.DatasetPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "component Q27537"), out)
	assert.Contains(t, out, "parent:      438")

	_, err = run(t, a, "inspect", "Q404", config.DatasetPath)
	require.Error(t, err)
}

func TestValidateCommandMissingDataset(t *testing.T) {
	config := writeTestInputs(t, false)
	_, err := run(t, testApp(t, config), "validate", filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
