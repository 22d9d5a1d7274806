// Package whc reads the per-locale heritage list snapshots published by the
// World Heritage Centre. Each snapshot is a flat XML list of rows keyed by
// id_number; every field is kept as its source string so that numeric
// interpretation, and the skip policy for records that fail it, stays with
// the stage that owns the policy.
package whc

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/wanderstone/heritage/pkg/constants"
	"github.com/wanderstone/heritage/pkg/errors"
	"github.com/wanderstone/heritage/pkg/logging"
)

// Record is one row of a locale snapshot, verbatim.
type Record struct {
	IDNumber      string `xml:"id_number"`
	UniqueNumber  string `xml:"unique_number"`
	Latitude      string `xml:"latitude"`
	Longitude     string `xml:"longitude"`
	Region        string `xml:"region"`
	ISOCode       string `xml:"iso_code"`
	Category      string `xml:"category"`
	CriteriaTxt   string `xml:"criteria_txt"`
	DateInscribed string `xml:"date_inscribed"`
	Danger        string `xml:"danger"`
	Transboundary string `xml:"transboundary"`

	// Locale-specific text fields
	Site             string `xml:"site"`
	ShortDescription string `xml:"short_description"`
	States           string `xml:"states"`
	Location         string `xml:"location"`
	Justification    string `xml:"justification"`
}

// list mirrors the snapshot's XML envelope.
type list struct {
	XMLName xml.Name `xml:"query"`
	Rows    []Record `xml:"row"`
}

// Path returns the snapshot path for a locale inside the raw directory.
func Path(rawDir, locale string) string {
	return filepath.Join(rawDir, fmt.Sprintf(constants.LocaleFilePattern, locale))
}

// ReadFile parses one locale snapshot. A missing file is fatal for the
// pipeline and is reported as a MissingInputError.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Paths come from operator configuration
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingInputError("locale list", path, err)
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var l list
	if err := xml.Unmarshal(data, &l); err != nil {
		return nil, errors.NewParseError("xml", path, "invalid locale list", err)
	}

	return l.Rows, nil
}

// ReadLocales reads every locale snapshot concurrently and returns one
// record slice per locale, aligned to the given locale order. Reads are
// independent; the caller merges slots in locale order, never completion
// order, so the result is deterministic regardless of scheduling.
func ReadLocales(ctx context.Context, rawDir string, locales []string) ([][]Record, error) {
	slots := make([][]Record, len(locales))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.MaxLocaleReaders)

	for i, locale := range locales {
		i, locale := i, locale
		localeCtx := logging.WithLocale(ctx, locale)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			path := Path(rawDir, locale)
			records, err := ReadFile(path)
			if err != nil {
				return err
			}

			logging.Ctx(localeCtx).Debug().
				Int("records", len(records)).
				Msg("Read locale list")

			slots[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slots, nil
}
