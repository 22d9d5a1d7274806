// Package wikidata reads the flat component export derived from Wikidata:
// one CSV row per geographically distinct component of a serial or
// transboundary property. Columns are addressed by header name so the
// export may carry extra columns or reorder them; coordinates stay strings
// because the reconciler owns the parse-and-discard policy.
package wikidata

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/wanderstone/heritage/pkg/errors"
)

// Record is one component row, verbatim.
type Record struct {
	Item        string // Entity URI, e.g. http://www.wikidata.org/entity/Q186348
	ItemLabel   string // Human-readable label in the primary locale
	WHSID       string // Raw parent reference, e.g. 1133bis-001
	Latitude    string
	Longitude   string
	AreaKm2     string // Optional
	Designation string // Optional
}

// Column names of the export. item, itemLabel, whsId, lat and lon are
// required; areaKm2 and designation are optional.
const (
	colItem        = "item"
	colItemLabel   = "itemLabel"
	colWHSID       = "whsId"
	colLat         = "lat"
	colLon         = "lon"
	colAreaKm2     = "areaKm2"
	colDesignation = "designation"
)

// ReadFile parses the component export. A missing file is reported as a
// MissingInputError so the caller can skip the reconciliation stage; any
// other failure is a real error.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path) //nolint:gosec // Paths come from operator configuration
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingInputError("components", path, err)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, path)
}

// Read parses component records from r. The name is used in error messages only.
func Read(r io.Reader, name string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // Optional trailing columns may be absent per row

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewParseError("csv", name, "empty component export", nil)
	}
	if err != nil {
		return nil, errors.WrapParse("csv", name, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{colItem, colItemLabel, colWHSID, colLat, colLon} {
		if _, ok := cols[required]; !ok {
			return nil, errors.NewParseError("csv", name, "missing column "+required, nil)
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", name, err)
		}

		field := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		records = append(records, Record{
			Item:        field(colItem),
			ItemLabel:   field(colItemLabel),
			WHSID:       field(colWHSID),
			Latitude:    field(colLat),
			Longitude:   field(colLon),
			AreaKm2:     field(colAreaKm2),
			Designation: field(colDesignation),
		})
	}

	return records, nil
}
