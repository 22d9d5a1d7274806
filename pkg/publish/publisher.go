// Package publish serializes the validated dataset to its destinations.
// Publication is all-or-nothing: every destination's temp file is written
// and synced before the first rename, so a failure mid-write publishes
// nothing. A failure between renames would leave the destinations
// inconsistent; that is the one contract violation this package can report
// but not undo, and it is surfaced as a PartialPublishError.
package publish

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/wanderstone/heritage/pkg/constants"
	"github.com/wanderstone/heritage/pkg/errors"
	"github.com/wanderstone/heritage/pkg/logging"
	"github.com/wanderstone/heritage/pkg/sites"
)

// Publisher writes the canonical dataset atomically to one or more paths.
type Publisher struct {
	paths  []string
	dryRun bool
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithPaths sets the destination paths. The first is the primary location.
func WithPaths(paths ...string) Option {
	return func(p *Publisher) {
		p.paths = paths
	}
}

// WithDryRun makes Publish serialize and report sizes without writing.
func WithDryRun(dryRun bool) Option {
	return func(p *Publisher) {
		p.dryRun = dryRun
	}
}

// New creates a Publisher.
func New(opts ...Option) *Publisher {
	p := &Publisher{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FileSize describes one written destination for the run summary.
type FileSize struct {
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
}

// Publish serializes the site list (already in stable publish order) and
// writes every destination. On any error before the first rename, all temp
// files are removed and nothing is published.
func (p *Publisher) Publish(list []*sites.Site) ([]FileSize, error) {
	if len(p.paths) == 0 {
		return nil, errors.NewConfigError("publish", "no destination paths configured", nil)
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, errors.WrapResource("serialize", "dataset", "", err)
	}
	data = append(data, '\n')

	sizes := make([]FileSize, 0, len(p.paths))
	for _, path := range p.paths {
		sizes = append(sizes, FileSize{Path: path, Bytes: int64(len(data))})
	}

	if p.dryRun {
		logging.Info().Int("bytes", len(data)).Msg("Dry run, skipping publish")
		return sizes, nil
	}

	// Stage every destination first. A failure here costs nothing visible.
	temps := make([]string, 0, len(p.paths))
	cleanup := func() {
		for _, temp := range temps {
			_ = os.Remove(temp)
		}
	}

	for _, path := range p.paths {
		temp, err := stage(path, data)
		if err != nil {
			cleanup()
			return nil, err
		}
		temps = append(temps, temp)
	}

	// Commit. Renames within a filesystem do not fail for space or
	// permission reasons the staging write would not already have hit, so
	// a failure after the first rename is a contract violation.
	var written []string
	for i, path := range p.paths {
		if err := os.Rename(temps[i], path); err != nil {
			cleanup()
			if len(written) > 0 {
				return nil, &errors.PartialPublishError{Written: written, Failed: path, Err: err}
			}
			return nil, errors.NewPublishError(path, err)
		}
		written = append(written, path)

		logging.Info().
			Str("path", path).
			Int("bytes", len(data)).
			Msg("Published dataset")
	}

	return sizes, nil
}

// stage writes data to a temp file next to the destination and returns the
// temp path. Same-directory placement keeps the later rename atomic.
func stage(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", dir, err)
	}

	temp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return "", errors.WrapIO("create", dir, err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return "", errors.WrapIO("write", tempPath, err)
	}
	if err := temp.Sync(); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return "", errors.WrapIO("sync", tempPath, err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return "", errors.WrapIO("close", tempPath, err)
	}

	if err := os.Chmod(tempPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tempPath)
		return "", errors.WrapIO("chmod", tempPath, err)
	}

	return tempPath, nil
}

// Load reads a published dataset back, for the validate, stats and inspect
// commands. A missing file is a MissingInputError.
func Load(path string) ([]*sites.Site, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Paths come from operator configuration
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingInputError("dataset", path, err)
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var list []*sites.Site
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.NewParseError("json", path, "invalid dataset", err)
	}
	return list, nil
}
