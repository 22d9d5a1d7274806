// Package constants provides shared constants used throughout the heritage codebase.
// This includes file permissions, default paths, and other configuration values
// that should be consistent across the application.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Path constants
const (
	// DefaultRawDir is the default directory holding source snapshots
	DefaultRawDir = "data/raw"

	// DefaultDatasetPath is the default primary location of the published dataset
	DefaultDatasetPath = "data/sites.json"

	// DefaultServingPath is the default secondary serving location of the dataset
	DefaultServingPath = "public/data/sites.json"

	// ComponentsFile is the file name of the component export inside the raw directory
	ComponentsFile = "components.csv"

	// LocaleFilePattern is the file name pattern of per-locale list snapshots,
	// completed with fmt.Sprintf and a locale code.
	LocaleFilePattern = "whc-%s.xml"
)

// Limit constants define various limits and capacities
const (
	// MaxNameLength is the maximum allowed length for site and component names
	MaxNameLength = 512

	// MaxLocaleReaders is the maximum number of locale lists read concurrently
	MaxLocaleReaders = 8
)
