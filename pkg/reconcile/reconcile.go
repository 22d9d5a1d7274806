// Package reconcile builds the canonical heritage dataset from its sources.
// The Builder merges per-locale list records into one Site per id number;
// the Reconciler resolves the separately-sourced component records to their
// parent sites, deduplicating by entity URI and filtering degenerate data.
//
// Both halves recover per-record problems locally: a record that cannot be
// used is skipped and counted, never fatal, so one bad row costs one row,
// not the run. Dataset-wide integrity is the validator's job.
package reconcile

// Tolerance is the per-axis coordinate tolerance in degrees (roughly 11 m)
// below which a component coincides with its parent's point and is treated
// as a pseudo-component.
const Tolerance = 1e-4

// Diagnostics aggregates the non-fatal conditions of a run. Every count is
// reported in the run summary; none aborts the pipeline.
type Diagnostics struct {
	SkippedRecords   int `json:"skippedRecords"`   // Locale records with unparsable id or coordinates
	DedupedURIs      int `json:"dedupedUris"`      // Duplicate entity URIs collapsed
	OrphanedRefs     int `json:"orphanedRefs"`     // Component records whose base id matched no site
	DiscardedCoords  int `json:"discardedCoords"`  // Components with missing, zero or unparsable coordinates
	PseudoComponents int `json:"pseudoComponents"` // Components filtered at the parent's own point
	EmptiedGroups    int `json:"emptiedGroups"`    // Sites whose entire component group was filtered
}

// Merge adds another set of diagnostics to this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.SkippedRecords += other.SkippedRecords
	d.DedupedURIs += other.DedupedURIs
	d.OrphanedRefs += other.OrphanedRefs
	d.DiscardedCoords += other.DiscardedCoords
	d.PseudoComponents += other.PseudoComponents
	d.EmptiedGroups += other.EmptiedGroups
}
