package heritage

import (
	"time"

	"github.com/agentstation/utc"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wanderstone/heritage/internal/validation"
	"github.com/wanderstone/heritage/pkg/publish"
	"github.com/wanderstone/heritage/pkg/reconcile"
)

// Report is the operator-facing summary of one pipeline run.
type Report struct {
	RunID      string   `json:"runId"`
	StartedAt  utc.Time `json:"startedAt"`
	FinishedAt utc.Time `json:"finishedAt"`

	Stages            []StageTiming          `json:"stages"`
	ComponentsSkipped bool                   `json:"componentsSkipped"` // Component export was absent
	Diagnostics       reconcile.Diagnostics  `json:"diagnostics"`
	Warnings          []validation.Violation `json:"warnings,omitempty"`
	Statistics        *validation.Statistics `json:"statistics,omitempty"`
	Files             []publish.FileSize     `json:"files,omitempty"`
}

// StageTiming records how long one stage took.
type StageTiming struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// NewReport creates a report with a fresh run id and start timestamp.
func NewReport() *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: utc.Now(),
	}
}

// Stage tracks one running stage until Done is called.
type Stage struct {
	report *Report
	name   string
	start  time.Time
}

// StartStage begins timing a stage.
func (r *Report) StartStage(name string) *Stage {
	return &Stage{report: r, name: name, start: time.Now()}
}

// Done records the stage's duration on the report.
func (s *Stage) Done() {
	s.report.Stages = append(s.report.Stages, StageTiming{
		Name:     s.name,
		Duration: time.Since(s.start),
	})
}

// Finish stamps the end of the run.
func (r *Report) Finish() {
	r.FinishedAt = utc.Now()
}

// Duration returns the total run time.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Log emits the run summary as one structured event.
func (r *Report) Log(logger *zerolog.Logger) {
	event := logger.Info().
		Str("run_id", r.RunID).
		Dur("duration", r.Duration()).
		Bool("components_skipped", r.ComponentsSkipped).
		Int("skipped_records", r.Diagnostics.SkippedRecords).
		Int("deduped_uris", r.Diagnostics.DedupedURIs).
		Int("orphaned_refs", r.Diagnostics.OrphanedRefs).
		Int("discarded_coords", r.Diagnostics.DiscardedCoords).
		Int("pseudo_components", r.Diagnostics.PseudoComponents).
		Int("emptied_groups", r.Diagnostics.EmptiedGroups).
		Int("warnings", len(r.Warnings))

	for _, timing := range r.Stages {
		event = event.Dur("stage_"+timing.Name, timing.Duration)
	}
	for _, file := range r.Files {
		event = event.Int64("bytes_"+file.Path, file.Bytes)
	}

	event.Msg("Run complete")
}
