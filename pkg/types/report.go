// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunReport summarizes one conversion run across all archives.
type RunReport struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id" yaml:"run_id"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	// SourceDir is the directory that was scanned for archives.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// OutputDir is the directory documents were written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Device names the accelerator used for page clamping ("none" when disabled).
	Device string `json:"device" yaml:"device"`

	// DPI is the nominal output resolution the run was configured with.
	DPI int `json:"dpi" yaml:"dpi"`

	// Converted, Skipped, and Failed count archives by outcome.
	Converted int `json:"converted" yaml:"converted"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`

	// Pages is the total number of document pages written.
	Pages int `json:"pages" yaml:"pages"`

	// OutputBytes is the total size of all written documents.
	OutputBytes int64 `json:"output_bytes" yaml:"output_bytes"`

	// Archives holds the per-archive outcomes in processing order.
	Archives []ArchiveResult `json:"archives" yaml:"archives"`
}

// Add appends one archive outcome to the report and updates the counters.
func (r *RunReport) Add(res ArchiveResult) {
	r.Archives = append(r.Archives, res)
	switch res.Status {
	case StatusConverted:
		r.Converted++
		r.Pages += res.Pages
		r.OutputBytes += res.OutputBytes
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}
