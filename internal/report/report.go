// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report builds and writes the YAML summary of a conversion run.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/docker/go-units"
	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/comicbind/pkg/types"
)

// New starts a run report with a fresh identity. sourceDir and outputDir are
// the resolved directories the run actually uses.
func New(sourceDir, outputDir, device string, dpi int) *types.RunReport {
	return &types.RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		SourceDir: sourceDir,
		OutputDir: outputDir,
		Device:    device,
		DPI:       dpi,
	}
}

// Write finalizes the report and marshals it to a YAML file at path.
func Write(path string, r *types.RunReport) error {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now().UTC()
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Summarize prints the run's closing line: counts, total pages, and a
// human-readable output size.
func Summarize(w io.Writer, r *types.RunReport) {
	fmt.Fprintf(w, "run %s: %d converted, %d skipped, %d failed, %d pages, %s written\n",
		r.RunID, r.Converted, r.Skipped, r.Failed, r.Pages,
		units.HumanSize(float64(r.OutputBytes)))
}
