// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns comic archives into PDF documents: one archive in,
// one multi-page document out, pages in natural order.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/docker/go-units"

	"github.com/pdiddy/comicbind/internal/accel"
	"github.com/pdiddy/comicbind/internal/archive"
	"github.com/pdiddy/comicbind/internal/ledger"
	"github.com/pdiddy/comicbind/internal/natsort"
	"github.com/pdiddy/comicbind/internal/page"
	"github.com/pdiddy/comicbind/internal/pdfdoc"
	"github.com/pdiddy/comicbind/pkg/types"
)

// ListArchives returns dir's comic archives in natural display order. An
// empty directory yields an empty slice; a missing or non-directory source
// is an error, the one condition that aborts a run before any work.
func ListArchives(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("source directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !archive.IsArchive(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	// All paths share the dir prefix, so sorting the full paths orders them
	// by display name.
	natsort.Strings(paths)
	return paths, nil
}

// BatchResult summarizes one conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
	Results   []types.ArchiveResult
}

// Total returns the number of archives processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any archive failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(res types.ArchiveResult) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case types.StatusConverted:
		r.Converted++
	case types.StatusSkipped:
		r.Skipped++
	case types.StatusFailed:
		r.Failed++
	}
}

// Converter converts comic archives with a fixed configuration, transform
// pipeline, and device, writing per-archive status lines to w.
type Converter struct {
	cfg  types.ConvertConfig
	dev  accel.Device
	pipe page.Pipeline
	w    io.Writer
}

// New builds a Converter from cfg. The transform pipeline is assembled once:
// normalize and fit-to-box as configured, then the accelerated clamp when a
// device is detected.
func New(cfg types.ConvertConfig, w io.Writer) *Converter {
	cfg = cfg.WithDefaults()
	dev := accel.Detect(cfg.UseAccelerator)
	pipe := page.FromConfig(cfg)
	if dev.Available() {
		pipe = pipe.With(accel.Clamp(dev))
	}
	return &Converter{cfg: cfg, dev: dev, pipe: pipe, w: w}
}

// DeviceName names the accelerator in use ("none" when disabled).
func (c *Converter) DeviceName() string {
	return c.dev.Name()
}

// ConvertArchive converts one archive into destDir/<stem>.pdf and reports
// the outcome. Entries that fail to decode or transform are logged and left
// out; the archive only fails as a whole when it cannot be opened or the
// document cannot be written. An existing output document is replaced.
func (c *Converter) ConvertArchive(path, destDir string) types.ArchiveResult {
	start := time.Now()
	stem := archive.Stem(path)
	res := types.ArchiveResult{Archive: filepath.Base(path), Path: path}

	finish := func() types.ArchiveResult {
		res.Duration = time.Since(start)
		return res
	}

	a, err := archive.Open(path)
	if err != nil {
		res.Status = types.StatusFailed
		res.Reason = err.Error()
		fmt.Fprintf(c.w, "failed:  %s (%v)\n", stem, err)
		return finish()
	}
	defer a.Close()
	defer c.dev.Release()
	defer debug.FreeOSMemory()

	entries := a.ImageEntries()
	if len(entries) == 0 {
		res.Status = types.StatusSkipped
		res.Reason = "no image entries"
		fmt.Fprintf(c.w, "skipped: %s (no image entries)\n", stem)
		return finish()
	}

	// Oversized documents encode at the stricter quality from the start.
	quality := c.cfg.JPEGQuality
	if len(entries) > c.cfg.LargeDocPages {
		quality = c.cfg.LargeDocQuality
	}

	pages := make([][]byte, 0, len(entries))
	for batchStart := 0; batchStart < len(entries); batchStart += c.cfg.BatchSize {
		end := min(batchStart+c.cfg.BatchSize, len(entries))
		for i, e := range entries[batchStart:end] {
			encoded, err := c.processEntry(a, e, batchStart+i, quality)
			if err != nil {
				fmt.Fprintf(c.w, "  skipping %s: %v\n", e.Name, err)
				res.FailedEntries++
				continue
			}
			pages = append(pages, encoded)
		}
		// Batch boundary: decoded buffers for this batch are dead; hand the
		// memory back before starting the next one.
		fmt.Fprintf(c.w, "  %s: %d/%d pages\n", stem, end, len(entries))
		c.dev.Release()
		debug.FreeOSMemory()
	}

	if len(pages) == 0 {
		res.Status = types.StatusSkipped
		res.Reason = "no decodable pages"
		fmt.Fprintf(c.w, "skipped: %s (no decodable pages)\n", stem)
		return finish()
	}
	pageCount := len(pages)

	outPath := filepath.Join(destDir, stem+".pdf")
	writeErr := pdfdoc.Write(outPath, pages, pdfdoc.Options{PageSpec: c.cfg.PageSpec})
	pages = nil
	if writeErr != nil {
		res.Status = types.StatusFailed
		res.Reason = writeErr.Error()
		fmt.Fprintf(c.w, "failed:  %s (%v)\n", stem, writeErr)
		return finish()
	}

	if len(entries) > c.cfg.LargeDocPages {
		if err := pdfdoc.Optimize(outPath); err != nil {
			fmt.Fprintf(c.w, "  warning: %v\n", err)
		}
	}
	if c.cfg.EmbedInfo {
		if ci, ok := a.Info(); ok {
			if err := pdfdoc.SetProperties(outPath, ci.Properties()); err != nil {
				fmt.Fprintf(c.w, "  warning: %v\n", err)
			}
		}
	}

	res.Status = types.StatusConverted
	res.Pages = pageCount
	res.OutputPath = outPath
	if fi, err := os.Stat(outPath); err == nil {
		res.OutputBytes = fi.Size()
	}
	fmt.Fprintf(c.w, "converted: %s (%d pages, %s)\n",
		stem, pageCount, units.HumanSize(float64(res.OutputBytes)))
	return finish()
}

// processEntry decodes, transforms, and encodes one page. The decoded image
// lives only inside this call.
func (c *Converter) processEntry(a *archive.Archive, e archive.Entry, index, quality int) ([]byte, error) {
	rc, err := a.OpenEntry(e.Name)
	if err != nil {
		return nil, err
	}
	pg, err := page.Decode(rc, e.Name)
	rc.Close()
	if err != nil {
		return nil, err
	}
	pg.Index = index

	if err := c.pipe.Process(pg); err != nil {
		pg.Image = nil
		return nil, err
	}

	encoded, err := page.EncodeJPEG(pg, quality)
	pg.Image = nil
	if err != nil {
		return nil, err
	}
	return encoded, nil
}

// ConvertBatch converts archives in order, writing outputs into destDir. An
// interrupt stops the loop between archives: already-written documents stay
// intact and the summary still prints. When led is non-nil every outcome is
// recorded; with resume enabled, archives whose recorded conversion is still
// current are skipped without reopening them.
func (c *Converter) ConvertBatch(ctx context.Context, paths []string, destDir string, led *ledger.Ledger) BatchResult {
	var result BatchResult

loop:
	for _, path := range paths {
		select {
		case <-ctx.Done():
			fmt.Fprintf(c.w, "interrupted, stopping\n")
			break loop
		default:
		}

		var modTime time.Time
		if info, err := os.Stat(path); err == nil {
			modTime = info.ModTime()
		}

		if led != nil && c.cfg.Resume && !modTime.IsZero() && led.Unchanged(ctx, path, modTime) {
			res := types.ArchiveResult{
				Archive: filepath.Base(path),
				Path:    path,
				Status:  types.StatusSkipped,
				Reason:  "up to date",
			}
			fmt.Fprintf(c.w, "skipped: %s (up to date)\n", archive.Stem(path))
			result.add(res)
			continue
		}

		res := c.ConvertArchive(path, destDir)
		result.add(res)

		if led != nil && !modTime.IsZero() {
			if err := led.Record(ctx, res, modTime); err != nil {
				fmt.Fprintf(c.w, "  warning: %v\n", err)
			}
		}
	}

	fmt.Fprintf(c.w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
