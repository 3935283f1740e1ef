// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch runs hot-folder conversion: the source directory's backlog is
// converted first, then archives are converted as they appear.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/comicbind/internal/archive"
	"github.com/pdiddy/comicbind/internal/convert"
	"github.com/pdiddy/comicbind/internal/ledger"
)

// settleDelay controls the wait between attempts to open an archive that is
// still being copied into the watched directory. Tests override this to avoid
// real sleeps.
var settleDelay = 500 * time.Millisecond

// settleAttempts bounds how long the watcher waits for a copy to finish
// before handing the file to the converter as-is.
const settleAttempts = 10

// Watcher converts a source directory's backlog and then every archive that
// appears in it afterward. Conversion stays single-threaded: events that
// arrive while an archive converts queue in the notifier's buffer.
type Watcher struct {
	conv *convert.Converter
	led  *ledger.Ledger
	src  string
	dest string
	w    io.Writer

	// seen maps archive paths to the mod time at their last conversion, so
	// the burst of write events a single copy produces converts once.
	seen map[string]time.Time
}

// New returns a watcher over src that writes PDFs to dest. led may be nil.
func New(conv *convert.Converter, led *ledger.Ledger, src, dest string, w io.Writer) *Watcher {
	return &Watcher{
		conv: conv,
		led:  led,
		src:  src,
		dest: dest,
		w:    w,
		seen: make(map[string]time.Time),
	}
}

// Run converts the existing backlog, then blocks handling filesystem events
// until ctx is cancelled. Cancellation takes effect between conversions.
func (wt *Watcher) Run(ctx context.Context) error {
	paths, err := convert.ListArchives(wt.src)
	if err != nil {
		return err
	}
	if len(paths) > 0 {
		wt.conv.ConvertBatch(ctx, paths, wt.dest, wt.led)
		for _, p := range paths {
			if info, err := os.Stat(p); err == nil {
				wt.seen[p] = info.ModTime()
			}
		}
	}
	if ctx.Err() != nil {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(wt.src); err != nil {
		return fmt.Errorf("watching %s: %w", wt.src, err)
	}
	fmt.Fprintf(wt.w, "watching %s\n", wt.src)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			wt.handleEvent(ctx, ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(wt.w, "warning: watch error: %v\n", err)
		}
	}
}

// handleEvent reacts to one filesystem event. Only archive paths matter:
// creates and writes mean a new or still-copying archive, removes and renames
// drop the path from tracking. Everything else is ignored.
func (wt *Watcher) handleEvent(ctx context.Context, ev fsnotify.Event) {
	if !archive.IsArchive(ev.Name) {
		return
	}
	if ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename) {
		delete(wt.seen, ev.Name)
		return
	}
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
		return
	}

	// If the copy still isn't finished after all settle attempts, convert
	// anyway: the converter reports the failure, and the copy's remaining
	// write events retrigger with a fresh mod time.
	if err := wt.waitSettled(ctx, ev.Name); err != nil && ctx.Err() != nil {
		return
	}

	info, err := os.Stat(ev.Name)
	if err != nil || info.IsDir() {
		return
	}
	if last, ok := wt.seen[ev.Name]; ok && last.Equal(info.ModTime()) {
		return
	}

	res := wt.conv.ConvertArchive(ev.Name, wt.dest)
	wt.seen[ev.Name] = info.ModTime()
	if wt.led != nil {
		if err := wt.led.Record(ctx, res, info.ModTime()); err != nil {
			fmt.Fprintf(wt.w, "warning: recording %s: %v\n", res.Archive, err)
		}
	}
}

// waitSettled waits for path to open cleanly as a zip archive. A file copied
// into the watched directory arrives over many writes with the central
// directory last, so a successful open means the copy is complete.
func (wt *Watcher) waitSettled(ctx context.Context, path string) error {
	var lastErr error
	for attempt := 0; attempt < settleAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(settleDelay):
			}
		}
		a, err := archive.Open(path)
		if err == nil {
			a.Close()
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("after %d attempts: %w", settleAttempts, lastErr)
}
