// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfdoc assembles encoded page images into multi-page PDF
// documents, one image per page.
package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Options control document assembly.
type Options struct {
	// PageSpec is a page import description (e.g. "form:A4, pos:c").
	// Empty sizes each document page to its image.
	PageSpec string
}

// Write assembles pages, in order, into a single PDF at path. The document
// is staged in a temp file and renamed into place, so a failed write never
// leaves a partial document at the destination; an existing document at
// path is replaced.
func Write(path string, pages [][]byte, opts Options) error {
	if len(pages) == 0 {
		return errors.New("pdfdoc: no pages to write")
	}

	var imp *pdfcpu.Import
	if opts.PageSpec != "" {
		var err error
		imp, err = api.Import(opts.PageSpec, pdftypes.POINTS)
		if err != nil {
			return fmt.Errorf("parsing page spec %q: %w", opts.PageSpec, err)
		}
	}

	readers := make([]io.Reader, len(pages))
	for i, p := range pages {
		readers[i] = bytes.NewReader(p)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".comicbind-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	importErr := api.ImportImages(nil, tmpFile, readers, imp, model.NewDefaultConfiguration())
	closeErr := tmpFile.Close()
	if importErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("assembling %s: %w", filepath.Base(path), importErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// PageCount returns the number of pages in the document at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", filepath.Base(path), err)
	}
	return n, nil
}

// Optimize rewrites the document in place, pruning redundant objects. Run
// after assembling documents with abnormally large page counts.
func Optimize(path string) error {
	if err := api.OptimizeFile(path, "", model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("optimizing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// SetProperties embeds key/value metadata into the document in place.
func SetProperties(path string, props map[string]string) error {
	if len(props) == 0 {
		return nil
	}
	if err := api.AddPropertiesFile(path, "", props, model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("embedding properties in %s: %w", filepath.Base(path), err)
	}
	return nil
}
