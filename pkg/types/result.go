// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Status indicates the outcome of converting one archive.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// ArchiveResult records the outcome of converting one comic archive.
type ArchiveResult struct {
	// Archive is the base name of the source archive (e.g. "Vol 01.cbz").
	Archive string `json:"archive" yaml:"archive"`

	// Path is the full path of the source archive.
	Path string `json:"path" yaml:"path"`

	// Status is the conversion outcome: converted, skipped, or failed.
	Status Status `json:"status" yaml:"status"`

	// Reason explains a skip or failure ("no image entries", an error message).
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Pages is the number of pages written to the output document.
	Pages int `json:"pages" yaml:"pages"`

	// FailedEntries counts archive entries that could not be decoded and
	// were left out of the document.
	FailedEntries int `json:"failed_entries,omitempty" yaml:"failed_entries,omitempty"`

	// OutputPath is the written document, empty for skips and failures.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// OutputBytes is the size of the written document.
	OutputBytes int64 `json:"output_bytes,omitempty" yaml:"output_bytes,omitempty"`

	// Duration is the wall-clock time spent on this archive.
	Duration time.Duration `json:"duration" yaml:"duration"`
}
