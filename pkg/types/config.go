package types

// Default conversion settings, applied wherever the configuration file,
// environment, and flags leave a value unset.
const (
	DefaultBatchSize       = 51
	DefaultJPEGQuality     = 85
	DefaultLargeDocPages   = 400
	DefaultLargeDocQuality = 70
	DefaultMaxWidth        = 1600
	DefaultMaxHeight       = 2400
	DefaultDPI             = 96
)

// ConvertConfig holds settings for a conversion run. Every knob the converter
// consults lives here and is resolved once at startup.
type ConvertConfig struct {
	// SourceDir is the directory scanned for comic archives. The run aborts
	// before any conversion when it does not exist as a directory.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// OutputDir receives the generated documents. Empty means the directory
	// containing the running binary.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// BatchSize is the number of pages decoded between memory releases
	// (default 51). Peak decoded-page memory is proportional to one batch.
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// JPEGQuality is the encode quality for document pages, 1-100 (default 85).
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality"`

	// LargeDocPages is the page count above which LargeDocQuality applies
	// and a post-write optimize pass runs (default 400).
	LargeDocPages int `json:"large_doc_pages" yaml:"large_doc_pages"`

	// LargeDocQuality is the encode quality for oversized documents (default 70).
	LargeDocQuality int `json:"large_doc_quality" yaml:"large_doc_quality"`

	// Normalize flattens palette and alpha pages onto an opaque white
	// background before encoding.
	Normalize bool `json:"normalize" yaml:"normalize"`

	// Resize enables downscaling pages that exceed MaxWidth x MaxHeight.
	Resize bool `json:"resize" yaml:"resize"`

	// MaxWidth and MaxHeight bound page dimensions when Resize is set.
	// Aspect ratio is preserved; pages already inside the box pass through.
	MaxWidth  int `json:"max_width" yaml:"max_width"`
	MaxHeight int `json:"max_height" yaml:"max_height"`

	// UseAccelerator routes decoded pages through the accelerated clamp
	// stage when a device is available. A device failure on one page falls
	// back to the plain decode for that page.
	UseAccelerator bool `json:"use_accelerator" yaml:"use_accelerator"`

	// PageSpec is an optional page import description (e.g. "form:A4, pos:c").
	// Empty lets each document page take the size of its image.
	PageSpec string `json:"page_spec,omitempty" yaml:"page_spec,omitempty"`

	// DPI is the nominal output resolution recorded in run reports.
	DPI int `json:"dpi" yaml:"dpi"`

	// EmbedInfo copies ComicInfo metadata (title, series, writer) into the
	// generated document's properties when the archive carries it.
	EmbedInfo bool `json:"embed_info" yaml:"embed_info"`

	// LedgerPath is the SQLite conversion ledger. Empty disables the ledger;
	// nothing persists between runs.
	LedgerPath string `json:"ledger_path,omitempty" yaml:"ledger_path,omitempty"`

	// Resume skips archives whose ledger entry matches their current
	// modification time and whose output file still exists. Off by default:
	// without it, existing outputs are overwritten.
	Resume bool `json:"resume" yaml:"resume"`

	// ReportPath is where the YAML run report is written. Empty disables it.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}

// WithDefaults returns a copy of c with unset numeric knobs replaced by the
// package defaults.
func (c ConvertConfig) WithDefaults() ConvertConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.JPEGQuality <= 0 {
		c.JPEGQuality = DefaultJPEGQuality
	}
	if c.LargeDocPages <= 0 {
		c.LargeDocPages = DefaultLargeDocPages
	}
	if c.LargeDocQuality <= 0 {
		c.LargeDocQuality = DefaultLargeDocQuality
	}
	if c.MaxWidth <= 0 {
		c.MaxWidth = DefaultMaxWidth
	}
	if c.MaxHeight <= 0 {
		c.MaxHeight = DefaultMaxHeight
	}
	if c.DPI <= 0 {
		c.DPI = DefaultDPI
	}
	return c
}
