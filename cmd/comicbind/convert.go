// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/comicbind/internal/convert"
	"github.com/pdiddy/comicbind/internal/ledger"
	"github.com/pdiddy/comicbind/internal/report"
	"github.com/pdiddy/comicbind/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [archives...]",
	Short: "Convert comic archives to per-archive PDF documents",
	Long: `Convert turns each .cbz archive into a PDF with one page per image
entry, in natural reading order. Without arguments every archive in the
source directory converts. Archives with no readable pages are skipped,
and a page that fails to decode skips the page, not the archive.`,
	RunE: runConvert,
}

func init() {
	addConvertFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

// addConvertFlags registers the conversion flag set. The convert and watch
// commands share it.
func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", ".", "source directory containing .cbz archives")
	cmd.Flags().String("output", "", "output directory for PDFs (default: directory of the running binary)")
	cmd.Flags().Int("batch-size", 0, "pages decoded per batch (default 51)")
	cmd.Flags().Int("quality", 0, "JPEG quality for encoded pages (default 85)")
	cmd.Flags().Int("large-doc-pages", 0, "page count above which the large-document quality applies (default 400)")
	cmd.Flags().Int("large-doc-quality", 0, "JPEG quality for large documents (default 70)")
	cmd.Flags().Bool("normalize", false, "flatten transparency onto a white background")
	cmd.Flags().Bool("resize", false, "fit pages into the maximum page box")
	cmd.Flags().Int("max-width", 0, "maximum page width in pixels when resizing (default 1600)")
	cmd.Flags().Int("max-height", 0, "maximum page height in pixels when resizing (default 2400)")
	cmd.Flags().Bool("accel", false, "use the vector accelerator when available")
	cmd.Flags().String("page-spec", "", "pdfcpu page description (for example \"form:A4, pos:c\")")
	cmd.Flags().Int("dpi", 0, "resolution metadata recorded with the run (default 96)")
	cmd.Flags().Bool("embed-info", false, "embed ComicInfo.xml metadata as PDF document properties")
	cmd.Flags().String("ledger", "", "SQLite ledger path for recording outcomes")
	cmd.Flags().Bool("resume", false, "skip archives whose recorded conversion is up to date (needs --ledger)")
	cmd.Flags().String("report", "", "write a YAML run report to this path")
}

// Settings resolve flag first, then config file or environment, then the
// flag's default. Numeric zero values fall through to WithDefaults.

func stringSetting(cmd *cobra.Command, flag, key string) string {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func intSetting(cmd *cobra.Command, flag, key string) int {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

func boolSetting(cmd *cobra.Command, flag, key string) bool {
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetBool(key)
	}
	v, _ := cmd.Flags().GetBool(flag)
	return v
}

func convertConfigFromFlags(cmd *cobra.Command) types.ConvertConfig {
	cfg := types.ConvertConfig{
		SourceDir:       stringSetting(cmd, "source", "source_dir"),
		OutputDir:       stringSetting(cmd, "output", "output_dir"),
		BatchSize:       intSetting(cmd, "batch-size", "batch_size"),
		JPEGQuality:     intSetting(cmd, "quality", "jpeg_quality"),
		LargeDocPages:   intSetting(cmd, "large-doc-pages", "large_doc_pages"),
		LargeDocQuality: intSetting(cmd, "large-doc-quality", "large_doc_quality"),
		Normalize:       boolSetting(cmd, "normalize", "normalize"),
		Resize:          boolSetting(cmd, "resize", "resize"),
		MaxWidth:        intSetting(cmd, "max-width", "max_width"),
		MaxHeight:       intSetting(cmd, "max-height", "max_height"),
		UseAccelerator:  boolSetting(cmd, "accel", "use_accelerator"),
		PageSpec:        stringSetting(cmd, "page-spec", "page_spec"),
		DPI:             intSetting(cmd, "dpi", "dpi"),
		EmbedInfo:       boolSetting(cmd, "embed-info", "embed_info"),
		LedgerPath:      stringSetting(cmd, "ledger", "ledger_path"),
		Resume:          boolSetting(cmd, "resume", "resume"),
		ReportPath:      stringSetting(cmd, "report", "report_path"),
	}
	return cfg.WithDefaults()
}

// resolveOutputDir fills the output directory default (the directory of the
// running binary) and ensures it exists.
func resolveOutputDir(cfg *types.ConvertConfig) error {
	if cfg.OutputDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("resolving output directory: %w", err)
		}
		cfg.OutputDir = filepath.Dir(exe)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}

func openLedger(cfg types.ConvertConfig) (*ledger.Ledger, error) {
	if cfg.LedgerPath == "" {
		return nil, nil
	}
	return ledger.Open(cfg.LedgerPath)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := convertConfigFromFlags(cmd)
	if err := resolveOutputDir(&cfg); err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		var err error
		paths, err = convert.ListArchives(cfg.SourceDir)
		if err != nil {
			return err
		}
	}

	led, err := openLedger(cfg)
	if err != nil {
		return err
	}
	if led != nil {
		defer led.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conv := convert.New(cfg, os.Stdout)
	fmt.Fprintf(os.Stdout, "using device: %s\n", conv.DeviceName())

	var rep *types.RunReport
	if cfg.ReportPath != "" {
		rep = report.New(cfg.SourceDir, cfg.OutputDir, conv.DeviceName(), cfg.DPI)
	}

	result := conv.ConvertBatch(ctx, paths, cfg.OutputDir, led)

	if rep != nil {
		for _, r := range result.Results {
			rep.Add(r)
		}
		if err := report.Write(cfg.ReportPath, rep); err != nil {
			fmt.Fprintf(os.Stdout, "warning: writing run report: %v\n", err)
		} else {
			report.Summarize(os.Stdout, rep)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d archive(s) failed conversion", result.Failed)
	}
	return nil
}
