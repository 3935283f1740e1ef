package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/comicbind/internal/convert"
	"github.com/pdiddy/comicbind/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Convert the source directory and keep converting as archives arrive",
	Long: `Watch converts the source directory's existing archives, then stays
running and converts each .cbz that appears afterward. Archives still being
copied in are picked up once the copy completes. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	addConvertFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := convertConfigFromFlags(cmd)
	if err := resolveOutputDir(&cfg); err != nil {
		return err
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

	return watch.New(conv, led, cfg.SourceDir, cfg.OutputDir, os.Stdout).Run(ctx)
}
