package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/pdiddy/comicbind/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded conversion outcomes",
	Long: `History lists the most recent outcomes recorded in the conversion
ledger, newest first. A ledger path is required: pass --ledger or set
ledger_path in the config file.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("ledger", "", "SQLite ledger path")
	historyCmd.Flags().Int("limit", 0, "maximum entries to show (default 20)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ledgerPath := stringSetting(cmd, "ledger", "ledger_path")
	if ledgerPath == "" {
		return fmt.Errorf("ledger path required: pass --ledger or set ledger_path")
	}
	limit, _ := cmd.Flags().GetInt("limit")

	led, err := ledger.Open(ledgerPath)
	if err != nil {
		return err
	}
	defer led.Close()

	entries, err := led.History(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No recorded conversions.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-9s  %-36s  %5s  %10s  %-19s  %s\n",
		"Status", "Archive", "Pages", "Size", "Completed", "Detail")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, e := range entries {
		name := filepath.Base(e.ArchivePath)
		if len(name) > 36 {
			name = name[:33] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-9s  %-36s  %5d  %10s  %-19s  %s\n",
			e.Status, name, e.Pages,
			units.HumanSize(float64(e.OutputBytes)),
			e.CompletedAt.Format("2006-01-02 15:04:05"),
			e.Detail)
	}

	fmt.Fprintf(os.Stdout, "\n%d entries\n", len(entries))
	return nil
}
