package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/pdiddy/comicbind/internal/archive"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive>",
	Short: "Show an archive's image entries and metadata",
	Long: `Inspect opens one archive and prints its image entries in page order,
entries that would not become pages, and any ComicInfo.xml metadata.`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one archive path")
	}

	a, err := archive.Open(args[0])
	if err != nil {
		return err
	}
	defer a.Close()

	entries := a.ImageEntries()
	fmt.Fprintf(os.Stdout, "%s: %d image entries\n", a.Stem(), len(entries))
	for i, e := range entries {
		fmt.Fprintf(os.Stdout, "  %4d  %s (%s)\n", i+1, e.Name, units.HumanSize(float64(e.Size)))
	}

	info, ok := a.Info()
	if !ok {
		fmt.Fprintln(os.Stdout, "\nno ComicInfo metadata")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\nComicInfo: %s\n", info.DisplayTitle())
	props := info.Properties()
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(os.Stdout, "  %-10s %s\n", k, props[k])
	}
	if info.PageCount > 0 {
		fmt.Fprintf(os.Stdout, "  %-10s %d\n", "Pages", info.PageCount)
	}
	return nil
}
