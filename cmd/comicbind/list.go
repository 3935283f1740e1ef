package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/pdiddy/comicbind/internal/archive"
	"github.com/pdiddy/comicbind/internal/convert"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List source archives in conversion order",
	Long: `List shows the archives the convert command would process, in natural
reading order, with their image entry counts and file sizes.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("source", ".", "source directory containing .cbz archives")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	srcDir := stringSetting(cmd, "source", "source_dir")

	paths, err := convert.ListArchives(srcDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("No archives found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %8s  %10s\n", "Archive", "Entries", "Size")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 62))

	for _, path := range paths {
		name := archive.Stem(path)
		if len(name) > 40 {
			name = name[:37] + "..."
		}

		size := "?"
		if info, err := os.Stat(path); err == nil {
			size = units.HumanSize(float64(info.Size()))
		}

		a, err := archive.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stdout, "%-40s  %8s  %10s  (not a valid archive)\n", name, "-", size)
			continue
		}
		entries := len(a.ImageEntries())
		a.Close()

		fmt.Fprintf(os.Stdout, "%-40s  %8d  %10s\n", name, entries, size)
	}

	fmt.Fprintf(os.Stdout, "\n%d archive(s)\n", len(paths))
	return nil
}
