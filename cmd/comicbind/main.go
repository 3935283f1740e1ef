// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the comicbind CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the comicbind CLI.
var rootCmd = &cobra.Command{
	Use:   "comicbind",
	Short: "Batch conversion of comic archives to PDF",
	Long: `comicbind converts comic-book archives (.cbz) into one PDF per archive.
Pages keep their natural reading order, unreadable pages are skipped rather
than failing the archive, and every archive reports a converted, skipped, or
failed outcome.

Each operation is a subcommand: convert, list, inspect, history, and watch.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./comicbind.yaml or ~/.config/comicbind/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("comicbind")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "comicbind"))
		}
	}

	viper.SetEnvPrefix("COMICBIND")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
