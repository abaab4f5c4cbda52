// Package main is the entry point for the keychar layout tool.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/keychar/internal/charmap"
)

// Version information (set via ldflags during build).
var version = "dev"

var (
	flagFormat  string
	flagOverlay []string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "keychar",
	Short:         "Parse, inspect and exercise key character maps",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.WarnLevel
		if flagVerbose {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
		return nil
	},
}

var log zerolog.Logger

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "any",
		"acceptance format: base, overlay or any")
	rootCmd.PersistentFlags().StringArrayVar(&flagOverlay, "overlay", nil,
		"overlay map file to combine onto the base map")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(typeCmd)
}

// acceptFormat resolves the --format flag.
func acceptFormat() (charmap.Format, error) {
	format, ok := charmap.FormatFromName(flagFormat)
	if !ok {
		return 0, fmt.Errorf("unknown format %q", flagFormat)
	}
	return format, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
