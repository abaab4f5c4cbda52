package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keychar/internal/charmap"
	"github.com/dshills/keychar/internal/loader"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Parse map files and report errors with line numbers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := acceptFormat()
		if err != nil {
			return err
		}
		src := loader.NewFileSource(".")
		ld := loader.New(src, loader.WithFormat(format), loader.WithLogger(log))

		failed := 0
		for _, path := range args {
			if _, err := ld.Load(path); err != nil {
				failed++
				// A ParseError already names its source and line.
				var perr *charmap.ParseError
				if errors.As(err, &perr) {
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL: %v\n", perr)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: FAIL: %v\n", path, err)
				}
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed to parse", failed, len(args))
		}
		return nil
	},
}
