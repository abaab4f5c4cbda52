package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show a map's keyboard type, keys and behaviors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadWithOverlays(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "source:  %s\n", m.SourceName())
		fmt.Fprintf(out, "type:    %s\n", m.KeyboardType())
		fmt.Fprintf(out, "overlay: %v\n", m.OverlayApplied())
		codes := m.KeyCodes()
		fmt.Fprintf(out, "keys:    %d\n", len(codes))
		for _, code := range codes {
			key, _ := m.Key(code)
			fmt.Fprintf(out, "\nkey %s\n", code)
			if key.Label != 0 {
				fmt.Fprintf(out, "  label:  %q\n", key.Label)
			}
			if key.Number != 0 {
				fmt.Fprintf(out, "  number: %q\n", key.Number)
			}
			for _, b := range key.Behaviors {
				switch {
				case b.FallbackKeyCode != 0:
					fmt.Fprintf(out, "  %-24s fallback %s\n", b.Meta, b.FallbackKeyCode)
				case b.ReplacementKeyCode != 0:
					fmt.Fprintf(out, "  %-24s replace %s\n", b.Meta, b.ReplacementKeyCode)
				default:
					fmt.Fprintf(out, "  %-24s %q\n", b.Meta, b.Character)
				}
			}
		}
		return nil
	},
}
