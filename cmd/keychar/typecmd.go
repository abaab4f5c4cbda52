package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keychar/internal/synth"
)

var flagDeviceID int32

var typeCmd = &cobra.Command{
	Use:   "type <file> <text>",
	Short: "Synthesize the key events that would type text on a map",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadWithOverlays(args[0])
		if err != nil {
			return err
		}
		events, err := synth.Synthesize(m, flagDeviceID, args[1])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, ev := range events {
			fmt.Fprintln(out, ev)
		}
		return nil
	},
}

func init() {
	typeCmd.Flags().Int32Var(&flagDeviceID, "device", 0, "device id for emitted events")
}
