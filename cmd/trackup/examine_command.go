package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trackup/internal/form"
)

func newExamineCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "examine <form>",
		Short: "Display a prepared upload form with the torrent blob redacted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := form.Load(args[0])
			if err != nil {
				return err
			}
			display := form.Examine(loaded)
			rows := make([][]string, 0, len(display))
			for _, name := range loaded.FieldNames() {
				rows = append(rows, []string{name, display[name]})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows))
			return nil
		},
	}
}
