package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trackup/internal/toolrun"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Report availability of the external tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			tools := []struct{ name, command string }{
				{"torrent creation", cfg.Tools.MkTorrent},
				{"media inspection", cfg.Tools.MediaInfo},
				{"duration probing", cfg.Tools.FFprobe},
				{"frame extraction", cfg.Tools.FFmpeg},
			}
			rows := make([][]string, 0, len(tools))
			missing := 0
			for _, tool := range tools {
				status := "ok"
				if !toolrun.Available(tool.command) {
					status = "missing"
					missing++
				}
				rows = append(rows, []string{tool.name, tool.command, status})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Tool", "Command", "Status"}, rows))
			if missing > 0 {
				return fmt.Errorf("%d required tool(s) missing from PATH", missing)
			}
			return nil
		},
	}
}
