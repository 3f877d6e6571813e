package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trackup/internal/form"
	"trackup/internal/tracker"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var cookiesPath string
	var deleteOnSuccess bool

	cmd := &cobra.Command{
		Use:   "upload <form>",
		Short: "Submit a prepared upload form to the tracker",
		Long: `Upload submits a previously prepared form using a Netscape-format cookie
file exported from a logged-in browser session. On success it prints a direct
torrent download link, or the response page URL when the new torrent could not
be identified in the response.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			loaded, err := form.Load(args[0])
			if err != nil {
				return err
			}
			client := tracker.New(cfg.Tracker.BaseURL, cfg.Tracker.RequestTimeout, ctx.log())
			result, err := client.Submit(cmd.Context(), loaded, cookiesPath)
			if err != nil {
				return err
			}
			if deleteOnSuccess {
				// Best effort: a leftover form file is harmless.
				_ = os.Remove(args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Link())
			return nil
		},
	}

	cmd.Flags().StringVar(&cookiesPath, "cookies", "", "Path to a Netscape-format cookie file")
	cmd.Flags().BoolVar(&deleteOnSuccess, "delete-on-success", false, "Delete the form file after a successful submission")
	_ = cmd.MarkFlagRequired("cookies")

	return cmd
}
