package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"trackup/internal/artifacts"
	"trackup/internal/config"
	"trackup/internal/fileutil"
	"trackup/internal/form"
	"trackup/internal/release"
	"trackup/internal/screenshots"
	"trackup/internal/services/gallery"
	"trackup/internal/toolrun"
)

type prepareOptions struct {
	mediaPath   string
	formPath    string
	imdb        string
	passkey     string
	contentType string
	mediaType   string
	codec       string
	group       string
	edition     string
	userRelease bool
	screens     int
}

func newPrepareCommand(ctx *commandContext) *cobra.Command {
	var opts prepareOptions

	cmd := &cobra.Command{
		Use:   "prepare <media> <form>",
		Short: "Create the torrent and artifacts and persist the upload form",
		Long: `Prepare builds the complete upload form for a media file or directory:
it creates a private torrent, captures the media report, extracts and hosts
screenshots, and serializes everything into the given form file for a later
"upload" invocation. Attributes left unset are inferred from the release name.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts.mediaPath = args[0]
			opts.formPath = args[1]
			if opts.screens == 0 {
				opts.screens = cfg.Screenshots.Count
			}
			if err := runPrepare(cmd.Context(), cfg, ctx.log(), toolrun.Exec{}, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "upload form written to %s\n", opts.formPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.imdb, "imdb", "", "IMDb ID, not the full link (e.g. tt0113243)")
	cmd.Flags().StringVar(&opts.passkey, "passkey", "", "Tracker passkey; doubles as the gallery API key")
	cmd.Flags().StringVar(&opts.contentType, "type", "", "Content type: Movies or TV-Shows (default auto-detect)")
	cmd.Flags().StringVar(&opts.mediaType, "media-type", "", "Source media type (default auto-detect)")
	cmd.Flags().StringVar(&opts.codec, "codec", "", "Codec (default auto-detect)")
	cmd.Flags().StringVar(&opts.group, "group", "", "Release group; UNKNOWN for an unknown group (default auto-detect)")
	cmd.Flags().StringVar(&opts.edition, "special-edition", "", "Edition name, if any")
	cmd.Flags().BoolVar(&opts.userRelease, "user-release", false, "Mark as a user release")
	cmd.Flags().IntVar(&opts.screens, "num-screens", 0, "Number of screenshots (default from config)")
	_ = cmd.MarkFlagRequired("imdb")
	_ = cmd.MarkFlagRequired("passkey")

	return cmd
}

func runPrepare(ctx context.Context, cfg *config.Config, logger *slog.Logger, runner toolrun.Runner, opts prepareOptions) error {
	if logger == nil {
		logger = slog.Default()
	}
	attrs := release.Attributes{
		Edition:     opts.edition,
		UserRelease: opts.userRelease,
		Screens:     opts.screens,
	}
	if opts.contentType != "" {
		attrs.Type = release.Explicit(release.ContentType(opts.contentType))
	}
	if opts.mediaType != "" {
		attrs.Media = release.Explicit(release.MediaType(opts.mediaType))
	}
	if opts.codec != "" {
		attrs.Codec = release.Explicit(release.Codec(opts.codec))
	}
	if opts.group != "" {
		attrs.Group = release.Explicit(opts.group)
	}

	resolved, err := release.Infer(opts.mediaPath, attrs)
	if err != nil {
		return err
	}
	logger.Info("release attributes resolved",
		"type", resolved.Type,
		"media", resolved.Media,
		"codec", resolved.Codec,
		"group", resolved.Group,
		"edition", resolved.Edition,
	)

	producer := artifacts.NewProducer(runner, cfg, logger)
	torrent, err := producer.CreateTorrent(ctx, opts.mediaPath)
	if err != nil {
		return err
	}
	report, err := producer.MediaInfo(ctx, opts.mediaPath)
	if err != nil {
		return err
	}

	pipeline := screenshots.NewPipeline(runner, cfg, logger)
	shots, err := pipeline.Take(ctx, opts.mediaPath, resolved.Screens)
	if err != nil {
		return err
	}
	images := make([]string, 0, len(shots))
	for _, shot := range shots {
		images = append(images, shot.Path)
	}

	target, err := fileutil.ResolveChild(opts.mediaPath)
	if err != nil {
		return err
	}
	galleryClient := gallery.New(cfg.Gallery.BaseURL, cfg.Gallery.RequestTimeout, logger)
	description, err := galleryClient.Upload(ctx, filepath.Base(target), images, opts.passkey)
	if err != nil {
		return err
	}

	assembled := form.Assemble(form.Inputs{
		Release:     resolved,
		IMDB:        opts.imdb,
		TorrentName: torrent.Name,
		TorrentData: torrent.Data,
		MediaReport: report,
		Description: description,
	})
	if err := form.Save(assembled, opts.formPath); err != nil {
		return err
	}
	logger.Info("upload form persisted", "path", opts.formPath, "fields", len(assembled.Fields))
	return nil
}
