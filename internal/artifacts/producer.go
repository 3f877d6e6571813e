// Package artifacts produces the torrent file and media report a release
// submission embeds.
package artifacts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/anacrolix/torrent/metainfo"

	"trackup/internal/config"
	"trackup/internal/fileutil"
	"trackup/internal/services"
	"trackup/internal/toolrun"
)

// TorrentFile is a created and verified torrent artifact.
type TorrentFile struct {
	Path        string
	Name        string
	Data        []byte
	InfoName    string
	InfoHash    string
	PieceLength int64
}

// Producer invokes the torrent-creation and media-inspection tools.
type Producer struct {
	runner      toolrun.Runner
	mktorrent   string
	mediainfo   string
	pieceLength int
	outDir      string
	logger      *slog.Logger
}

// NewProducer builds a Producer from configuration. Torrent files are written
// into the system temporary directory.
func NewProducer(runner toolrun.Runner, cfg *config.Config, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{
		runner:      runner,
		mktorrent:   cfg.Tools.MkTorrent,
		mediainfo:   cfg.Tools.MediaInfo,
		pieceLength: cfg.Tools.PieceLength,
		outDir:      os.TempDir(),
		logger:      logger,
	}
}

// CreateTorrent runs the torrent tool against path with the private flag and
// the configured piece length, replacing any previous output file, then parses
// the result to verify it.
func (p *Producer) CreateTorrent(ctx context.Context, path string) (TorrentFile, error) {
	base, err := fileutil.TorrentBaseName(path)
	if err != nil {
		return TorrentFile{}, services.Wrap(services.ErrValidation, "torrent", "create", "media path", err)
	}
	outPath := filepath.Join(p.outDir, base+".torrent")
	if err := os.Remove(outPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return TorrentFile{}, fmt.Errorf("remove stale torrent %s: %w", outPath, err)
	}

	args := []string{"-l", strconv.Itoa(p.pieceLength), "-p", "-o", outPath, path}
	result, err := p.runner.Run(ctx, p.mktorrent, args...)
	if err != nil {
		return TorrentFile{}, err
	}
	if result.ExitCode != 0 {
		return TorrentFile{}, services.Wrap(services.ErrExternalTool, "torrent", "create", string(bytes.TrimSpace(result.Output)), nil)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return TorrentFile{}, fmt.Errorf("read created torrent: %w", err)
	}

	torrent := TorrentFile{Path: outPath, Name: base + ".torrent", Data: data}
	mi, err := metainfo.Load(bytes.NewReader(data))
	if err != nil {
		return TorrentFile{}, services.Wrap(services.ErrExternalTool, "torrent", "verify", "tool produced unreadable metainfo", err)
	}
	info, err := mi.UnmarshalInfo()
	if err != nil {
		return TorrentFile{}, services.Wrap(services.ErrExternalTool, "torrent", "verify", "tool produced unreadable info dictionary", err)
	}
	if info.Private == nil || !*info.Private {
		return TorrentFile{}, services.Wrap(services.ErrExternalTool, "torrent", "verify", "tool did not set the private flag", nil)
	}
	torrent.InfoName = info.Name
	torrent.InfoHash = mi.HashInfoBytes().HexString()
	torrent.PieceLength = info.PieceLength

	p.logger.Info("torrent created",
		"path", outPath,
		"info_name", torrent.InfoName,
		"infohash", torrent.InfoHash,
		"piece_length", torrent.PieceLength,
	)
	return torrent, nil
}

// MediaInfo runs the media-inspection tool and returns its report verbatim.
// Directory inputs resolve to their first child entry.
func (p *Producer) MediaInfo(ctx context.Context, path string) (string, error) {
	target, err := fileutil.ResolveChild(path)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "mediainfo", "inspect", "media path", err)
	}
	result, err := p.runner.Run(ctx, p.mediainfo, target)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", services.Wrap(services.ErrExternalTool, "mediainfo", "inspect", string(bytes.TrimSpace(result.Output)), nil)
	}
	return string(result.Output), nil
}
