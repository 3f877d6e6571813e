// Package screenshots extracts evenly spaced frames from a release and
// prepares them for gallery upload.
package screenshots

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"trackup/internal/config"
	"trackup/internal/fileutil"
	"trackup/internal/services"
	"trackup/internal/toolrun"
)

// Shot is one extracted frame and the timestamp it was taken at.
type Shot struct {
	Offset int
	Path   string
}

// Pipeline drives the probing and frame-extraction tools.
type Pipeline struct {
	runner  toolrun.Runner
	ffprobe string
	ffmpeg  string
	workDir string
	logger  *slog.Logger
}

// NewPipeline builds a Pipeline from configuration.
func NewPipeline(runner toolrun.Runner, cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		runner:  runner,
		ffprobe: cfg.Tools.FFprobe,
		ffmpeg:  cfg.Tools.FFmpeg,
		workDir: cfg.WorkDir(),
		logger:  logger,
	}
}

// Duration probes the media duration in seconds.
func (p *Pipeline) Duration(ctx context.Context, file string) (float64, error) {
	args := []string{"-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", file}
	result, err := p.runner.Run(ctx, p.ffprobe, args...)
	if err != nil {
		return 0, err
	}
	if result.ExitCode != 0 {
		return 0, services.Wrap(services.ErrExternalTool, "screenshots", "probe duration", string(bytes.TrimSpace(result.Output)), nil)
	}
	raw := strings.TrimSpace(string(result.Output))
	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, services.Wrap(services.ErrValidation, "screenshots", "probe duration", fmt.Sprintf("unparseable duration %q", raw), err)
	}
	return duration, nil
}

// Offsets computes the interior points of count+1 equal intervals across the
// duration. The duration is truncated to whole seconds first and the final
// product truncated again; this exact order is load-bearing for reproducible
// screenshot timestamps across runs.
func Offsets(duration float64, count int) []int {
	whole := float64(int(duration))
	offsets := make([]int, 0, count)
	for i := 1; i <= count; i++ {
		offsets = append(offsets, int(float64(i)/float64(count+1)*whole))
	}
	return offsets
}

// Capture extracts the single frame at offset seconds into outDir, named
// <stem>_<offset>.png.
func (p *Pipeline) Capture(ctx context.Context, file string, offset int, outDir string) (string, error) {
	outPath := filepath.Join(outDir, fmt.Sprintf("%s_%d.png", fileutil.Stem(file), offset))
	args := []string{"-ss", strconv.Itoa(offset), "-i", file, "-vframes", "1", outPath}
	result, err := p.runner.Run(ctx, p.ffmpeg, args...)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", services.Wrap(services.ErrExternalTool, "screenshots", "extract frame", string(bytes.TrimSpace(result.Output)), nil)
	}
	return outPath, nil
}

// Take probes the release, computes offsets, and captures one frame per
// offset in timestamp order. Directory inputs resolve to their first child
// entry. The output directory is recreated fresh once per run.
func (p *Pipeline) Take(ctx context.Context, path string, count int) ([]Shot, error) {
	target, err := fileutil.ResolveChild(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "screenshots", "take", "media path", err)
	}

	duration, err := p.Duration(ctx, target)
	if err != nil {
		return nil, err
	}

	outDir := filepath.Join(p.workDir, filepath.Base(target)+"_screens")
	if err := fileutil.RecreateDir(outDir); err != nil {
		return nil, err
	}

	offsets := Offsets(duration, count)
	p.logger.Info("extracting screenshots", "file", target, "duration", duration, "offsets", offsets)

	shots := make([]Shot, 0, len(offsets))
	for _, offset := range offsets {
		shotPath, err := p.Capture(ctx, target, offset, outDir)
		if err != nil {
			return nil, err
		}
		shots = append(shots, Shot{Offset: offset, Path: shotPath})
	}
	return shots, nil
}
