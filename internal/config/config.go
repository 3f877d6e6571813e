package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Tracker contains the upload endpoint configuration.
type Tracker struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Gallery contains the screenshot hosting service configuration.
type Gallery struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Tools names the external binaries the preparation pipeline invokes.
type Tools struct {
	MkTorrent   string `toml:"mktorrent"`
	MediaInfo   string `toml:"mediainfo"`
	FFprobe     string `toml:"ffprobe"`
	FFmpeg      string `toml:"ffmpeg"`
	PieceLength int    `toml:"piece_length"`
}

// Screenshots contains screenshot pipeline configuration.
type Screenshots struct {
	Count   int    `toml:"count"`
	WorkDir string `toml:"work_dir"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root configuration document.
type Config struct {
	Tracker     Tracker     `toml:"tracker"`
	Gallery     Gallery     `toml:"gallery"`
	Tools       Tools       `toml:"tools"`
	Screenshots Screenshots `toml:"screenshots"`
	Logging     Logging     `toml:"logging"`
}

// DefaultPath returns the conventional config location.
func DefaultPath() string {
	return expandHome("~/.config/trackup/config.toml")
}

// Load reads the configuration at path, or the default location when path is
// empty. A missing file yields the defaults. The returned string is the path
// that was consulted.
func Load(path string) (*Config, string, error) {
	path = strings.TrimSpace(path)
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	path = expandHome(path)

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, path, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// Defaults are a complete configuration.
	default:
		return nil, path, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.Screenshots.WorkDir = expandHome(cfg.Screenshots.WorkDir)
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return &cfg, path, nil
}

// Validate checks invariants the rest of the program assumes.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Tracker.BaseURL) == "" {
		return errors.New("config: tracker base_url must not be empty")
	}
	if strings.TrimSpace(c.Gallery.BaseURL) == "" {
		return errors.New("config: gallery base_url must not be empty")
	}
	if c.Tools.PieceLength <= 0 {
		return fmt.Errorf("config: tools piece_length %d must be positive", c.Tools.PieceLength)
	}
	if c.Screenshots.Count <= 0 {
		return fmt.Errorf("config: screenshots count %d must be positive", c.Screenshots.Count)
	}
	return nil
}

// WorkDir returns the screenshot working directory, defaulting to the system
// temporary directory.
func (c *Config) WorkDir() string {
	if dir := strings.TrimSpace(c.Screenshots.WorkDir); dir != "" {
		return dir
	}
	return os.TempDir()
}

// Sample returns the embedded sample configuration document.
func Sample() string {
	return sampleConfig
}

// WriteSample writes the sample configuration to path, refusing to overwrite.
func WriteSample(path string) error {
	path = expandHome(path)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
