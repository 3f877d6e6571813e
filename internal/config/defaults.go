package config

const (
	defaultTrackerBaseURL = "https://awesome-hd.me"
	defaultGalleryBaseURL = "https://img.awesome-hd.me"
	defaultRequestTimeout = 60
	defaultMkTorrent      = "mktorrent"
	defaultMediaInfo      = "mediainfo"
	defaultFFprobe        = "ffprobe"
	defaultFFmpeg         = "ffmpeg"
	// mktorrent takes the piece length as a power-of-two exponent; 23 is 8 MiB.
	defaultPieceLength     = 23
	defaultScreenshotCount = 4
	defaultLogLevel        = "info"
	defaultLogFormat       = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tracker: Tracker{
			BaseURL:        defaultTrackerBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Gallery: Gallery{
			BaseURL:        defaultGalleryBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Tools: Tools{
			MkTorrent:   defaultMkTorrent,
			MediaInfo:   defaultMediaInfo,
			FFprobe:     defaultFFprobe,
			FFmpeg:      defaultFFmpeg,
			PieceLength: defaultPieceLength,
		},
		Screenshots: Screenshots{
			Count: defaultScreenshotCount,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
