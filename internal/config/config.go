package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/ytcomments/internal/document"
	"github.com/nao1215/ytcomments/internal/model"
)

// Default configuration values.
const (
	// DefaultTimeout bounds each API request.
	DefaultTimeout = 30 * time.Second

	// DefaultMode exports comments only.
	DefaultMode = "comments"

	// DefaultFormat is the plain-text layout.
	DefaultFormat = "text"

	// DefaultOutputDir writes documents to the working directory.
	DefaultOutputDir = "."

	// DefaultParallel exports one video at a time.
	DefaultParallel = 1

	// AppName is the application name used for XDG directory paths.
	AppName = "ytcomments"

	// DefaultUserAgent identifies ytcomments in API requests.
	DefaultUserAgent = "ytcomments (+https://github.com/nao1215/ytcomments)"

	// APIKeyEnv is the preferred environment variable holding the API key.
	APIKeyEnv = "YTCOMMENTS_API_KEY"

	// FallbackAPIKeyEnv is consulted when APIKeyEnv is unset.
	FallbackAPIKeyEnv = "YOUTUBE_API_KEY"
)

// Config holds all options of an export run.
// It is populated from CLI flags, environment and the config file, then
// passed down explicitly; there is no global configuration.
type Config struct {
	// APIKey is the YouTube Data API key. It is never logged or persisted.
	APIKey string

	// Mode selects the content kinds: "comments", "transcript", "all" or a comma list.
	Mode string

	// Format is the output format: "text", "markdown" or "json".
	Format string

	// OutputDir is where documents are written.
	OutputDir string

	// Targets are the video IDs or URLs to export.
	Targets []string

	// ListFile is a file with one video ID or URL per line.
	ListFile string

	// Parallel is the number of videos exported concurrently.
	Parallel int

	// Timeout bounds each API request.
	Timeout time.Duration

	// Languages is the caption language preference for transcripts.
	Languages []string

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" format.
	ProxyAddress string

	// UserAgent is sent with API requests.
	UserAgent string

	// Force allows overwriting existing output files.
	Force bool

	// History enables the export ledger.
	History bool

	// DataDir is where the export ledger lives.
	DataDir string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicit config file path, if any.
	ConfigFilePath string

	// File is the loaded configuration file. Never nil after LoadConfigFile
	// or NewConfig.
	File *File
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Mode:      DefaultMode,
		Format:    DefaultFormat,
		OutputDir: DefaultOutputDir,
		Parallel:  DefaultParallel,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		DataDir:   XDGDataDir(),
		File:      &File{Videos: make(map[string]VideoConfig)},
	}
}

// XDGDataDir returns the XDG data directory for ytcomments.
// On Linux: ~/.local/share/ytcomments
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for ytcomments.
// On Linux: ~/.config/ytcomments
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ParsedMode returns Mode as a model.Mode.
func (c *Config) ParsedMode() (model.Mode, error) {
	return model.ParseMode(c.Mode)
}

// ModeFor returns the mode for a video, honoring per-video overrides.
func (c *Config) ModeFor(videoID string) (model.Mode, error) {
	if vc := c.File.GetVideoConfig(videoID); vc.Mode != "" {
		return model.ParseMode(vc.Mode)
	}
	return c.ParsedMode()
}

// LanguagesFor returns the caption languages for a video, honoring per-video overrides.
func (c *Config) LanguagesFor(videoID string) []string {
	if vc := c.File.GetVideoConfig(videoID); len(vc.Languages) > 0 {
		return vc.Languages
	}
	return c.Languages
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Parallel <= 0 {
		return ErrInvalidParallel
	}

	if _, err := c.ParsedMode(); err != nil {
		return err
	}
	if c.File != nil {
		for _, vc := range c.File.Videos {
			if vc.Mode == "" {
				continue
			}
			if _, err := model.ParseMode(vc.Mode); err != nil {
				return err
			}
		}
	}

	if _, err := document.NewFormatter(c.Format); err != nil {
		return ErrInvalidFormat
	}

	return nil
}
