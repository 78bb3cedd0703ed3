package config

import "time"

// VideoConfig holds per-video overrides.
type VideoConfig struct {
	// Mode overrides the global mode for this video.
	Mode string `yaml:"mode,omitempty"`

	// Languages overrides the caption language preference for this video.
	Languages []string `yaml:"languages,omitempty"`
}

// File represents the structure of the .ytcomments.yaml configuration file.
// Zero values mean "not set" and leave the corresponding default alone.
type File struct {
	// APIKey is the YouTube Data API key.
	// Prefer the environment variable; a key in a file is stored in plain text.
	APIKey string `yaml:"api_key,omitempty"`

	// Mode is the default export mode.
	Mode string `yaml:"mode,omitempty"`

	// Format is the default output format.
	Format string `yaml:"format,omitempty"`

	// OutputDir is the default output directory.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Languages is the caption language preference.
	Languages []string `yaml:"languages,omitempty"`

	// Proxy is a SOCKS5 proxy address.
	Proxy string `yaml:"proxy,omitempty"`

	// Timeout bounds each API request, e.g. "30s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Parallel is the number of videos exported concurrently.
	Parallel int `yaml:"parallel,omitempty"`

	// History enables the export ledger.
	History bool `yaml:"history,omitempty"`

	// Videos maps video IDs to per-video overrides.
	Videos map[string]VideoConfig `yaml:"videos,omitempty"`
}

// GetVideoConfig returns the overrides for a video, or the zero value.
func (f *File) GetVideoConfig(videoID string) VideoConfig {
	if f == nil {
		return VideoConfig{}
	}
	return f.Videos[videoID]
}

// Apply copies the file's settings into cfg.
// Fields listed in explicit were set on the command line and are left alone.
func (f *File) Apply(cfg *Config, explicit map[string]bool) {
	if f == nil {
		return
	}
	cfg.File = f

	if f.APIKey != "" && cfg.APIKey == "" {
		cfg.APIKey = f.APIKey
	}
	if f.Mode != "" && !explicit["mode"] {
		cfg.Mode = f.Mode
	}
	if f.Format != "" && !explicit["format"] {
		cfg.Format = f.Format
	}
	if f.OutputDir != "" && !explicit["output-dir"] {
		cfg.OutputDir = f.OutputDir
	}
	if len(f.Languages) > 0 && !explicit["languages"] {
		cfg.Languages = f.Languages
	}
	if f.Proxy != "" && !explicit["proxy"] {
		cfg.ProxyAddress = f.Proxy
	}
	if f.Timeout > 0 && !explicit["timeout"] {
		cfg.Timeout = f.Timeout
	}
	if f.Parallel > 0 && !explicit["parallel"] {
		cfg.Parallel = f.Parallel
	}
	if f.History && !explicit["history"] {
		cfg.History = true
	}
}
