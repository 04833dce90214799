package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/protravel/internal/model"
	"github.com/nao1215/protravel/internal/transport"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "protravel"

	// DefaultOutputDir receives exfiltrated files and the frontier snapshot.
	DefaultOutputDir = "out"

	// DefaultFileList is the seed list read on every run when present.
	DefaultFileList = "filelist.txt"

	// DefaultTimeout bounds each request.
	DefaultTimeout = transport.DefaultTimeout
)

// Config holds all configuration options for a crawl.
// It is populated from CLI flags, optionally merged with the .protravel
// file, and passed through the application rather than kept as global state.
type Config struct {
	// Target is the vulnerable URL prefix each path is appended to,
	// e.g. "http://host/download?file=../../..".
	Target string

	// Headers are raw "Key: Value" headers sent with every request.
	Headers []string

	// OutputDir receives fetched files and holds .queue.txt and .done.txt.
	OutputDir string

	// FileList is a newline-delimited list of seed paths. A missing file is
	// not an error. Empty disables it.
	FileList string

	// Seeds are explicit starting paths given with --path.
	Seeds []string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// Proxy is an optional SOCKS5 proxy in "host:port" form.
	Proxy string

	// InsecureTLS disables certificate verification for https targets.
	InsecureTLS bool

	// Rate limits requests per second. Zero means unlimited.
	Rate float64

	// UserAgent overrides the transport's default User-Agent when set.
	UserAgent string

	// MaxBodySize caps the bytes read per response. Zero means the
	// transport default.
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// DBDir is the directory of the loot database.
	// Defaults to XDG data directory (~/.local/share/protravel on Linux).
	DBDir string

	// SaveToDB records every attempt and notice in the loot database.
	SaveToDB bool

	// ReportFile is where the run report is written. Empty disables it.
	ReportFile string

	// JSONReport writes the report as JSON. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport writes the report as Markdown. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, .protravel is searched in the current and home directories.
	ConfigFilePath string

	// TargetConfigs holds the per-target settings loaded from the config file.
	TargetConfigs *File
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		OutputDir: DefaultOutputDir,
		FileList:  DefaultFileList,
		Timeout:   DefaultTimeout,
		DBDir:     XDGDataDir(),
		SaveToDB:  true,
	}
}

// XDGDataDir returns the XDG data directory for protravel.
// On Linux: ~/.local/share/protravel
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for protravel.
// On Linux: ~/.config/protravel
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ApplyTargetConfig merges file settings into c. Values given on the
// command line win: file headers are sent first so CLI headers with the
// same name replace them, file paths are added to the seeds, and the file
// proxy and user agent only fill empty fields.
func (c *Config) ApplyTargetConfig(tc TargetConfig) {
	if len(tc.Headers) > 0 {
		merged := make([]string, 0, len(tc.Headers)+len(c.Headers))
		for _, k := range sortedKeys(tc.Headers) {
			merged = append(merged, k+": "+tc.Headers[k])
		}
		c.Headers = append(merged, c.Headers...)
	}
	c.Seeds = append(c.Seeds, tc.Paths...)
	if c.Proxy == "" {
		c.Proxy = tc.Proxy
	}
	if c.UserAgent == "" {
		c.UserAgent = tc.UserAgent
	}
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.Target == "" {
		return ErrNoTarget
	}

	for _, h := range c.Headers {
		if _, _, err := transport.ParseHeader(h); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidHeader, h)
		}
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Rate < 0 {
		return ErrInvalidRate
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.Proxy != "" && !transport.IsValidProxyAddress(c.Proxy) {
		return fmt.Errorf("%w: %q", ErrInvalidProxy, c.Proxy)
	}

	for _, s := range c.Seeds {
		if !model.IsAbsolute(s) {
			return fmt.Errorf("%w: %q", ErrRelativeSeed, s)
		}
	}

	return nil
}
