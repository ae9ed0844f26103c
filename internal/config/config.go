package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/creachadair/stringset"
	"gopkg.in/yaml.v3"
)

// DefaultPort is used when neither PORT nor the config file sets one
const DefaultPort = 5174

// PortEnv selects the HTTP listen port
const PortEnv = "PORT"

var (
	validFormats   = stringset.New("text", "srt", "timestamps", "json")
	validProviders = stringset.New("youtube", "ytdlp")
)

// Config represents the application configuration
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Server   ServerConfig   `yaml:"server"`
	Resolver ResolverConfig `yaml:"resolver"`
	HTTP     HTTPConfig     `yaml:"http"`
	Paths    PathsConfig    `yaml:"paths"`
}

// DefaultsConfig holds default values
type DefaultsConfig struct {
	Lang     string `yaml:"lang"`
	Format   string `yaml:"format"`
	Provider string `yaml:"provider"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int `yaml:"port"`
}

// ResolverConfig controls video reference parsing
type ResolverConfig struct {
	// Lenient forwards extracted IDs without checking their shape.
	Lenient bool `yaml:"lenient"`
}

// HTTPConfig holds API client settings
type HTTPConfig struct {
	Timeout string `yaml:"timeout"`
}

// PathsConfig holds custom path overrides
type PathsConfig struct {
	YtDlp     string `yaml:"yt_dlp"`
	Downloads string `yaml:"downloads"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Lang:     "en",
			Format:   "text",
			Provider: "youtube",
		},
		Server: ServerConfig{
			Port: DefaultPort,
		},
		HTTP: HTTPConfig{
			Timeout: "60s",
		},
		Paths: PathsConfig{
			YtDlp:     "",
			Downloads: "",
		},
	}
}

// AppDir returns the application directory (~/.youtran)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".youtran"
	}
	return filepath.Join(home, ".youtran")
}

// BinDir returns the bin directory
func BinDir() string {
	return filepath.Join(AppDir(), "bin")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// EnsureDirs creates all required directories
func EnsureDirs() error {
	dirs := []string{AppDir(), BinDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads config from file, returns default if not exists
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads config from default path
func LoadDefault() (*Config, error) {
	return Load(ConfigPath())
}

// Save writes config to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveDefault saves config to default path
func (c *Config) SaveDefault() error {
	return c.Save(ConfigPath())
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	if err := ValidateFormat(c.Defaults.Format); err != nil {
		return err
	}
	if !validProviders.Contains(c.Defaults.Provider) {
		return fmt.Errorf("unknown provider: %s (use one of %s)",
			c.Defaults.Provider, strings.Join(validProviders.Elements(), ", "))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if _, err := c.GetHTTPTimeout(); err != nil {
		return err
	}
	return nil
}

// ValidateFormat checks an output format name
func ValidateFormat(format string) error {
	if !validFormats.Contains(format) {
		return fmt.Errorf("unknown format: %s (use one of %s)",
			format, strings.Join(validFormats.Elements(), ", "))
	}
	return nil
}

// ListenPort returns the port to serve on. PORT wins over the config file.
func (c *Config) ListenPort() (int, error) {
	if v := strings.TrimSpace(os.Getenv(PortEnv)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 0 || port > 65535 {
			return 0, fmt.Errorf("invalid %s: %q", PortEnv, v)
		}
		return port, nil
	}
	if c.Server.Port == 0 {
		return DefaultPort, nil
	}
	return c.Server.Port, nil
}

// GetHTTPTimeout returns the API client timeout as a duration
func (c *Config) GetHTTPTimeout() (time.Duration, error) {
	if c.HTTP.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid http timeout: %s (use format like 30s, 2m)", c.HTTP.Timeout)
	}
	return d, nil
}

// DownloadDir returns the directory downloads are written to
func (c *Config) DownloadDir() string {
	if c.Paths.Downloads != "" {
		return c.Paths.Downloads
	}
	return "."
}
