package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Audio    AudioConfig    `toml:"audio"`
	Calm     CalmConfig     `toml:"calm"`
	Log      LogConfig      `toml:"log"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr joins host and port for [http.Server].
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AudioConfig controls the output device and synth defaults.
type AudioConfig struct {
	Enabled     bool    `toml:"enabled"`
	SampleRate  int     `toml:"sample_rate"`
	SynthVolume float64 `toml:"synth_volume"`
}

// CalmConfig controls the breathing timer.
type CalmConfig struct {
	FrameRate float64 `toml:"frame_rate"`
}

// LogConfig controls log level and the file used while the TUI is running.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate reports settings the engines cannot run with.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is empty", ErrInvalidConfig)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: audio.sample_rate must be positive", ErrInvalidConfig)
	}
	if c.Calm.FrameRate <= 0 {
		return fmt.Errorf("%w: calm.frame_rate must be positive", ErrInvalidConfig)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port out of range", ErrInvalidConfig)
	}
	return nil
}

// ApplyEnv overrides config values from COMEBACK_* environment variables.
//
// Unparseable values are reported and leave the config untouched.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := strings.TrimSpace(getenv("COMEBACK_DB_PATH")); v != "" {
		c.Database.Path = v
	}
	if v := strings.TrimSpace(getenv("COMEBACK_HOST")); v != "" {
		c.Server.Host = v
	}
	if v := strings.TrimSpace(getenv("COMEBACK_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: COMEBACK_PORT=%q", ErrInvalidConfig, v)
		}
		c.Server.Port = port
	}
	if v := strings.TrimSpace(getenv("COMEBACK_AUDIO")); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: COMEBACK_AUDIO=%q", ErrInvalidConfig, v)
		}
		c.Audio.Enabled = enabled
	}
	if v := strings.TrimSpace(getenv("COMEBACK_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	return c.Validate()
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
