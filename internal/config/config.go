package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// BaseURL is the root of the remote drive API, e.g. "https://drive.example.com/api".
	BaseURL    string `yaml:"base_url"`
	SessionDB  string `yaml:"session_db"`
	LogLevel   string `yaml:"log_level"`
	LogFile    string `yaml:"log_file"`
	PreviewMax int    `yaml:"preview_max"`
}

// Load builds the configuration from, in increasing precedence: built-in
// defaults, the optional YAML file at path (or the default location when path
// is empty), and environment variables. A .env file in the working directory
// is folded into the environment first.
func Load(path string) (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	cfg := &Config{
		SessionDB:  filepath.Join(dataDir(), "session.db"),
		LogLevel:   "info",
		LogFile:    filepath.Join(stateDir(), "pixshelf.log"),
		PreviewMax: 24,
	}

	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.PreviewMax, validation.Min(4), validation.Max(120)),
	)
}

func (c *Config) mergeFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(configDir(), "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.BaseURL = getEnv("PIXSHELF_BASE_URL", c.BaseURL)
	c.SessionDB = getEnv("PIXSHELF_SESSION_DB", c.SessionDB)
	c.LogLevel = getEnv("PIXSHELF_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("PIXSHELF_LOG_FILE", c.LogFile)
	if val, exists := os.LookupEnv("PIXSHELF_PREVIEW_MAX"); exists {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid PIXSHELF_PREVIEW_MAX %q: %w", val, err)
		}
		c.PreviewMax = n
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "pixshelf")
	}
	return "."
}

func dataDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".local", "share", "pixshelf")
	}
	return "."
}

func stateDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".local", "state", "pixshelf")
	}
	return "."
}
