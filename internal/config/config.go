package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AI     AIConfig    `yaml:"ai" validate:"required"`
	Paths  PathsConfig `yaml:"paths"`
	Limits Limits      `yaml:"limits" validate:"required"`
}

type AIConfig struct {
	APIKey  string `yaml:"api_key" validate:"required,min=20"`
	Model   string `yaml:"model" validate:"required"`
	BaseURL string `yaml:"base_url" validate:"required,url"`
	Timeout int    `yaml:"timeout" validate:"required,min=10,max=3600"`
}

type PathsConfig struct {
	// OutputDir receives generated scene files, one per scene.
	OutputDir string `yaml:"output_dir"`
	// BiblePath points at the story bible YAML when sessions are seeded
	// from a file rather than built programmatically.
	BiblePath string `yaml:"bible_path"`
}

// Load reads the config file, overlaying API credentials from the
// environment. A missing file yields the defaults; a malformed file is an
// error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configPath := getConfigPath()

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := cfg.resolve(); err != nil {
			return nil, err
		}
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.resolve(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func getConfigPath() string {
	if path := os.Getenv("STORYLOOM_CONFIG"); path != "" {
		return path
	}
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "storyloom", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "storyloom", "config.yaml")
}

func defaultConfig() *Config {
	return &Config{
		AI: AIConfig{
			Model:   "claude-3-5-sonnet-20241022",
			BaseURL: "https://api.anthropic.com/v1",
			Timeout: 300,
		},
		Limits: DefaultLimits(),
	}
}

// Default returns the built-in configuration with paths resolved but no
// credential requirement. Dry runs use it when no config file exists.
func Default() *Config {
	cfg := defaultConfig()
	cfg.fillDefaults()
	return cfg
}

// resolve fills defaults, overlays environment credentials, and validates.
func (c *Config) resolve() error {
	c.fillDefaults()
	return c.validate()
}

func (c *Config) fillDefaults() {
	if c.AI.Model == "" {
		c.AI.Model = "claude-3-5-sonnet-20241022"
	}
	if c.AI.BaseURL == "" {
		c.AI.BaseURL = "https://api.anthropic.com/v1"
	}
	if c.AI.Timeout == 0 {
		c.AI.Timeout = 300
	}

	if c.AI.APIKey == "" || strings.HasPrefix(c.AI.APIKey, "${") {
		for _, env := range []string{"STORYLOOM_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY"} {
			if key := os.Getenv(env); key != "" {
				c.AI.APIKey = key
				break
			}
		}
	}

	if c.Paths.OutputDir == "" {
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			c.Paths.OutputDir = filepath.Join(xdgData, "storyloom", "output")
		} else {
			home, _ := os.UserHomeDir()
			c.Paths.OutputDir = filepath.Join(home, ".local", "share", "storyloom", "output")
		}
	} else {
		c.Paths.OutputDir = expandTilde(c.Paths.OutputDir)
	}
	if c.Paths.BiblePath != "" {
		c.Paths.BiblePath = expandTilde(c.Paths.BiblePath)
	}

	if c.Limits.MaxConcurrentSessions == 0 {
		c.Limits = DefaultLimits()
	}
}

// expandTilde expands a leading ~/ to the user's home directory.
func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func (c *Config) validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Save writes the config back to a path, masking the API key with an
// environment placeholder.
func Save(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	cfgToSave := *cfg
	cfgToSave.AI.APIKey = "${STORYLOOM_API_KEY}"

	data, err := yaml.Marshal(&cfgToSave)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}
