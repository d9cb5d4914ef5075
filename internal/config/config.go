package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nomadcxx/jellydiff/internal/paths"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

type Config struct {
	Compare CompareConfig `mapstructure:"compare" toml:"compare"`
	Logging LoggingConfig `mapstructure:"logging" toml:"logging"`
}

// CompareConfig holds the defaults for the compare command. Flags given on
// the command line take precedence.
type CompareConfig struct {
	Algorithm string `mapstructure:"algorithm" toml:"algorithm" comment:"direct, defaultratio, partialratio, tokenset, partialtokenset, tokensort, partialtokensort, tokenabbreviation, partialtokenabbreviation, weighted, levenshtein, jarowinkler, subsequence"`
	Cutoff    int    `mapstructure:"cutoff" toml:"cutoff" comment:"minimum similarity score (1-100) for fuzzy algorithms"`
	Pairing   string `mapstructure:"pairing" toml:"pairing" comment:"title: pair only identical titles found in both directions; mutual: pair any titles within the cutoff both ways"`
	OutputDir string `mapstructure:"output_dir" toml:"output_dir" comment:"where matches.txt, unmatched.txt and collisions.txt are written"`
	// ErrorLog is relative to OutputDir unless absolute.
	ErrorLog string `mapstructure:"error_log" toml:"error_log" comment:"lines the title parser rejected are appended here"`
	Workers  int    `mapstructure:"workers" toml:"workers" comment:"parallel similarity searches (0 = number of CPUs)"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level" toml:"level"`
	File       string `mapstructure:"file" toml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Compare: CompareConfig{
			Algorithm: "direct",
			Cutoff:    75,
			Pairing:   "title",
			OutputDir: ".",
			ErrorLog:  "Errors.txt",
			Workers:   0,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file is not an error: defaults are returned.
// Environment variables prefixed with JELLYDIFF_ (e.g. JELLYDIFF_COMPARE_CUTOFF)
// override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		p, err := paths.ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("unable to get config path: %w", err)
		}
		path = p
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix("JELLYDIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("compare.algorithm", d.Compare.Algorithm)
	v.SetDefault("compare.cutoff", d.Compare.Cutoff)
	v.SetDefault("compare.pairing", d.Compare.Pairing)
	v.SetDefault("compare.output_dir", d.Compare.OutputDir)
	v.SetDefault("compare.error_log", d.Compare.ErrorLog)
	v.SetDefault("compare.workers", d.Compare.Workers)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
}

// Save writes the configuration as TOML to path, or the default location
// when path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}

	content, err := c.ToTOML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func (c *Config) ToTOML() (string, error) {
	body, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("unable to encode config: %w", err)
	}
	return "# jellydiff configuration\n# Generated by: jellydiff config init\n\n" + string(body), nil
}

func ConfigPath() (string, error) {
	return paths.ConfigPath()
}

// Exists reports whether a config file is present at path (or the default location).
func Exists(path string) bool {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return false
		}
		path = p
	}
	_, err := os.Stat(path)
	return err == nil
}
