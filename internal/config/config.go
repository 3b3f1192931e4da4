// Package config loads dashboard configuration from, in order of
// precedence, command-line flags, DASHBOARD_* environment variables,
// .env files, an optional YAML config file and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mis-dashboard/internal/domain"
)

// Source kinds.
const (
	SourceOData  = "odata"
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// EnvPrefix prefixes every environment variable the dashboard reads.
const EnvPrefix = "DASHBOARD"

// Config holds the application configuration.
type Config struct {
	Source SourceConfig `mapstructure:"source"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Output string       `mapstructure:"output"`

	// ConfigFile is the file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

// SourceConfig selects and configures the dataset backend.
type SourceConfig struct {
	Kind       string            `mapstructure:"kind"`
	URL        string            `mapstructure:"url"`
	Timeout    time.Duration     `mapstructure:"timeout"`
	Dir        string            `mapstructure:"dir"`
	DB         string            `mapstructure:"db"`
	DateField  string            `mapstructure:"date_field"`
	EntitySets map[string]string `mapstructure:"entity_sets"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// flagKeys maps config keys to the flag names that override them.
var flagKeys = map[string]string{
	"source.kind":       "source",
	"source.url":        "url",
	"source.dir":        "csv-dir",
	"source.db":         "db",
	"source.date_field": "date-field",
	"server.addr":       "addr",
	"log.level":         "log-level",
	"log.format":        "log-format",
	"output":            "output",
}

// Load reads the configuration. configFile may be empty, in which case
// ./dashboard.yaml is used when present. Flags that were not set on the
// command line do not override other sources.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("dashboard")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted. Backend locations are
// not checked here; a read against a missing backend fails at fetch time.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceOData, SourceCSV, SourceSQLite:
	default:
		return fmt.Errorf("invalid source kind %q: must be one of odata, csv, sqlite", c.Source.Kind)
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("invalid source timeout %s", c.Source.Timeout)
	}
	return nil
}

// EntitySetsByDataset returns the configured entity set names keyed by dataset.
// Unknown keys are ignored.
func (s SourceConfig) EntitySetsByDataset() map[domain.Dataset]string {
	out := make(map[domain.Dataset]string, len(s.EntitySets))
	for k, name := range s.EntitySets {
		ds, err := domain.ParseDataset(k)
		if err != nil || !ds.IsSource() {
			continue
		}
		out[ds] = name
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.kind", SourceOData)
	v.SetDefault("source.url", "")
	v.SetDefault("source.timeout", 30*time.Second)
	v.SetDefault("source.dir", "./data")
	v.SetDefault("source.db", "dashboard.db")
	v.SetDefault("source.date_field", domain.FieldPostDate)
	v.SetDefault("source.entity_sets.dtm", "es_dtmset")
	v.SetDefault("source.entity_sets.combine", "es_combineset")
	v.SetDefault("source.entity_sets.dispatch", "es_dm_dispset")
	v.SetDefault("source.entity_sets.stock", "es_stockset")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8080"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("output", "")
}

// loadEnvFiles loads .env.local then .env; values already in the
// environment are never overwritten.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		if _, err := os.Stat(envFile); err == nil {
			_ = godotenv.Load(envFile)
		}
	}
}
