package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"

	fileName  = "vocabuilder"
	envPrefix = "VOCAB"
)

type Config struct {
	DataDir   string          `mapstructure:"-" validate:"required"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Partition PartitionConfig `mapstructure:"partition"`
	Seed      SeedConfig      `mapstructure:"seed"`
	Log       LogConfig       `mapstructure:"log"`
	Plugins   PluginConfig    `mapstructure:"plugins"`
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver" validate:"required,oneof=badger sqlite memory"`
	Path       string `mapstructure:"path"`
	QuotaBytes int64  `mapstructure:"quota_bytes" validate:"gte=0"`
}

type PartitionConfig struct {
	PerWeek     int `mapstructure:"per_week" validate:"gt=0"`
	PerDay      int `mapstructure:"per_day" validate:"gt=0"`
	DaysPerWeek int `mapstructure:"days_per_week" validate:"gt=0"`
}

type SeedConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json pretty"`
}

type PluginConfig struct {
	Manifest string   `mapstructure:"manifest"`
	Enrich   []string `mapstructure:"enrich"`
}

// Load reads defaults, then <dataDir>/vocabuilder.yaml when present, then VOCAB_* environment variables.
func Load(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.DataDir = dataDir
	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", DriverBadger)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.quota_bytes", 5*1024*1024)
	v.SetDefault("partition.per_week", 100)
	v.SetDefault("partition.per_day", 20)
	v.SetDefault("partition.days_per_week", 5)
	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.path", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "")
	v.SetDefault("plugins.manifest", "")
	v.SetDefault("plugins.enrich", []string{})
}

func (c *Config) resolvePaths() {
	if c.Storage.Path == "" {
		switch c.Storage.Driver {
		case DriverBadger:
			c.Storage.Path = filepath.Join(c.DataDir, "store")
		case DriverSQLite:
			c.Storage.Path = filepath.Join(c.DataDir, "vocabuilder.db")
		}
	}
	if c.Plugins.Manifest == "" {
		c.Plugins.Manifest = filepath.Join(c.DataDir, "plugins", "plugins.json")
	}
	if c.Seed.Path != "" && !filepath.IsAbs(c.Seed.Path) {
		c.Seed.Path = filepath.Join(c.DataDir, c.Seed.Path)
	}
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	p := c.Partition
	if p.PerDay*p.DaysPerWeek > p.PerWeek {
		return fmt.Errorf("invalid config: per_day*days_per_week (%d) exceeds per_week (%d)", p.PerDay*p.DaysPerWeek, p.PerWeek)
	}
	return nil
}

// ActiveSetPath is where the current week/day selection is persisted.
func (c Config) ActiveSetPath() string {
	return filepath.Join(c.DataDir, "active-set.json")
}

func (c Config) SheetsDir() string {
	return filepath.Join(c.DataDir, "sheets")
}

func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "vocabuilder.log")
}
