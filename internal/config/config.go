package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "ARTICLES_BENCH_CONFIG"
	databaseDriverEnv = "DATABASE_DRIVER"
	databaseDSNEnv    = "DATABASE_DSN"
	reportPathEnv     = "REPORT_PATH"
	logLevelEnv       = "LOG_LEVEL"
	ingestAddrEnv     = "INGEST_ADDR"
	datasetSeedEnv    = "DATASET_SEED"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	Dataset       DatasetConfig       `yaml:"dataset"`
	Normalization NormalizationConfig `yaml:"normalization"`
	Grid          GridConfig          `yaml:"grid"`
	Report        ReportConfig        `yaml:"report"`
	Ingest        IngestConfig        `yaml:"ingest"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// DatabaseConfig describes the corpus store connection.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// DatasetConfig controls filtering, balancing and the train/test split.
type DatasetConfig struct {
	MinCategoryCount int     `yaml:"minCategoryCount"`
	MaxCategoryCount int     `yaml:"maxCategoryCount"`
	Balance          *bool   `yaml:"balance"`
	TestFraction     float64 `yaml:"testFraction"`
	Seed             uint64  `yaml:"seed"`
}

// Balanced reports whether down-sampling is enabled; it defaults to true.
func (d DatasetConfig) Balanced() bool {
	return d.Balance == nil || *d.Balance
}

// NormalizationConfig points at optional stopword and dictionary word lists.
type NormalizationConfig struct {
	StopwordsPath  string `yaml:"stopwordsPath"`
	DictionaryPath string `yaml:"dictionaryPath"`
}

// GridConfig selects the hyperparameter grid; Path wins over Inline, both empty means the built-in grid.
type GridConfig struct {
	Path            string    `yaml:"path"`
	Inline          yaml.Node `yaml:"inline"`
	ContinueOnError bool      `yaml:"continueOnError"`
}

// ReportConfig defines where results are written.
type ReportConfig struct {
	Path string `yaml:"path"`
}

// IngestConfig configures the article ingestion endpoint.
type IngestConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig defines the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if fileCfg, err := Parse(raw); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
		} else {
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Parse decodes a YAML document without applying defaults.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDriverEnv); v != "" {
		c.Database.Driver = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(reportPathEnv); v != "" {
		c.Report.Path = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(ingestAddrEnv); v != "" {
		c.Ingest.Addr = v
	}

	if v := os.Getenv(datasetSeedEnv); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			log.Printf("config: invalid %s=%q: %v (keeping %d)", datasetSeedEnv, v, err, c.Dataset.Seed)
		} else {
			c.Dataset.Seed = seed
		}
	}
}

func mergeConfig(base, override Config) Config {
	if override.Database.Driver != "" {
		base.Database.Driver = override.Database.Driver
	}
	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if override.Dataset.MinCategoryCount > 0 {
		base.Dataset.MinCategoryCount = override.Dataset.MinCategoryCount
	}
	if override.Dataset.MaxCategoryCount > 0 {
		base.Dataset.MaxCategoryCount = override.Dataset.MaxCategoryCount
	}
	if override.Dataset.Balance != nil {
		base.Dataset.Balance = override.Dataset.Balance
	}
	if override.Dataset.TestFraction > 0 {
		base.Dataset.TestFraction = override.Dataset.TestFraction
	}
	if override.Dataset.Seed != 0 {
		base.Dataset.Seed = override.Dataset.Seed
	}

	if override.Normalization.StopwordsPath != "" {
		base.Normalization.StopwordsPath = override.Normalization.StopwordsPath
	}
	if override.Normalization.DictionaryPath != "" {
		base.Normalization.DictionaryPath = override.Normalization.DictionaryPath
	}

	if override.Grid.Path != "" {
		base.Grid.Path = override.Grid.Path
	}
	if !override.Grid.Inline.IsZero() {
		base.Grid.Inline = override.Grid.Inline
	}
	if override.Grid.ContinueOnError {
		base.Grid.ContinueOnError = true
	}

	if override.Report.Path != "" {
		base.Report.Path = override.Report.Path
	}

	if override.Ingest.Addr != "" {
		base.Ingest.Addr = override.Ingest.Addr
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Database: DatabaseConfig{Driver: "sqlite", DSN: "data.db"},
		Dataset: DatasetConfig{
			MinCategoryCount: 100,
			MaxCategoryCount: 1000,
			TestFraction:     0.2,
			Seed:             42,
		},
		Report:  ReportConfig{Path: "model_results.txt"},
		Ingest:  IngestConfig{Addr: ":8000"},
		Logging: LoggingConfig{Level: "info"},
	}
}
