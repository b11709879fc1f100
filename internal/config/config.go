package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	PathsSingular = "singular"
	PathsPlural   = "plural"
)

type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	Endpoint `yaml:"endpoint"`
	Seed     `yaml:"seed"`
	Stub     `yaml:"stub"`
}

// Endpoint is the VAM the client talks to.
type Endpoint struct {
	BaseURL string        `yaml:"base_url" env:"VAM_BASE_URL" env-default:"http://localhost:8080/v1/"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
	Paths   string        `yaml:"paths" env-default:"singular"`
}

// Plural reports whether resource paths are plural.
func (e Endpoint) Plural() bool {
	return e.Paths == PathsPlural
}

type Seed struct {
	// PlanPath is empty for the demo plan.
	PlanPath string `yaml:"plan_path" env:"SEED_PLAN"`
	Workers  int    `yaml:"workers" env-default:"1"`
}

// Stub is the local development VAM.
type Stub struct {
	Address     string `yaml:"address" env-default:"localhost:8080"`
	StoragePath string `yaml:"storage_path" env-default:"./storage/vam.db"`
}

func (cfg *Config) validate() error {
	switch cfg.Paths {
	case PathsSingular, PathsPlural:
	default:
		return fmt.Errorf("endpoint.paths must be %q or %q, got %q", PathsSingular, PathsPlural, cfg.Paths)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("endpoint.timeout must be positive")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("seed.workers must be positive")
	}
	return nil
}

func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is empty")
	}

	return MustLoadPath(configPath)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load reads config file, environment overrides it.
func Load(configPath string) (*Config, error) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// fetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
