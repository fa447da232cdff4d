package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDirName = "vterm_data"
)

type Console struct {
	Prompt               string `yaml:"prompt"`
	ActiveCursorSymbol   string `yaml:"activeCursorSymbol"`
	InactiveCursorSymbol string `yaml:"inactiveCursorSymbol"`
}

type Storage struct {
	DataDir  string        `yaml:"dataDir"`
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

type Config struct {
	Storage  Storage `yaml:"storage"`
	Console  Console `yaml:"console"`
	LogLevel string  `yaml:"logLevel"`
}

var (
	ErrConfigFileMissing        = errors.New("config file is missing")
	ErrConfigFileUnreadable     = errors.New("config file is unreadable")
	ErrConfigFileUnmarshallable = errors.New("config file is unmarshallable")
	ErrDataDirMissing           = errors.New("storage.dataDir is missing in config")
)

func Default() *Config {
	return &Config{
		Storage: Storage{
			DataDir:  DefaultDataDirName,
			CacheTTL: time.Minute,
		},
		Console: Console{
			Prompt:               "> ",
			ActiveCursorSymbol:   "█",
			InactiveCursorSymbol: " ",
		},
		LogLevel: "info",
	}
}

func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigFileMissing, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigFileUnreadable, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigFileUnmarshallable, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Storage.DataDir == "" {
		return ErrDataDirMissing
	}
	if c.Storage.CacheTTL == 0 {
		c.Storage.CacheTTL = time.Minute
	}
	if c.Console.Prompt == "" {
		c.Console.Prompt = "> "
	}
	return nil
}
