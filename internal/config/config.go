package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	FileName  = ".deployctl"
	EnvPrefix = "DEPLOYCTL"
)

func Default() *Config {
	return &Config{
		Environment: "dev",
		InputFiles:  []string{"fly.json"},
		OutputFile:  "fly.toml",
		LogLevel:    logrus.InfoLevel.String(),
		Resolver: Resolver{
			Backend:     BackendGcloud,
			GcloudPath:  "gcloud",
			Timeout:     30 * time.Second,
			Concurrency: 8,
		},
	}
}

// NewConfig reads .deployctl.yaml from dir when present, then applies
// DEPLOYCTL_* environment overrides and any flags already bound to v.
func NewConfig(v *viper.Viper, dir string) (*Config, error) {
	setDefaults(v, Default())

	v.AddConfigPath(dir)
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("environment", d.Environment)
	v.SetDefault("input_files", d.InputFiles)
	v.SetDefault("output_file", d.OutputFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("resolver.backend", string(d.Resolver.Backend))
	v.SetDefault("resolver.gcloud_path", d.Resolver.GcloudPath)
	v.SetDefault("resolver.timeout", d.Resolver.Timeout)
	v.SetDefault("resolver.concurrency", d.Resolver.Concurrency)
}

func (c *Config) Validate() error {
	switch c.Resolver.Backend {
	case BackendGcloud, BackendAPI:
	default:
		return fmt.Errorf("unknown resolver backend %q", c.Resolver.Backend)
	}
	if c.Resolver.Concurrency < 1 {
		return fmt.Errorf("resolver concurrency must be at least 1")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Save writes the settings as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)

	defer encoder.Close()

	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
