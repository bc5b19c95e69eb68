package config

import "time"

type Backend string

const (
	BackendGcloud Backend = "gcloud"
	BackendAPI    Backend = "api"
)

type Resolver struct {
	Backend     Backend       `mapstructure:"backend" yaml:"backend"`
	GcloudPath  string        `mapstructure:"gcloud_path" yaml:"gcloud_path"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Concurrency int           `mapstructure:"concurrency" yaml:"concurrency"`
}

// Config holds deployctl's own settings. The deploy config documents it
// processes are described by package schema.
type Config struct {
	Environment string   `mapstructure:"environment" yaml:"environment"`
	InputFiles  []string `mapstructure:"input_files" yaml:"input_files"`
	OutputFile  string   `mapstructure:"output_file" yaml:"output_file"`
	LogLevel    string   `mapstructure:"log_level" yaml:"log_level"`
	Resolver    Resolver `mapstructure:"resolver" yaml:"resolver"`
}
