package platform

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nyambati/deployctl/internal/schema"
)

// Project maps a validated deploy config and its resolved environment onto the
// platform document. The deploy config is not modified; slices and maps are
// copied so the result can be changed independently.
func Project(cfg *schema.DeployConfig, env map[string]string) *Config {
	out := &Config{
		App:         cfg.Name,
		KillSignal:  cfg.KillSignal,
		KillTimeout: cfg.KillTimeout,
		Build:       cfg.Build,
		Deploy:      cfg.Deploy,
		Metrics:     cfg.Metrics,
	}

	if len(env) > 0 {
		out.Env = make(map[string]string, len(env))
		for k, v := range env {
			out.Env[k] = v
		}
	}

	if len(cfg.Statics) > 0 {
		out.Statics = append([]schema.Static(nil), cfg.Statics...)
	}
	if len(cfg.Services) > 0 {
		out.Services = append([]schema.Service(nil), cfg.Services...)
	}
	if len(cfg.Mounts) > 0 {
		out.Mounts = append([]schema.Mount(nil), cfg.Mounts...)
	}

	return out
}

// Encode renders the platform document as TOML. Map keys are written in sorted
// order so identical inputs always produce identical bytes.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = ""
	if err := encoder.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode platform config: %w", err)
	}
	return buf.Bytes(), nil
}
