package platform

import "github.com/nyambati/deployctl/internal/schema"

// Config is the document consumed by the deployment tool. Authoring-only
// fields (organization, regions, scaling, database, secret references and the
// raw environment table) have no place here.
type Config struct {
	App         string             `toml:"app"`
	KillSignal  *schema.KillSignal `toml:"kill_signal,omitempty"`
	KillTimeout *uint64            `toml:"kill_timeout,omitempty"`
	Env         map[string]string  `toml:"env,omitempty"`
	Build       *schema.Build      `toml:"build,omitempty"`
	Deploy      *schema.Deploy     `toml:"deploy,omitempty"`
	Metrics     *schema.Metrics    `toml:"metrics,omitempty"`
	Statics     []schema.Static    `toml:"statics,omitempty"`
	Services    []schema.Service   `toml:"services,omitempty"`
	Mounts      []schema.Mount     `toml:"mounts,omitempty"`
}
