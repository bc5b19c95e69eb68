package schema

import "fmt"

// v1Document is the first revision: camelCase keys, boolean postgres flag,
// a single health check list and no environment table.
type v1Document struct {
	Version      any                   `json:"version,omitempty"`
	Name         string                `json:"name"`
	Organization string                `json:"organization"`
	GcpKms       *v1KMSReference       `json:"gcpKms,omitempty"`
	GcpSsm       *SecretStoreReference `json:"gcpSsm,omitempty"`
	Database     *v1Database           `json:"database,omitempty"`
	Metrics      *v1Metrics            `json:"metrics,omitempty"`
	Services     []v1Service           `json:"services"`
}

type v1KMSReference struct {
	Project  string  `json:"project"`
	KeyRing  string  `json:"keyRing"`
	Key      string  `json:"key"`
	Location string  `json:"location"`
	Version  *uint16 `json:"version,omitempty"`
}

type v1Database struct {
	Postgres bool `json:"postgres"`
}

type v1Metrics struct {
	Port     uint16 `json:"port"`
	Endpoint string `json:"endpoint"`
}

type v1Service struct {
	InternalPort uint64          `json:"internalPort"`
	Processes    []string        `json:"processes"`
	Concurrency  v1Concurrency   `json:"concurrency"`
	Ports        []v1ServicePort `json:"ports"`
	HealthChecks []v1HealthCheck `json:"healthChecks"`
}

type v1Concurrency struct {
	HardLimit uint64 `json:"hardLimit"`
	SoftLimit uint64 `json:"softLimit"`
	Type      string `json:"type"`
}

type v1ServicePort struct {
	Handlers []PortHandler `json:"handlers"`
	Port     uint64        `json:"port"`
}

type v1HealthCheck struct {
	Interval    uint64        `json:"interval"`
	GracePeriod string        `json:"gracePeriod"`
	Method      string        `json:"method"`
	Path        string        `json:"path"`
	Protocol    CheckProtocol `json:"protocol"`
	Timeout     uint64        `json:"timeout"`
}

func (d *v1Document) upgrade() (*DeployConfig, []string) {
	cfg := newDeployConfig()
	cfg.Name = d.Name
	cfg.Organization = d.Organization
	cfg.DefaultRegion = DefaultRegion
	notes := []string{fmt.Sprintf("default_region set to %s", DefaultRegion)}

	if d.GcpKms != nil {
		cfg.GcpKms = &KMSReference{
			Project:  d.GcpKms.Project,
			Location: d.GcpKms.Location,
			KeyRing:  d.GcpKms.KeyRing,
			Key:      d.GcpKms.Key,
		}
		if d.GcpKms.Version != nil {
			notes = append(notes, "gcpKms.version is ignored, the primary key version decrypts")
		}
	}
	if d.GcpSsm != nil {
		ssm := *d.GcpSsm
		cfg.GcpSsm = &ssm
	}
	if d.Database != nil && d.Database.Postgres {
		cfg.Database = &Database{Postgres: defaultPostgres()}
	}
	if d.Metrics != nil {
		cfg.Metrics = &Metrics{Port: d.Metrics.Port, Path: d.Metrics.Endpoint}
	}

	for _, s := range d.Services {
		hard, soft := s.Concurrency.HardLimit, s.Concurrency.SoftLimit
		svc := Service{
			InternalPort: s.InternalPort,
			Processes:    s.Processes,
			Concurrency:  Concurrency{HardLimit: &hard, SoftLimit: &soft, Type: s.Concurrency.Type},
		}
		for _, p := range s.Ports {
			svc.Ports = append(svc.Ports, ServicePort{Port: p.Port, Handlers: p.Handlers})
		}
		for _, c := range s.HealthChecks {
			interval, timeout, protocol := c.Interval, c.Timeout, c.Protocol
			svc.HTTPChecks = append(svc.HTTPChecks, HTTPCheck{
				Interval:    &interval,
				GracePeriod: c.GracePeriod,
				Method:      c.Method,
				Path:        c.Path,
				Protocol:    &protocol,
				Timeout:     &timeout,
			})
		}
		cfg.Services = append(cfg.Services, svc)
	}

	return &cfg, notes
}

// v2Document is the second revision: snake_case keys and the environment
// table, but no regions or scaling and boolean database flags.
type v2Document struct {
	Version      any                   `json:"version,omitempty"`
	Schema       string                `json:"$schema,omitempty"`
	Name         string                `json:"name"`
	Organization string                `json:"organization"`
	GcpKms       *KMSReference         `json:"gcp_kms,omitempty"`
	GcpSsm       *SecretStoreReference `json:"gcp_ssm,omitempty"`
	Database     *v2Database           `json:"database,omitempty"`
	KillSignal   *KillSignal           `json:"kill_signal,omitempty"`
	KillTimeout  *uint64               `json:"kill_timeout,omitempty"`
	Build        *Build                `json:"build,omitempty"`
	Deploy       *Deploy               `json:"deploy,omitempty"`
	Statics      []Static              `json:"statics,omitempty"`
	Services     []Service             `json:"services,omitempty"`
	Mounts       []Mount               `json:"mounts,omitempty"`
	Environment  Environment           `json:"environment,omitempty"`
}

type v2Database struct {
	Postgres *bool `json:"postgres,omitempty"`
	Redis    *bool `json:"redis,omitempty"`
}

func (d *v2Document) upgrade() (*DeployConfig, []string) {
	cfg := newDeployConfig()
	cfg.Schema = d.Schema
	cfg.Name = d.Name
	cfg.Organization = d.Organization
	cfg.DefaultRegion = DefaultRegion
	cfg.GcpKms = d.GcpKms
	cfg.GcpSsm = d.GcpSsm
	cfg.KillSignal = d.KillSignal
	cfg.KillTimeout = d.KillTimeout
	cfg.Build = d.Build
	cfg.Deploy = d.Deploy
	cfg.Statics = d.Statics
	cfg.Services = d.Services
	cfg.Mounts = d.Mounts
	cfg.Environment = d.Environment
	notes := []string{fmt.Sprintf("default_region set to %s", DefaultRegion)}

	if d.Database != nil {
		if d.Database.Postgres != nil && *d.Database.Postgres {
			cfg.Database = &Database{Postgres: defaultPostgres()}
		}
		if d.Database.Redis != nil && *d.Database.Redis {
			notes = append(notes, "database.redis is no longer provisioned and was dropped")
		}
	}

	return &cfg, notes
}
