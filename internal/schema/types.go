package schema

// DeployConfig is the authoring document. It is the current (v3) internal
// representation every historical schema revision is upgraded into.
type DeployConfig struct {
	Schema        string                `json:"$schema,omitempty"`
	Version       string                `json:"version,omitempty"`
	Name          string                `json:"name"`
	Organization  string                `json:"organization"`
	DefaultRegion string                `json:"default_region"`
	Regions       []string              `json:"regions,omitempty"`
	BackupRegions []string              `json:"backup_regions,omitempty"`
	Scaling       Scaling               `json:"scaling"`
	Database      *Database             `json:"database,omitempty"`
	GcpKms        *KMSReference         `json:"gcp_kms,omitempty"`
	GcpSsm        *SecretStoreReference `json:"gcp_ssm,omitempty"`
	KillSignal    *KillSignal           `json:"kill_signal,omitempty"`
	KillTimeout   *uint64               `json:"kill_timeout,omitempty"`
	Build         *Build                `json:"build,omitempty"`
	Deploy        *Deploy               `json:"deploy,omitempty"`
	Statics       []Static              `json:"statics,omitempty"`
	Services      []Service             `json:"services,omitempty"`
	Mounts        []Mount               `json:"mounts,omitempty"`
	Metrics       *Metrics              `json:"metrics,omitempty"`
	Environment   Environment           `json:"environment,omitempty"`
}

type Scaling struct {
	Memory        uint64        `json:"memory"`
	VMSize        VMSize        `json:"vm_size"`
	MinCount      uint64        `json:"min_count"`
	MaxCount      uint64        `json:"max_count"`
	BalanceMethod BalanceMethod `json:"balance_method"`
}

type Database struct {
	Postgres *Postgres `json:"postgres,omitempty"`
}

type Postgres struct {
	ClusterSize uint32 `json:"cluster_size"`
	VMSize      VMSize `json:"vm_size"`
	VolumeSize  uint32 `json:"volume_size"`
}

// KMSReference addresses a Cloud KMS key used to decrypt FromKMS values.
type KMSReference struct {
	Project  string `json:"project"`
	Location string `json:"location"`
	KeyRing  string `json:"key_ring"`
	Key      string `json:"key"`
}

// SecretStoreReference addresses the Secret Manager project used by
// FromSecretStore values.
type SecretStoreReference struct {
	Project string `json:"project"`
}

type Build struct {
	Builder     string            `json:"builder,omitempty" toml:"builder,omitempty"`
	Image       string            `json:"image,omitempty" toml:"image,omitempty"`
	Dockerfile  string            `json:"dockerfile,omitempty" toml:"dockerfile,omitempty"`
	BuildTarget string            `json:"build_target,omitempty" toml:"build_target,omitempty"`
	Buildpacks  []string          `json:"buildpacks,omitempty" toml:"buildpacks,omitempty"`
	Args        map[string]string `json:"args,omitempty" toml:"args,omitempty"`
}

type Deploy struct {
	ReleaseCommand string          `json:"release_command,omitempty" toml:"release_command,omitempty"`
	Strategy       *DeployStrategy `json:"strategy,omitempty" toml:"strategy,omitempty"`
}

type Static struct {
	GuestPath string `json:"guest_path" toml:"guest_path"`
	URLPrefix string `json:"url_prefix" toml:"url_prefix"`
}

type Mount struct {
	Source      string `json:"source" toml:"source"`
	Destination string `json:"destination" toml:"destination"`
}

type Metrics struct {
	Port uint16 `json:"port" toml:"port"`
	Path string `json:"path" toml:"path"`
}

// Service.Protocol is used while authoring only and is never written to the
// platform config.
type Service struct {
	InternalPort uint64           `json:"internal_port" toml:"internal_port"`
	Processes    []string         `json:"processes,omitempty" toml:"processes,omitempty"`
	Concurrency  Concurrency      `json:"concurrency" toml:"concurrency"`
	Ports        []ServicePort    `json:"ports,omitempty" toml:"ports,omitempty"`
	TCPChecks    []TCPCheck       `json:"tcp_checks,omitempty" toml:"tcp_checks,omitempty"`
	HTTPChecks   []HTTPCheck      `json:"http_checks,omitempty" toml:"http_checks,omitempty"`
	Protocol     *ServiceProtocol `json:"protocol,omitempty" toml:"-"`
}

type Concurrency struct {
	HardLimit *uint64 `json:"hard_limit,omitempty" toml:"hard_limit,omitempty"`
	SoftLimit *uint64 `json:"soft_limit,omitempty" toml:"soft_limit,omitempty"`
	Type      string  `json:"type" toml:"type"`
}

type ServicePort struct {
	Port       uint64        `json:"port" toml:"port"`
	ForceHTTPS *bool         `json:"force_https,omitempty" toml:"force_https,omitempty"`
	Handlers   []PortHandler `json:"handlers" toml:"handlers"`
}

type TCPCheck struct {
	Interval     *uint64 `json:"interval,omitempty" toml:"interval,omitempty"`
	GracePeriod  string  `json:"grace_period,omitempty" toml:"grace_period,omitempty"`
	Timeout      *uint64 `json:"timeout,omitempty" toml:"timeout,omitempty"`
	RestartLimit *uint64 `json:"restart_limit,omitempty" toml:"restart_limit,omitempty"`
}

type HTTPCheck struct {
	Interval      *uint64           `json:"interval,omitempty" toml:"interval,omitempty"`
	GracePeriod   string            `json:"grace_period,omitempty" toml:"grace_period,omitempty"`
	Method        string            `json:"method,omitempty" toml:"method,omitempty"`
	Path          string            `json:"path,omitempty" toml:"path,omitempty"`
	Protocol      *CheckProtocol    `json:"protocol,omitempty" toml:"protocol,omitempty"`
	Timeout       *uint64           `json:"timeout,omitempty" toml:"timeout,omitempty"`
	RestartLimit  *uint64           `json:"restart_limit,omitempty" toml:"restart_limit,omitempty"`
	TLSSkipVerify *bool             `json:"tls_skip_verify,omitempty" toml:"tls_skip_verify,omitempty"`
	Headers       map[string]string `json:"headers,omitempty" toml:"headers,omitempty"`
}

// Environment maps a scope ("all" or a target environment name) to the
// variables defined for it.
type Environment map[string][]EnvironmentVariable

// ScopeAll is the environment scope applied to every target environment.
const ScopeAll = "all"
