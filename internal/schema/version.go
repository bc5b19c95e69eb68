package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
)

// CurrentVersion is the schema revision produced by NewSample and assumed when
// a document carries no version key.
const CurrentVersion = "3"

// DefaultRegion is assigned to documents from revisions that predate regions.
const DefaultRegion = "iad"

var (
	v1Constraint = version.MustConstraints(version.NewConstraint("< 2"))
	v2Constraint = version.MustConstraints(version.NewConstraint(">= 2, < 3"))
	v3Constraint = version.MustConstraints(version.NewConstraint(">= 3, < 4"))
)

// variant is one historical schema revision. Each revision upgrades itself
// into the current DeployConfig.
type variant interface {
	upgrade() (*DeployConfig, []string)
}

// Document is a decoded deploy config together with the revision it was
// written in and any notes produced while upgrading it.
type Document struct {
	SourceVersion *version.Version
	Config        *DeployConfig
	Notes         []string
}

// Decode parses a rendered document, dispatches on its version key, upgrades
// it to the current representation, fills defaults and validates it.
func Decode(data []byte) (*Document, error) {
	v, err := detectVersion(data)
	if err != nil {
		return nil, err
	}

	var doc variant
	switch {
	case v1Constraint.Check(v):
		doc = &v1Document{}
	case v2Constraint.Check(v):
		doc = &v2Document{}
	case v3Constraint.Check(v):
		doc = &v3Document{DeployConfig: newDeployConfig()}
	default:
		return nil, fmt.Errorf("unsupported schema version %s", v.Original())
	}

	if err := decodeStrict(data, doc); err != nil {
		return nil, err
	}

	cfg, notes := doc.upgrade()
	cfg.Version = CurrentVersion
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Document{SourceVersion: v, Config: cfg, Notes: notes}, nil
}

func detectVersion(data []byte) (*version.Version, error) {
	var probe struct {
		Version json.RawMessage `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	raw := strings.Trim(strings.TrimSpace(string(probe.Version)), `"`)
	if raw == "" || raw == "null" {
		raw = CurrentVersion
	}

	v, err := version.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid schema version %q: %w", raw, err)
	}
	return v, nil
}

func decodeStrict(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// newDeployConfig pre-fills scaling defaults before decoding. MaxCount is left
// at zero so applyDefaults can tell an absent max_count apart.
func newDeployConfig() DeployConfig {
	scaling := defaultScaling()
	scaling.MaxCount = 0
	return DeployConfig{Scaling: scaling}
}

func defaultScaling() Scaling {
	return Scaling{
		Memory:        256,
		VMSize:        VMSharedCPU1x,
		MinCount:      1,
		MaxCount:      1,
		BalanceMethod: BalanceBalanced,
	}
}

func defaultPostgres() *Postgres {
	return &Postgres{ClusterSize: 1, VMSize: VMSharedCPU1x}
}

func applyDefaults(cfg *DeployConfig) {
	defaults := defaultScaling()
	if cfg.Scaling.Memory == 0 {
		cfg.Scaling.Memory = defaults.Memory
	}
	if cfg.Scaling.VMSize == "" {
		cfg.Scaling.VMSize = defaults.VMSize
	}
	if cfg.Scaling.BalanceMethod == "" {
		cfg.Scaling.BalanceMethod = defaults.BalanceMethod
	}
	if cfg.Scaling.MaxCount == 0 {
		cfg.Scaling.MaxCount = max(cfg.Scaling.MinCount, defaults.MaxCount)
	}

	if cfg.Database != nil && cfg.Database.Postgres != nil {
		if cfg.Database.Postgres.ClusterSize == 0 {
			cfg.Database.Postgres.ClusterSize = 1
		}
		if cfg.Database.Postgres.VMSize == "" {
			cfg.Database.Postgres.VMSize = VMSharedCPU1x
		}
	}
}

// v3Document is the current revision. Version shadows the embedded field so
// both "3" and 3 are accepted.
type v3Document struct {
	DeployConfig
	Version any `json:"version,omitempty"`
}

func (d *v3Document) upgrade() (*DeployConfig, []string) {
	cfg := d.DeployConfig
	return &cfg, nil
}
