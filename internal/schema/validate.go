package schema

import (
	"fmt"
	"sort"
	"strings"

	deployerrors "github.com/nyambati/deployctl/internal/errors"
)

const maxPort = 65535

// Validate reports every problem found in the config as a single
// ConfigParseError.
func (c *DeployConfig) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Name == "" {
		add("name is required")
	}
	if c.Organization == "" {
		add("organization is required")
	}
	if c.DefaultRegion == "" {
		add("default_region is required")
	}
	if dup := firstDuplicate(append([]string{c.DefaultRegion}, c.Regions...)); dup != "" {
		add("region %s is listed more than once", dup)
	}
	if dup := firstDuplicate(c.BackupRegions); dup != "" {
		add("backup region %s is listed more than once", dup)
	}

	problems = append(problems, c.Scaling.problems()...)

	if c.Database != nil && c.Database.Postgres != nil && c.Database.Postgres.ClusterSize < 1 {
		add("database.postgres.cluster_size must be at least 1")
	}

	for i, s := range c.Services {
		if s.InternalPort == 0 || s.InternalPort > maxPort {
			add("services[%d].internal_port %d is out of range", i, s.InternalPort)
		}
		if s.Concurrency.Type == "" {
			add("services[%d].concurrency.type is required", i)
		}
		for j, p := range s.Ports {
			if p.Port == 0 || p.Port > maxPort {
				add("services[%d].ports[%d].port %d is out of range", i, j, p.Port)
			}
		}
	}

	for i, m := range c.Mounts {
		if m.Source == "" || m.Destination == "" {
			add("mounts[%d] requires source and destination", i)
		}
	}

	problems = append(problems, c.Environment.problems()...)

	if len(problems) > 0 {
		return deployerrors.NewConfigParseError("", strings.Join(problems, "; "))
	}
	return nil
}

// A static balance method pins the instance count to min_count, so max_count
// is only checked for autoscaling methods.
func (s Scaling) problems() []string {
	var problems []string
	if s.Memory == 0 {
		problems = append(problems, "scaling.memory must be positive")
	}
	switch s.BalanceMethod {
	case BalanceStatic:
	case BalanceBalanced, BalanceStandard:
		if s.MinCount > s.MaxCount {
			problems = append(problems, fmt.Sprintf("scaling.min_count %d exceeds max_count %d", s.MinCount, s.MaxCount))
		}
	default:
		problems = append(problems, fmt.Sprintf("scaling.balance_method %q is unknown", s.BalanceMethod))
	}
	return problems
}

func (e Environment) problems() []string {
	var problems []string
	for _, scope := range e.Scopes() {
		if scope == "" {
			problems = append(problems, "environment scope name is empty")
		}
		for i, v := range e[scope] {
			if v.Key == "" {
				problems = append(problems, fmt.Sprintf("environment.%s[%d].key is empty", scope, i))
			}
			switch value := v.Value.(type) {
			case Literal:
			case FromKMS:
				if value.Ciphertext == "" {
					problems = append(problems, fmt.Sprintf("environment.%s.%s has empty ciphertext", scope, v.Key))
				}
			case FromSecretStore:
				if value.Name == "" {
					problems = append(problems, fmt.Sprintf("environment.%s.%s has empty secret name", scope, v.Key))
				}
			default:
				problems = append(problems, fmt.Sprintf("environment.%s.%s has no value", scope, v.Key))
			}
		}
	}
	return problems
}

// Scopes returns the scope names in sorted order.
func (e Environment) Scopes() []string {
	scopes := make([]string, 0, len(e))
	for scope := range e {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)
	return scopes
}

func firstDuplicate(values []string) string {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			return v
		}
		seen[v] = struct{}{}
	}
	return ""
}
