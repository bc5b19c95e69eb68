package platform

import (
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/nyambati/deployctl/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	signal := schema.SigInt
	timeout := uint64(5)
	cfg := &schema.DeployConfig{
		Name:          "web",
		Organization:  "acme",
		DefaultRegion: "ord",
		Regions:       []string{"ams"},
		GcpKms:        &schema.KMSReference{Project: "p"},
		KillSignal:    &signal,
		KillTimeout:   &timeout,
		Mounts:        []schema.Mount{{Source: "data", Destination: "/data"}},
		Environment: schema.Environment{
			schema.ScopeAll: {{Key: "RAW", Value: schema.Literal("x")}},
		},
	}
	env := map[string]string{"A": "1"}

	got := Project(cfg, env)

	assert.Equal(t, "web", got.App)
	assert.Equal(t, &signal, got.KillSignal)
	assert.Equal(t, &timeout, got.KillTimeout)
	assert.Equal(t, map[string]string{"A": "1"}, got.Env)
	assert.Equal(t, cfg.Mounts, got.Mounts)

	got.Env["B"] = "2"
	got.Mounts[0].Source = "changed"
	assert.Equal(t, map[string]string{"A": "1"}, env)
	assert.Equal(t, "data", cfg.Mounts[0].Source)
}

func TestEncode_OmitsAbsentOptionals(t *testing.T) {
	data, err := Encode(Project(&schema.DeployConfig{Name: "web"}, nil))
	require.NoError(t, err)

	assert.Equal(t, `app = "web"`, strings.TrimSpace(string(data)))
}

func TestEncode_DropsAuthoringOnlyFields(t *testing.T) {
	protocol := schema.ProtocolUDP
	cfg := &schema.DeployConfig{
		Name:          "web",
		Organization:  "acme",
		DefaultRegion: "ord",
		Scaling:       schema.Scaling{Memory: 512},
		Services: []schema.Service{{
			InternalPort: 8080,
			Protocol:     &protocol,
			Concurrency:  schema.Concurrency{Type: "connections"},
			Ports:        []schema.ServicePort{{Port: 443, Handlers: []schema.PortHandler{schema.HandlerTLS, schema.HandlerHTTP}}},
		}},
	}

	data, err := Encode(Project(cfg, map[string]string{"A": "1"}))
	require.NoError(t, err)

	var decoded map[string]any
	_, err = toml.Decode(string(data), &decoded)
	require.NoError(t, err)

	assert.Equal(t, "web", decoded["app"])
	assert.Equal(t, map[string]any{"A": "1"}, decoded["env"])
	for _, key := range []string{"organization", "default_region", "scaling", "environment"} {
		assert.NotContains(t, decoded, key)
	}

	services, ok := decoded["services"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, services, 1)
	assert.Equal(t, int64(8080), services[0]["internal_port"])
	assert.NotContains(t, services[0], "protocol")
	assert.NotContains(t, services[0], "http_checks")
}

func TestEncode_Deterministic(t *testing.T) {
	cfg := &schema.DeployConfig{Name: "web"}
	env := map[string]string{"ZETA": "z", "ALPHA": "a", "MIDDLE": "m", "BETA": "b"}

	first, err := Encode(Project(cfg, env))
	require.NoError(t, err)
	second, err := Encode(Project(cfg, env))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	out := string(first)
	assert.Less(t, strings.Index(out, "ALPHA"), strings.Index(out, "BETA"))
	assert.Less(t, strings.Index(out, "MIDDLE"), strings.Index(out, "ZETA"))
}
