package environment

import (
	"context"
	"time"

	"github.com/nyambati/deployctl/internal/schema"
	"github.com/nyambati/deployctl/internal/secrets"
	"github.com/sirupsen/logrus"
)

type ResolverInterface interface {
	Resolve(ctx context.Context, cfg *schema.DeployConfig, environment string) (map[string]string, error)
}

type Options struct {
	// Timeout bounds each individual secret lookup. Zero means no limit
	// beyond the caller's context.
	Timeout time.Duration
	// Concurrency caps parallel lookups. Zero uses GOMAXPROCS.
	Concurrency int
}

type Resolver struct {
	secrets secrets.Resolver
	options Options
	logger  *logrus.Entry
}

type lookup struct {
	scope    string
	variable schema.EnvironmentVariable
}

type outcome struct {
	value string
	err   error
}
