package environment

import (
	"context"

	deployerrors "github.com/nyambati/deployctl/internal/errors"
	"github.com/nyambati/deployctl/internal/schema"
	"github.com/nyambati/deployctl/internal/secrets"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/iter"
)

var _ ResolverInterface = (*Resolver)(nil)

func NewResolver(secrets secrets.Resolver, options Options, logger *logrus.Entry) ResolverInterface {
	return &Resolver{
		secrets: secrets,
		options: options,
		logger:  logger.WithField("component", "environment"),
	}
}

// Resolve flattens the "all" scope and the scope named after environment into
// one map. Lookups run in parallel but are applied in declaration order with
// "all" first, so the environment scope wins on duplicate keys. A failed
// lookup is logged and its key omitted; only cancellation of ctx aborts.
func (r *Resolver) Resolve(ctx context.Context, cfg *schema.DeployConfig, environment string) (map[string]string, error) {
	if err := CheckReferences(cfg); err != nil {
		return nil, err
	}

	logger := r.logger.WithField("environment", environment)
	lookups := selectVariables(cfg.Environment, environment)

	mapper := iter.Mapper[lookup, outcome]{MaxGoroutines: r.options.Concurrency}
	outcomes := mapper.Map(lookups, func(l *lookup) outcome {
		return r.resolveOne(ctx, cfg, l.variable.Value)
	})

	if err := ctx.Err(); err != nil {
		return nil, deployerrors.NewAbortedError("environment resolution", err)
	}

	resolved := make(map[string]string, len(lookups))
	failed := 0
	for i, l := range lookups {
		result := outcomes[i]
		if result.err != nil {
			failed++
			delete(resolved, l.variable.Key)
			logger.WithFields(logrus.Fields{
				"key":    l.variable.Key,
				"scope":  l.scope,
				"source": schema.SourceName(l.variable.Value),
			}).WithError(result.err).Warn("failed to resolve environment variable, omitting it")
			continue
		}
		resolved[l.variable.Key] = result.value
	}

	logger.WithFields(logrus.Fields{
		"resolved": len(resolved),
		"failed":   failed,
	}).Info("resolved environment variables")
	return resolved, nil
}

func (r *Resolver) resolveOne(ctx context.Context, cfg *schema.DeployConfig, value schema.EnvironmentValue) outcome {
	if literal, ok := value.(schema.Literal); ok {
		return outcome{value: string(literal)}
	}
	if err := ctx.Err(); err != nil {
		return outcome{err: err}
	}

	if r.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.options.Timeout)
		defer cancel()
	}

	var result outcome
	switch typed := value.(type) {
	case schema.FromKMS:
		result.value, result.err = r.secrets.Decrypt(ctx, *cfg.GcpKms, typed.Ciphertext)
	case schema.FromSecretStore:
		result.value, result.err = r.secrets.Fetch(ctx, *cfg.GcpSsm, typed.Name, typed.Version)
	default:
		result.err = deployerrors.NewConfigParseError("", "environment variable has no value")
	}
	return result
}

// CheckReferences fails when any variable, in any scope, needs a credential
// reference block the document does not define.
func CheckReferences(cfg *schema.DeployConfig) error {
	for _, scope := range cfg.Environment.Scopes() {
		for _, v := range cfg.Environment[scope] {
			switch v.Value.(type) {
			case schema.FromKMS:
				if cfg.GcpKms == nil {
					return deployerrors.NewMissingCredentialReferenceError(v.Key, "gcp_kms")
				}
			case schema.FromSecretStore:
				if cfg.GcpSsm == nil {
					return deployerrors.NewMissingCredentialReferenceError(v.Key, "gcp_ssm")
				}
			}
		}
	}
	return nil
}

func selectVariables(env schema.Environment, environment string) []lookup {
	var lookups []lookup
	for _, v := range env[schema.ScopeAll] {
		lookups = append(lookups, lookup{scope: schema.ScopeAll, variable: v})
	}
	if environment == schema.ScopeAll {
		return lookups
	}
	for _, v := range env[environment] {
		lookups = append(lookups, lookup{scope: environment, variable: v})
	}
	return lookups
}
