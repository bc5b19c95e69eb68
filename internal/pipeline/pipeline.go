package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/nyambati/deployctl/internal/environment"
	deployerrors "github.com/nyambati/deployctl/internal/errors"
	"github.com/nyambati/deployctl/internal/merge"
	"github.com/nyambati/deployctl/internal/platform"
	"github.com/nyambati/deployctl/internal/schema"
	"github.com/nyambati/deployctl/internal/template"
	"github.com/sirupsen/logrus"
)

var _ PipelineInterface = (*Pipeline)(nil)

func NewPipeline(resolver environment.ResolverInterface, logger *logrus.Entry) PipelineInterface {
	return &Pipeline{
		environment: resolver,
		logger:      logger.WithField("component", "pipeline"),
	}
}

// Resolve loads, resolves, projects and writes the platform config. Each stage
// stops the run on failure; output is only replaced once every stage has
// succeeded.
func (p *Pipeline) Resolve(ctx context.Context, inputs []string, output, env string) error {
	logger := p.logger.WithFields(logrus.Fields{"environment": env, "output": output})

	doc, err := p.Load(ctx, inputs, env)
	if err != nil {
		return err
	}

	variables, err := p.environment.Resolve(ctx, doc.Config, env)
	if err != nil {
		return err
	}

	data, err := platform.Encode(platform.Project(doc.Config, variables))
	if err != nil {
		return err
	}

	if err := writeFile(ctx, output, data); err != nil {
		return err
	}

	logger.Info("wrote platform config")
	return nil
}

func (p *Pipeline) Load(ctx context.Context, inputs []string, env string) (*schema.Document, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("at least one input file is required")
	}

	logger := p.logger.WithFields(logrus.Fields{"environment": env, "inputs": inputs})

	if err := ctx.Err(); err != nil {
		return nil, deployerrors.NewAbortedError("load", err)
	}

	// Each file is rendered before parsing so a templated key and a literal
	// key that render alike are merged in file order.
	bindings := template.EscapeJSON(template.Bindings{template.EnvironmentKey: env})
	docs, err := merge.LoadFiles(inputs, func(text string) (string, error) {
		return template.Render(text, bindings)
	})
	if err != nil {
		return nil, err
	}

	merged, err := merge.Encode(merge.Merge(docs...))
	if err != nil {
		return nil, deployerrors.NewConfigParseError("", err.Error())
	}

	doc, err := schema.Decode([]byte(merged))
	if err != nil {
		var parseErr *deployerrors.ConfigParseError
		if errors.As(err, &parseErr) {
			return nil, err
		}
		return nil, deployerrors.NewConfigParseError("", err.Error())
	}

	for _, note := range doc.Notes {
		logger.WithField("source_version", doc.SourceVersion.Original()).Warn(note)
	}

	if err := environment.CheckReferences(doc.Config); err != nil {
		return nil, err
	}

	logger.WithField("app", doc.Config.Name).Debug("loaded deploy config")
	return doc, nil
}
