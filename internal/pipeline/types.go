package pipeline

import (
	"context"

	"github.com/nyambati/deployctl/internal/environment"
	"github.com/nyambati/deployctl/internal/schema"
	"github.com/sirupsen/logrus"
)

type PipelineInterface interface {
	// Resolve turns the input documents into a platform config written to
	// output.
	Resolve(ctx context.Context, inputs []string, output, env string) error
	// Load runs every stage up to and including credential reference checks
	// without contacting any secret backend.
	Load(ctx context.Context, inputs []string, env string) (*schema.Document, error)
}

type Pipeline struct {
	environment environment.ResolverInterface
	logger      *logrus.Entry
}
