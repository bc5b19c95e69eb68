package secrets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	deployerrors "github.com/nyambati/deployctl/internal/errors"
	"github.com/nyambati/deployctl/internal/schema"
	"github.com/sirupsen/logrus"
)

const gcloudBackend = "gcloud"

var _ Resolver = (*GcloudResolver)(nil)

// NewGcloudResolver returns a resolver that runs the gcloud binary at path.
// A nil runner executes real processes.
func NewGcloudResolver(path string, runner CommandRunner, logger *logrus.Entry) Resolver {
	if runner == nil {
		runner = execRunner{}
	}
	return &GcloudResolver{
		path:   path,
		runner: runner,
		logger: logger.WithField("component", "gcloud"),
	}
}

// Decrypt pipes the decoded ciphertext to `gcloud kms decrypt` on stdin and
// reads the plaintext from stdout.
func (g *GcloudResolver) Decrypt(ctx context.Context, ref schema.KMSReference, ciphertext string) (string, error) {
	target := keyName(ref)
	logger := g.logger.WithField("key", target)

	raw, err := decodeBase64(ciphertext)
	if err != nil {
		return "", deployerrors.NewSecretBackendError(gcloudBackend, target, fmt.Errorf("ciphertext: %w", err))
	}

	logger.Debug("decrypting ciphertext")
	stdout, err := g.runner.Run(ctx, raw, g.path,
		"kms", "decrypt",
		"--project", ref.Project,
		"--location", ref.Location,
		"--keyring", ref.KeyRing,
		"--key", ref.Key,
		"--ciphertext-file", "-",
		"--plaintext-file", "-",
	)
	if err != nil {
		return "", deployerrors.NewSecretBackendError(gcloudBackend, target, err)
	}
	return string(stdout), nil
}

// Fetch reads a secret version with `gcloud secrets versions access` in JSON
// form and decodes its base64 payload.
func (g *GcloudResolver) Fetch(ctx context.Context, ref schema.SecretStoreReference, name string, version uint16) (string, error) {
	target := secretVersionName(ref, name, version)
	logger := g.logger.WithField("secret", target)

	logger.Debug("accessing secret version")
	stdout, err := g.runner.Run(ctx, nil, g.path,
		"secrets", "versions", "access", strconv.FormatUint(uint64(version), 10),
		"--secret", name,
		"--project", ref.Project,
		"--format", "json",
	)
	if err != nil {
		return "", deployerrors.NewSecretBackendError(gcloudBackend, target, err)
	}

	var response accessResponse
	if err := json.Unmarshal(stdout, &response); err != nil {
		return "", deployerrors.NewSecretBackendError(gcloudBackend, target, fmt.Errorf("unexpected gcloud output: %w", err))
	}

	plaintext, err := decodeBase64(response.Payload.Data)
	if err != nil {
		return "", deployerrors.NewSecretBackendError(gcloudBackend, target, fmt.Errorf("payload: %w", err))
	}
	return string(plaintext), nil
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w", name, ctx.Err())
		}
		return nil, fmt.Errorf("%s %s failed: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
