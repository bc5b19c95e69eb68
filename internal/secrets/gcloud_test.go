package secrets

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"testing"

	deployerrors "github.com/nyambati/deployctl/internal/errors"
	"github.com/nyambati/deployctl/internal/mocks"
	"github.com/nyambati/deployctl/internal/schema"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var kmsRef = schema.KMSReference{Project: "acme", Location: "global", KeyRing: "deploy", Key: "env"}
var ssmRef = schema.SecretStoreReference{Project: "acme"}

func discardLogger() *logrus.Entry {
	return logrus.NewEntry(&logrus.Logger{Out: io.Discard})
}

func TestGcloudResolver_Decrypt(t *testing.T) {
	runner := mocks.NewMockCommandRunner(gomock.NewController(t))
	runner.EXPECT().
		Run(gomock.Any(), []byte("ciphertext"), "/usr/bin/gcloud",
			"kms", "decrypt",
			"--project", "acme",
			"--location", "global",
			"--keyring", "deploy",
			"--key", "env",
			"--ciphertext-file", "-",
			"--plaintext-file", "-",
		).
		Return([]byte("s3cret"), nil)

	resolver := NewGcloudResolver("/usr/bin/gcloud", runner, discardLogger())

	got, err := resolver.Decrypt(context.Background(), kmsRef, "Y2lwaGVydGV4dA==")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
}

func TestGcloudResolver_Fetch(t *testing.T) {
	runner := mocks.NewMockCommandRunner(gomock.NewController(t))
	runner.EXPECT().
		Run(gomock.Any(), gomock.Nil(), "gcloud",
			"secrets", "versions", "access", "4",
			"--secret", "db",
			"--project", "acme",
			"--format", "json",
		).
		Return([]byte(`{"name": "projects/1/secrets/db/versions/4", "payload": {"data": "aHVudGVyMg=="}}`), nil)

	resolver := NewGcloudResolver("gcloud", runner, discardLogger())

	got, err := resolver.Fetch(context.Background(), ssmRef, "db", 4)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
}

func TestGcloudResolver_Errors(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(runner *mocks.MockCommandRunner)
		call   func(r Resolver) (string, error)
		target string
		reason string
	}{
		{
			name:  "TestDecryptInvalidBase64",
			setup: func(runner *mocks.MockCommandRunner) {},
			call: func(r Resolver) (string, error) {
				return r.Decrypt(context.Background(), kmsRef, "not base64!")
			},
			target: "projects/acme/locations/global/keyRings/deploy/cryptoKeys/env",
			reason: "ciphertext: invalid base64",
		},
		{
			name: "TestDecryptCommandFails",
			setup: func(runner *mocks.MockCommandRunner) {
				runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("PERMISSION_DENIED"))
			},
			call: func(r Resolver) (string, error) {
				return r.Decrypt(context.Background(), kmsRef, "eA==")
			},
			target: "projects/acme/locations/global/keyRings/deploy/cryptoKeys/env",
			reason: "PERMISSION_DENIED",
		},
		{
			name: "TestFetchCommandFails",
			setup: func(runner *mocks.MockCommandRunner) {
				runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("NOT_FOUND"))
			},
			call: func(r Resolver) (string, error) {
				return r.Fetch(context.Background(), ssmRef, "db", 1)
			},
			target: "projects/acme/secrets/db/versions/1",
			reason: "NOT_FOUND",
		},
		{
			name: "TestFetchUnexpectedOutput",
			setup: func(runner *mocks.MockCommandRunner) {
				runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]byte("hunter2"), nil)
			},
			call: func(r Resolver) (string, error) {
				return r.Fetch(context.Background(), ssmRef, "db", 1)
			},
			target: "projects/acme/secrets/db/versions/1",
			reason: "unexpected gcloud output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Calls without an expectation fail the test.
			runner := mocks.NewMockCommandRunner(gomock.NewController(t))
			tt.setup(runner)
			resolver := NewGcloudResolver("gcloud", runner, discardLogger())

			_, err := tt.call(resolver)

			var backendErr *deployerrors.SecretBackendError
			require.True(t, errors.As(err, &backendErr))
			assert.Equal(t, gcloudBackend, backendErr.Backend)
			assert.Equal(t, tt.target, backendErr.Target)
			assert.Contains(t, backendErr.Reason, tt.reason)
		})
	}
}

func TestExecRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}

	runner := execRunner{}

	t.Run("TestStdinIsPiped", func(t *testing.T) {
		stdout, err := runner.Run(context.Background(), []byte("ciphertext"), "sh", "-c", "cat")
		require.NoError(t, err)
		assert.Equal(t, "ciphertext", string(stdout))
	})

	t.Run("TestStderrInError", func(t *testing.T) {
		_, err := runner.Run(context.Background(), nil, "sh", "-c", "echo PERMISSION_DENIED >&2; exit 3")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PERMISSION_DENIED")
		assert.Contains(t, err.Error(), "exit status 3")
	})

	t.Run("TestCanceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := runner.Run(ctx, nil, "sh", "-c", "sleep 5")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
