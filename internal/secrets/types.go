//go:generate mockgen -source=$GOFILE -destination=../mocks/mock_secrets.go -package=mocks Resolver

package secrets

import (
	"context"
	"net/http"

	"github.com/nyambati/deployctl/internal/schema"
	"github.com/sirupsen/logrus"
)

// Resolver turns an indirect environment value into plaintext. Every failure
// is reported as a *deployerrors.SecretBackendError.
type Resolver interface {
	Decrypt(ctx context.Context, ref schema.KMSReference, ciphertext string) (string, error)
	Fetch(ctx context.Context, ref schema.SecretStoreReference, name string, version uint16) (string, error)
}

// CommandRunner runs an external binary, feeding stdin and returning stdout.
type CommandRunner interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error)
}

// GcloudResolver shells out to an authenticated gcloud CLI.
type GcloudResolver struct {
	path   string
	runner CommandRunner
	logger *logrus.Entry
}

// APIResolver calls the Cloud KMS and Secret Manager REST APIs. The client is
// expected to attach credentials.
type APIResolver struct {
	client *http.Client
	logger *logrus.Entry
}

type decryptRequest struct {
	Ciphertext string `json:"ciphertext"`
}

type decryptResponse struct {
	Plaintext string `json:"plaintext"`
}

type accessResponse struct {
	Name    string `json:"name"`
	Payload struct {
		Data string `json:"data"`
	} `json:"payload"`
}
