package secrets

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/nyambati/deployctl/internal/config"
	"github.com/nyambati/deployctl/internal/schema"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// New builds the resolver selected by the settings' backend.
func New(ctx context.Context, settings config.Resolver, logger *logrus.Entry) (Resolver, error) {
	switch settings.Backend {
	case config.BackendGcloud:
		return NewGcloudResolver(settings.GcloudPath, nil, logger), nil
	case config.BackendAPI:
		client, err := google.DefaultClient(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("failed to discover google credentials: %w", err)
		}
		return NewAPIResolver(client, logger), nil
	default:
		return nil, fmt.Errorf("unknown resolver backend %q", settings.Backend)
	}
}

func keyName(ref schema.KMSReference) string {
	return fmt.Sprintf("projects/%s/locations/%s/keyRings/%s/cryptoKeys/%s",
		ref.Project, ref.Location, ref.KeyRing, ref.Key)
}

func secretVersionName(ref schema.SecretStoreReference, name string, version uint16) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%d", ref.Project, name, version)
}

func decodeBase64(value string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	return decoded, nil
}
