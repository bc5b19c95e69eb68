package secrets

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/h2non/gock"
	deployerrors "github.com/nyambati/deployctl/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIResolver_Decrypt(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		response   map[string]string
		expected   string
		wantErr    string
	}{
		{
			name:       "TestSuccessfulDecrypt",
			statusCode: 200,
			response:   map[string]string{"plaintext": "czNjcmV0"},
			expected:   "s3cret",
		},
		{
			name:       "TestPermissionDenied",
			statusCode: 403,
			response:   map[string]string{"error": "denied"},
			wantErr:    "unexpected status 403",
		},
		{
			name:       "TestMalformedPlaintext",
			statusCode: 200,
			response:   map[string]string{"plaintext": "%%%"},
			wantErr:    "plaintext: invalid base64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer gock.Off()

			gock.
				New(kmsEndpoint).
				Post("/v1/projects/acme/locations/global/keyRings/deploy/cryptoKeys/env:decrypt").
				MatchType("json").
				JSON(map[string]string{"ciphertext": "Y2lwaGVydGV4dA=="}).
				Reply(tt.statusCode).
				JSON(tt.response)

			resolver := NewAPIResolver(&http.Client{}, discardLogger())
			got, err := resolver.Decrypt(context.Background(), kmsRef, "Y2lwaGVydGV4dA==")

			assert.True(t, gock.IsDone())
			if tt.wantErr != "" {
				var backendErr *deployerrors.SecretBackendError
				require.True(t, errors.As(err, &backendErr))
				assert.Equal(t, apiBackend, backendErr.Backend)
				assert.Contains(t, backendErr.Reason, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAPIResolver_DecryptInvalidCiphertext(t *testing.T) {
	defer gock.Off()
	gock.New(kmsEndpoint).Post("/").Reply(200)

	resolver := NewAPIResolver(&http.Client{}, discardLogger())
	_, err := resolver.Decrypt(context.Background(), kmsRef, "***")

	assert.ErrorContains(t, err, "ciphertext: invalid base64")
	assert.False(t, gock.IsDone(), "no request should be sent for undecodable ciphertext")
}

func TestAPIResolver_Fetch(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		expected   string
		wantErr    string
	}{
		{
			name:       "TestSuccessfulAccess",
			statusCode: 200,
			body:       `{"name": "projects/1/secrets/db/versions/2", "payload": {"data": "aHVudGVyMg=="}}`,
			expected:   "hunter2",
		},
		{
			name:       "TestNotFound",
			statusCode: 404,
			body:       `{"error": {"status": "NOT_FOUND"}}`,
			wantErr:    "unexpected status 404",
		},
		{
			name:       "TestInvalidBody",
			statusCode: 200,
			body:       `<html>`,
			wantErr:    "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer gock.Off()

			gock.
				New(secretManagerEndpoint).
				Get("/v1/projects/acme/secrets/db/versions/2:access").
				Reply(tt.statusCode).
				BodyString(tt.body)

			resolver := NewAPIResolver(&http.Client{}, discardLogger())
			got, err := resolver.Fetch(context.Background(), ssmRef, "db", 2)

			assert.True(t, gock.IsDone())
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				var backendErr *deployerrors.SecretBackendError
				assert.True(t, errors.As(err, &backendErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
