package secrets

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	deployerrors "github.com/nyambati/deployctl/internal/errors"
	"github.com/nyambati/deployctl/internal/schema"
	"github.com/sirupsen/logrus"
)

const (
	apiBackend            = "api"
	kmsEndpoint           = "https://cloudkms.googleapis.com"
	secretManagerEndpoint = "https://secretmanager.googleapis.com"
)

var _ Resolver = (*APIResolver)(nil)

func NewAPIResolver(client *http.Client, logger *logrus.Entry) Resolver {
	return &APIResolver{
		client: client,
		logger: logger.WithField("component", "api"),
	}
}

func (a *APIResolver) Decrypt(ctx context.Context, ref schema.KMSReference, ciphertext string) (string, error) {
	target := keyName(ref)

	raw, err := decodeBase64(ciphertext)
	if err != nil {
		return "", deployerrors.NewSecretBackendError(apiBackend, target, fmt.Errorf("ciphertext: %w", err))
	}

	payload, err := json.Marshal(decryptRequest{Ciphertext: base64.StdEncoding.EncodeToString(raw)})
	if err != nil {
		return "", deployerrors.NewSecretBackendError(apiBackend, target, err)
	}

	var response decryptResponse
	url := fmt.Sprintf("%s/v1/%s:decrypt", kmsEndpoint, target)
	if err := a.send(ctx, http.MethodPost, url, payload, &response); err != nil {
		return "", deployerrors.NewSecretBackendError(apiBackend, target, err)
	}

	plaintext, err := decodeBase64(response.Plaintext)
	if err != nil {
		return "", deployerrors.NewSecretBackendError(apiBackend, target, fmt.Errorf("plaintext: %w", err))
	}
	return string(plaintext), nil
}

func (a *APIResolver) Fetch(ctx context.Context, ref schema.SecretStoreReference, name string, version uint16) (string, error) {
	target := secretVersionName(ref, name, version)

	var response accessResponse
	url := fmt.Sprintf("%s/v1/%s:access", secretManagerEndpoint, target)
	if err := a.send(ctx, http.MethodGet, url, nil, &response); err != nil {
		return "", deployerrors.NewSecretBackendError(apiBackend, target, err)
	}

	plaintext, err := decodeBase64(response.Payload.Data)
	if err != nil {
		return "", deployerrors.NewSecretBackendError(apiBackend, target, fmt.Errorf("payload: %w", err))
	}
	return string(plaintext), nil
}

func (a *APIResolver) send(ctx context.Context, method, url string, payload []byte, out any) error {
	startTime := time.Now()
	logger := a.logger.WithFields(logrus.Fields{"method": method, "url": url})
	logger.Debug("sending request")

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		switch ctx.Err() {
		case context.DeadlineExceeded:
			return fmt.Errorf("request timed out: %w", ctx.Err())
		case context.Canceled:
			return fmt.Errorf("request canceled: %w", ctx.Err())
		default:
			return fmt.Errorf("failed to send http request: %w", err)
		}
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.WithField("status_code", resp.StatusCode).Debug("service returned non-2xx response")
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	logger.WithField("duration", time.Since(startTime)).Debug("request completed")
	return nil
}
