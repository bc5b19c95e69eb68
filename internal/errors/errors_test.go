package deployerrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "ConfigRead",
			err:  NewConfigReadError("fly.json", "no such file"),
			want: "failed to read config fly.json: reason = no such file",
		},
		{
			name: "ConfigParseWithPath",
			err:  NewConfigParseError("fly.json", "unexpected EOF"),
			want: "failed to parse config fly.json: reason = unexpected EOF",
		},
		{
			name: "ConfigParseMerged",
			err:  NewConfigParseError("", "name is required"),
			want: "invalid deploy config: reason = name is required",
		},
		{
			name: "TemplateRender",
			err:  NewTemplateRenderError(2, 7, "unclosed placeholder"),
			want: "failed to render template at line 2 col 7: reason = unclosed placeholder",
		},
		{
			name: "MissingReference",
			err:  NewMissingCredentialReferenceError("DB_PASSWORD", "gcp_kms"),
			want: "environment variable DB_PASSWORD requires gcp_kms but it is not configured",
		},
		{
			name: "OutputWrite",
			err:  NewOutputWriteError("fly.toml", "permission denied"),
			want: "failed to write output fly.toml: reason = permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestUnwrap(t *testing.T) {
	aborted := fmt.Errorf("pipeline: %w", NewAbortedError("secret resolution", context.Canceled))
	assert.ErrorIs(t, aborted, context.Canceled)

	var target *AbortedError
	assert.True(t, errors.As(aborted, &target))
	assert.Equal(t, "secret resolution", target.Stage)

	cause := errors.New("permission denied")
	backend := NewSecretBackendError("gcloud", "projects/p/secrets/s/versions/1", cause)
	assert.ErrorIs(t, backend, cause)
	assert.EqualError(t, backend, "gcloud lookup of projects/p/secrets/s/versions/1 failed: reason = permission denied")
}
