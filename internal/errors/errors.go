package deployerrors

import "fmt"

type ConfigReadError struct {
	Path   string
	Reason string
}

func NewConfigReadError(path, reason string) error {
	return &ConfigReadError{Path: path, Reason: reason}
}

func (e *ConfigReadError) Error() string {
	return fmt.Sprintf("failed to read config %s: reason = %s", e.Path, e.Reason)
}

// ConfigParseError covers both malformed documents and documents that fail
// schema validation. Path is empty when the failure concerns the merged result.
type ConfigParseError struct {
	Path   string
	Reason string
}

func NewConfigParseError(path, reason string) error {
	return &ConfigParseError{Path: path, Reason: reason}
}

func (e *ConfigParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid deploy config: reason = %s", e.Reason)
	}
	return fmt.Sprintf("failed to parse config %s: reason = %s", e.Path, e.Reason)
}

type TemplateRenderError struct {
	Line   int
	Column int
	Reason string
}

func NewTemplateRenderError(line, column int, reason string) error {
	return &TemplateRenderError{Line: line, Column: column, Reason: reason}
}

func (e *TemplateRenderError) Error() string {
	return fmt.Sprintf("failed to render template at line %d col %d: reason = %s", e.Line, e.Column, e.Reason)
}

type MissingCredentialReferenceError struct {
	Key       string
	Reference string
}

func NewMissingCredentialReferenceError(key, reference string) error {
	return &MissingCredentialReferenceError{Key: key, Reference: reference}
}

func (e *MissingCredentialReferenceError) Error() string {
	return fmt.Sprintf("environment variable %s requires %s but it is not configured", e.Key, e.Reference)
}

// Secret backend errors
type SecretBackendError struct {
	Backend string
	Target  string
	Reason  string
	Err     error
}

func NewSecretBackendError(backend, target string, err error) error {
	return &SecretBackendError{Backend: backend, Target: target, Reason: err.Error(), Err: err}
}

func (e *SecretBackendError) Error() string {
	return fmt.Sprintf("%s lookup of %s failed: reason = %s", e.Backend, e.Target, e.Reason)
}

func (e *SecretBackendError) Unwrap() error {
	return e.Err
}

type OutputWriteError struct {
	Path   string
	Reason string
}

func NewOutputWriteError(path, reason string) error {
	return &OutputWriteError{Path: path, Reason: reason}
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to write output %s: reason = %s", e.Path, e.Reason)
}

type AbortedError struct {
	Stage string
	Err   error
}

func NewAbortedError(stage string, err error) error {
	return &AbortedError{Stage: stage, Err: err}
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("aborted during %s: %v", e.Stage, e.Err)
}

func (e *AbortedError) Unwrap() error {
	return e.Err
}
