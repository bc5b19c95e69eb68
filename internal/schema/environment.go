package schema

import (
	"encoding/json"
	"fmt"
	"sort"
)

// EnvironmentVariable pairs a key with exactly one value source.
type EnvironmentVariable struct {
	Key   string
	Value EnvironmentValue
}

// EnvironmentValue is one of Literal, FromKMS or FromSecretStore.
type EnvironmentValue interface {
	isEnvironmentValue()
}

// Literal is used verbatim.
type Literal string

// FromKMS holds base64 ciphertext decrypted with the document's gcp_kms key.
type FromKMS struct {
	Ciphertext string `json:"value"`
}

// FromSecretStore names a secret version read from the document's gcp_ssm project.
type FromSecretStore struct {
	Name    string `json:"name"`
	Version uint16 `json:"version"`
}

func (Literal) isEnvironmentValue()         {}
func (FromKMS) isEnvironmentValue()         {}
func (FromSecretStore) isEnvironmentValue() {}

const (
	valueKey           = "value"
	fromKMSKey         = "from_gcp_kms"
	fromSecretStoreKey = "from_gcp_ssm"
)

// SourceName reports the wire name of the variable's value source.
func SourceName(value EnvironmentValue) string {
	switch value.(type) {
	case Literal:
		return valueKey
	case FromKMS:
		return fromKMSKey
	case FromSecretStore:
		return fromSecretStoreKey
	default:
		return "unknown"
	}
}

func (e *EnvironmentVariable) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	rawKey, ok := fields["key"]
	if !ok {
		return fmt.Errorf("environment variable is missing key")
	}
	var key string
	if err := json.Unmarshal(rawKey, &key); err != nil {
		return fmt.Errorf("environment variable key: %w", err)
	}
	delete(fields, "key")

	if len(fields) != 1 {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("environment variable %s must have exactly one of %s, %s or %s, got %v",
			key, valueKey, fromKMSKey, fromSecretStoreKey, names)
	}

	for name, raw := range fields {
		switch name {
		case valueKey:
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("environment variable %s: %w", key, err)
			}
			e.Value = Literal(v)
		case fromKMSKey:
			var v FromKMS
			if err := decodeStrict(raw, &v); err != nil {
				return fmt.Errorf("environment variable %s: %w", key, err)
			}
			e.Value = v
		case fromSecretStoreKey:
			var v FromSecretStore
			if err := decodeStrict(raw, &v); err != nil {
				return fmt.Errorf("environment variable %s: %w", key, err)
			}
			e.Value = v
		default:
			return fmt.Errorf("environment variable %s has unknown value source %q", key, name)
		}
	}

	e.Key = key
	return nil
}

func (e EnvironmentVariable) MarshalJSON() ([]byte, error) {
	out := map[string]any{"key": e.Key}
	switch v := e.Value.(type) {
	case Literal:
		out[valueKey] = string(v)
	case FromKMS:
		out[fromKMSKey] = v
	case FromSecretStore:
		out[fromSecretStoreKey] = v
	default:
		return nil, fmt.Errorf("environment variable %s has no value", e.Key)
	}
	return json.Marshal(out)
}
