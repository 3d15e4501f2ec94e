// internal/config/types.go
package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration for text unmarshaling (YAML, env vars).
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if parsed < 0 {
		return fmt.Errorf("duration cannot be negative: %s", text)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration().String()), nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration().String())
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// ParameterType is the value type of a declared option.
type ParameterType int

const (
	// ParameterString is a single string value.
	ParameterString ParameterType = iota
	// ParameterBoolean is a true/false switch.
	ParameterBoolean
	// ParameterArray is a list of strings. Comma separated input is split.
	ParameterArray
)

// String returns the type name used in help output.
func (t ParameterType) String() string {
	switch t {
	case ParameterString:
		return "string"
	case ParameterBoolean:
		return "boolean"
	case ParameterArray:
		return "array"
	default:
		return fmt.Sprintf("ParameterType(%d)", int(t))
	}
}

// Declaration describes one named option: its type, help text and default.
type Declaration struct {
	Name         string
	Help         string
	Type         ParameterType
	DefaultValue any
}
