// Package config provides the option store for regexfilter.
//
// Options are declared by their consumers (name, type, help, default) and
// resolved from, in increasing precedence: declared defaults, a YAML/JSON
// config file, REGEXFILTER_* environment variables, and explicit Set calls
// (CLI flags).
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/knadh/koanf/v2"
)

var (
	// ErrUnknownOption indicates a lookup of an option that was never declared.
	ErrUnknownOption = errors.New("unknown option")
	// ErrDuplicateOption indicates a second declaration with the same name.
	ErrDuplicateOption = errors.New("option already declared")
	// ErrInvalidDeclaration indicates a malformed declaration.
	ErrInvalidDeclaration = errors.New("invalid option declaration")
	// ErrTypeMismatch indicates a value that cannot be read as the declared type.
	ErrTypeMismatch = errors.New("option type mismatch")
	// ErrConfigTooLarge indicates a config file above the size limit.
	ErrConfigTooLarge = errors.New("config file too large")
)

// Options holds option declarations and their resolved values.
type Options struct {
	k     *koanf.Koanf
	decls map[string]Declaration
	order []string
}

// NewOptions creates an empty option store.
func NewOptions() *Options {
	return &Options{
		k:     koanf.New("."),
		decls: make(map[string]Declaration),
	}
}

// AddDeclaration declares an option. The default value is applied unless a
// value for the name was already loaded.
func (o *Options) AddDeclaration(d Declaration) error {
	if d.Name == "" || strings.ContainsAny(d.Name, ". ") {
		return fmt.Errorf("%w: name %q", ErrInvalidDeclaration, d.Name)
	}
	if _, ok := o.decls[d.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateOption, d.Name)
	}

	def, err := coerce(d.Type, d.DefaultValue)
	if err != nil {
		return fmt.Errorf("%w: default for %s: %v", ErrInvalidDeclaration, d.Name, err)
	}
	d.DefaultValue = def

	o.decls[d.Name] = d
	o.order = append(o.order, d.Name)

	if !o.k.Exists(d.Name) {
		if err := o.k.Set(d.Name, def); err != nil {
			return fmt.Errorf("failed to set default for %s: %w", d.Name, err)
		}
	}
	return nil
}

// Declarations returns declarations in registration order.
func (o *Options) Declarations() []Declaration {
	out := make([]Declaration, 0, len(o.order))
	for _, name := range o.order {
		out = append(out, o.decls[name])
	}
	return out
}

// Declaration returns one declaration by name.
func (o *Options) Declaration(name string) (Declaration, bool) {
	d, ok := o.decls[name]
	return d, ok
}

// Set overrides the value of a declared option.
func (o *Options) Set(name string, value any) error {
	d, ok := o.decls[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	v, err := coerce(d.Type, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTypeMismatch, name, err)
	}
	return o.k.Set(name, v)
}

// String returns the value of a string option.
func (o *Options) String(name string) (string, error) {
	v, err := o.value(name, ParameterString)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Bool returns the value of a boolean option.
func (o *Options) Bool(name string) (bool, error) {
	v, err := o.value(name, ParameterBoolean)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// Strings returns the value of an array option.
func (o *Options) Strings(name string) ([]string, error) {
	v, err := o.value(name, ParameterArray)
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// Validate checks that every declared option holds a value of its type.
func (o *Options) Validate() error {
	var errs []error
	for _, name := range o.order {
		if _, err := o.value(name, o.decls[name].Type); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Unmarshal decodes the config section at path into out using koanf tags.
func (o *Options) Unmarshal(path string, out any) error {
	if err := o.k.Unmarshal(path, out); err != nil {
		return fmt.Errorf("failed to unmarshal %q: %w", path, err)
	}
	return nil
}

// Exists reports whether any value (declared or not) is present at path.
func (o *Options) Exists(path string) bool {
	return o.k.Exists(path)
}

func (o *Options) value(name string, want ParameterType) (any, error) {
	d, ok := o.decls[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	if d.Type != want {
		return nil, fmt.Errorf("%w: %s is %s, not %s", ErrTypeMismatch, name, d.Type, want)
	}
	v, err := coerce(d.Type, o.k.Get(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTypeMismatch, name, err)
	}
	return v, nil
}

// coerce converts raw values from files, env and flags to the declared type.
func coerce(t ParameterType, raw any) (any, error) {
	switch t {
	case ParameterString:
		switch v := raw.(type) {
		case nil:
			return "", nil
		case string:
			return v, nil
		case fmt.Stringer:
			return v.String(), nil
		case int, int64, float64, bool:
			return fmt.Sprint(v), nil
		}
	case ParameterBoolean:
		switch v := raw.(type) {
		case nil:
			return false, nil
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("invalid boolean %q", v)
			}
			return b, nil
		}
	case ParameterArray:
		switch v := raw.(type) {
		case nil:
			return []string{}, nil
		case []string:
			out := make([]string, len(v))
			copy(out, v)
			return out, nil
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("array item %v is %T, not string", item, item)
				}
				out = append(out, s)
			}
			return out, nil
		case string:
			return splitList(v), nil
		}
	default:
		return nil, fmt.Errorf("unsupported parameter type %s", t)
	}
	return nil, fmt.Errorf("cannot use %T as %s", raw, t)
}

// splitList splits comma separated input, dropping empty items.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
