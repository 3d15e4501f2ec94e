package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB

	// EnvPrefix is the prefix of environment overrides.
	EnvPrefix = "REGEXFILTER_"
)

// LoadFile merges a YAML (or JSON) config file over the current values.
//
// Top-level keys named after declared options set those options; other
// top-level keys are sections (logging, telemetry) read with Unmarshal.
//
// Example file:
//
//	removeRegex: "^_"
//	removeRegexExclude: true
//	logging:
//	  level: debug
func (o *Options) LoadFile(path string) error {
	// Open once and validate through the descriptor to avoid a TOCTOU race
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(content) > maxConfigFileSize {
		return fmt.Errorf("%w: more than %d bytes", ErrConfigTooLarge, maxConfigFileSize)
	}

	if err := o.k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return nil
}

// LoadEnv merges environment variables with the given prefix.
//
// Declared options match their name with underscores and case ignored:
//
//	REGEXFILTER_REMOVE_REGEX            -> removeRegex
//	REGEXFILTER_REMOVE_REGEX_EXCLUDE    -> removeRegexExclude
//
// Anything else splits on the first underscore into section.field:
//
//	REGEXFILTER_LOGGING_LEVEL           -> logging.level
//	REGEXFILTER_TELEMETRY_SERVICE_NAME  -> telemetry.service_name
func (o *Options) LoadEnv(prefix string) error {
	byCompact := make(map[string]Declaration, len(o.decls))
	for _, d := range o.decls {
		byCompact[strings.ToLower(d.Name)] = d
	}

	provider := env.ProviderWithValue(prefix, ".", func(key, value string) (string, interface{}) {
		lower := strings.ToLower(strings.TrimPrefix(key, prefix))
		if lower == "" {
			return "", nil
		}

		if d, ok := byCompact[strings.ReplaceAll(lower, "_", "")]; ok {
			if d.Type == ParameterArray {
				return d.Name, splitList(value)
			}
			return d.Name, value
		}

		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower, value
		}
		return parts[0] + "." + parts[1], value
	})

	if err := o.k.Load(provider, nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}
