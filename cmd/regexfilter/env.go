package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/config"
	"github.com/klinki/typedoc-plugin-regex-filter/internal/filter"
	"github.com/klinki/typedoc-plugin-regex-filter/internal/logging"
	"github.com/klinki/typedoc-plugin-regex-filter/internal/telemetry"
)

// addOptionFlags exposes every declared option as a flag of the same name.
func addOptionFlags(fs *pflag.FlagSet, decls []config.Declaration) {
	for _, d := range decls {
		switch d.Type {
		case config.ParameterString:
			def, _ := d.DefaultValue.(string)
			fs.String(d.Name, def, d.Help)
		case config.ParameterBoolean:
			def, _ := d.DefaultValue.(bool)
			fs.Bool(d.Name, def, d.Help)
		case config.ParameterArray:
			def, _ := d.DefaultValue.([]string)
			fs.StringSlice(d.Name, def, d.Help)
		}
	}
}

// applyOptionFlags copies explicitly set option flags into opts.
func applyOptionFlags(fs *pflag.FlagSet, opts *config.Options) error {
	for _, d := range opts.Declarations() {
		if !fs.Changed(d.Name) {
			continue
		}

		var value any
		var err error
		switch d.Type {
		case config.ParameterString:
			value, err = fs.GetString(d.Name)
		case config.ParameterBoolean:
			value, err = fs.GetBool(d.Name)
		case config.ParameterArray:
			value, err = fs.GetStringSlice(d.Name)
		}
		if err != nil {
			return fmt.Errorf("read flag --%s: %w", d.Name, err)
		}
		if err := opts.Set(d.Name, value); err != nil {
			return err
		}
	}
	return nil
}

// loadOptions layers the config file, environment and flags over opts.
// Calling it again re-reads the file and re-applies env and flags on top.
func loadOptions(g *globalFlags, fs *pflag.FlagSet, opts *config.Options) error {
	if g.configPath != "" {
		if err := opts.LoadFile(g.configPath); err != nil {
			return err
		}
	}
	if err := opts.LoadEnv(config.EnvPrefix); err != nil {
		return err
	}
	if err := applyOptionFlags(fs, opts); err != nil {
		return err
	}
	return opts.Validate()
}

// newOptions declares the filter options and loads their values.
func newOptions(g *globalFlags, fs *pflag.FlagSet) (*config.Options, error) {
	opts := config.NewOptions()
	if err := filter.DeclareOptions(opts); err != nil {
		return nil, err
	}
	if err := loadOptions(g, fs, opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// env holds the process-wide collaborators of a command.
type env struct {
	opts   *config.Options
	logger *logging.Logger
	tel    *telemetry.Telemetry
}

func newEnv(ctx context.Context, g *globalFlags, fs *pflag.FlagSet) (*env, error) {
	opts, err := newOptions(g, fs)
	if err != nil {
		return nil, err
	}

	logCfg := logging.NewDefaultConfig()
	if err := opts.Unmarshal("logging", logCfg); err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		level, err := logging.LevelFromString(g.logLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid --log-level: %w", err)
		}
		logCfg.Level = level
	}
	if g.logFormat != "" {
		logCfg.Format = g.logFormat
	}

	telCfg := telemetry.NewDefaultConfig()
	telCfg.ServiceVersion = version
	if err := opts.Unmarshal("telemetry", telCfg); err != nil {
		return nil, err
	}
	tel, err := telemetry.New(ctx, telCfg)
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(logCfg, tel.LoggerProvider())
	if err != nil {
		_ = tel.Shutdown(ctx)
		return nil, err
	}
	if h := tel.Health(); h.Degraded {
		logger.Warn(ctx, "telemetry degraded", zap.String("reason", h.Reason))
	}

	return &env{opts: opts, logger: logger, tel: tel}, nil
}

// Close flushes logs and telemetry.
func (e *env) Close(ctx context.Context) {
	if err := e.tel.Shutdown(ctx); err != nil {
		e.logger.Warn(ctx, "telemetry shutdown failed", zap.Error(err))
	}
	_ = e.logger.Sync()
}
