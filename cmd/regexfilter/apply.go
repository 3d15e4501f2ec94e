package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/filter"
	"github.com/klinki/typedoc-plugin-regex-filter/internal/hooks"
	"github.com/klinki/typedoc-plugin-regex-filter/internal/logging"
	"github.com/klinki/typedoc-plugin-regex-filter/internal/reflection"
)

const instrumentationScope = "regexfilter"

type applyFlags struct {
	format string
	output string
	watch  bool
	strict bool
}

func newApplyCmd(g *globalFlags) *cobra.Command {
	f := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply [tree|-]",
		Short: "Filter a reflection tree document",
		Long: `Filter a reflection tree document (YAML or JSON) and write the result.

Examples:
  # Mark underscore-prefixed names private
  regexfilter apply tree.yaml

  # Remove matches instead, reading stdin and writing JSON
  cat tree.yaml | regexfilter apply --removeRegexExclude --format json -

  # Re-run whenever tree.yaml or the config file changes
  regexfilter apply --config regexfilter.yaml --watch -o out.yaml tree.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, g, f, args)
		},
	}

	cmd.Flags().StringVarP(&f.format, "format", "f", "yaml", "output format (yaml, json)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "re-run when the tree or config file changes")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail when a queued reflection cannot be removed")
	return cmd
}

func runApply(cmd *cobra.Command, g *globalFlags, f *applyFlags, args []string) error {
	ctx := cmd.Context()

	format, err := reflection.ParseFormat(f.format)
	if err != nil {
		return err
	}
	input := "-"
	if len(args) == 1 {
		input = args[0]
	}
	if f.watch {
		if input == "-" {
			return fmt.Errorf("--watch needs a tree file, not stdin")
		}
		if f.output != "" && samePath(f.output, input) {
			return fmt.Errorf("--watch cannot write its output over the watched tree")
		}
	}

	e, err := newEnv(ctx, g, cmd.Flags())
	if err != nil {
		return err
	}
	defer e.Close(context.Background())

	pluginOpts := []filter.Option{
		filter.WithMeter(e.tel.Meter(instrumentationScope)),
		filter.WithTracer(e.tel.Tracer(instrumentationScope)),
	}
	if f.strict {
		pluginOpts = append(pluginOpts, filter.WithStrictRemoval())
	}
	plugin := filter.New(filter.NewResolver(e.opts), e.logger.Named("filter"), pluginOpts...)

	hm := hooks.NewHookManager()
	plugin.Register(hm)

	r := &runner{
		hooks:  hm,
		logger: e.logger,
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
		input:  input,
		output: f.output,
		format: format,
	}

	if !f.watch {
		return r.run(ctx)
	}

	if err := r.run(ctx); err != nil {
		e.logger.Error(ctx, "initial run failed", zap.Error(err))
	}

	paths := []string{input}
	if g.configPath != "" {
		paths = append(paths, g.configPath)
	}
	w, err := newFileWatcher(paths)
	if err != nil {
		return err
	}
	defer w.Close()

	e.logger.Info(ctx, "watching for changes", zap.Strings("paths", paths))
	return w.Run(ctx, e.logger, func() error {
		if err := loadOptions(g, cmd.Flags(), e.opts); err != nil {
			return err
		}
		plugin.Reset()
		return r.run(ctx)
	})
}

// runner performs one read, convert and write cycle.
type runner struct {
	hooks  *hooks.HookManager
	logger *logging.Logger
	in     io.Reader
	out    io.Writer
	input  string
	output string
	format reflection.Format
}

func (r *runner) run(ctx context.Context) error {
	project, err := r.readTree()
	if err != nil {
		return err
	}

	summary, err := r.hooks.Convert(ctx, project)
	if err != nil {
		return fmt.Errorf("convert %s: %w", r.input, err)
	}

	if err := r.writeTree(project); err != nil {
		return err
	}

	r.logger.Info(logging.WithRunID(ctx, summary.RunID), "conversion complete",
		zap.Int("declarations", summary.Declarations),
		zap.Int("remaining", summary.Remaining),
	)
	return nil
}

func (r *runner) readTree() (*reflection.Project, error) {
	if r.input == "-" {
		p, err := reflection.Decode(r.in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return p, nil
	}

	f, err := os.Open(r.input)
	if err != nil {
		return nil, fmt.Errorf("failed to open tree: %w", err)
	}
	defer f.Close()

	p, err := reflection.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.input, err)
	}
	return p, nil
}

func (r *runner) writeTree(p *reflection.Project) error {
	if r.output == "" {
		return reflection.Encode(r.out, p, r.format)
	}

	var buf bytes.Buffer
	if err := reflection.Encode(&buf, p, r.format); err != nil {
		return err
	}
	if err := os.WriteFile(r.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
