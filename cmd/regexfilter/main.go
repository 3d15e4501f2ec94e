// Package main implements the regexfilter CLI. It replays a reflection tree
// document through the regex filter and writes the filtered tree.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/filter"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "regexfilter",
		Short: "Hide or remove documentation reflections by name",
		Long: `regexfilter matches reflection names in a documentation tree against a
regular expression and either marks matches as private or removes them.

Options resolve in increasing precedence from defaults, the --config file,
REGEXFILTER_* environment variables and command line flags.`,
		Version:      version,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "config file (YAML or JSON)")
	pf.StringVar(&g.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&g.logFormat, "log-format", "", "log format (console, json)")
	addOptionFlags(pf, filter.Declarations())

	cmd.AddCommand(newApplyCmd(g))
	cmd.AddCommand(newOptionsCmd(g))
	cmd.AddCommand(newVersionCmd())
	return cmd
}
