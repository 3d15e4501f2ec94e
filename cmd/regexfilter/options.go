package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/klinki/typedoc-plugin-regex-filter/internal/config"
)

func newOptionsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List filter options with their resolved values",
		Long: `List every filter option, its type, the value it resolves to after the
config file, environment and flags are applied, and its help text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := newOptions(g, cmd.Flags())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tVALUE\tHELP")
			for _, d := range opts.Declarations() {
				value, err := formatOption(opts, d)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Name, d.Type, value, d.Help)
			}
			return tw.Flush()
		},
	}
}

func formatOption(opts *config.Options, d config.Declaration) (string, error) {
	switch d.Type {
	case config.ParameterBoolean:
		b, err := opts.Bool(d.Name)
		return strconv.FormatBool(b), err
	case config.ParameterArray:
		v, err := opts.Strings(d.Name)
		return strings.Join(v, ","), err
	default:
		return opts.String(d.Name)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "regexfilter %s\n", version)
		},
	}
}
