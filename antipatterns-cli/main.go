// Command antipatterns-cli lists the catalog and runs demos locally, without
// a broker or database.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jeffsasaki/antipatterns/catalog"
	"github.com/jeffsasaki/antipatterns/config"
	"github.com/jeffsasaki/antipatterns/logging"
	"github.com/jeffsasaki/antipatterns/models"
	"github.com/jeffsasaki/antipatterns/runner"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:          "antipatterns-cli",
		Short:        "Browse and run the anti-pattern catalog",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default $"+config.ConfigPathEnv+")")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newRunCmd(&configPath),
	)
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every anti-pattern",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tNAME\tSUMMARY")
			for _, e := range cat.List() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Slug, e.Name, e.Summary)
			}
			return tw.Flush()
		},
	}
}

func newShowCmd() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Describe one anti-pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			e, err := cat.Lookup(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asYAML {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(e); err != nil {
					return err
				}
				return enc.Close()
			}
			writeEntry(out, e)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the entry as YAML")
	return cmd
}

func writeEntry(w io.Writer, e catalog.Entry) {
	fmt.Fprintf(w, "%s (%s)\n\n%s\n", e.Name, e.Slug, e.Summary)
	fmt.Fprintln(w, "\nSymptoms:")
	for _, s := range e.Symptoms {
		fmt.Fprintf(w, "  - %s\n", s)
	}
	fmt.Fprintln(w, "\nRemedies:")
	for _, r := range e.Remedies {
		fmt.Fprintf(w, "  - %s\n", r)
	}
}

func newRunCmd(configPath *string) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "run [slug]",
		Short: "Run a demo locally",
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			slugs := args
			if all {
				slugs = slugs[:0]
				for _, e := range cat.List() {
					slugs = append(slugs, e.Slug)
				}
			}
			r := runner.New(cat, nil, "", settings.Runner, logging.Nop())
			return runDemos(cmd.Context(), cmd.OutOrStdout(), r, slugs)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "run every demo")
	return cmd
}

func runDemos(ctx context.Context, w io.Writer, r *runner.Runner, slugs []string) error {
	var failed []string
	for i, slug := range slugs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s\n", slug)
		res := r.Execute(ctx, models.RunRequest{RunID: slug, Slug: slug})
		io.WriteString(w, res.Output)
		if res.Status == models.RunFailed {
			fmt.Fprintf(w, "error: %s\n", res.Error)
			failed = append(failed, slug)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed: %s", strings.Join(failed, ", "))
	}
	return nil
}
