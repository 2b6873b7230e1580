// Package cli wires the eventcheck commands. The CLI is a thin shell
// around the eventfile validator: it loads inputs, runs one validation
// per input and renders the resulting ledgers.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/usestring/eventcheck/internal/config"
	"github.com/usestring/eventcheck/internal/fetch"
	"github.com/usestring/eventcheck/internal/loader"
	"github.com/usestring/eventcheck/internal/report"
	"github.com/usestring/eventcheck/pkg/eventfile"
	"github.com/usestring/eventcheck/pkg/schemagen"
)

// ErrValidation reports that at least one input failed validation. The
// findings themselves have already been rendered.
var ErrValidation = errors.New("validation failed")

// NewRootCmd builds the eventcheck command tree.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "eventcheck",
		Short:         "Structural validator for Phoenix-style event files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCmd(cfg), newSchemaCmd())
	return root
}

type checkOptions struct {
	format     string
	jqExpr     string
	showValues bool
	strict     bool
	jobs       int
}

func newCheckCmd(cfg *config.Config) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check <file|url>...",
		Short: "Validate event files and report every deviation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, cfg, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text or json")
	cmd.Flags().StringVar(&opts.jqExpr, "jq", "", "jq expression applied to the JSON report")
	cmd.Flags().BoolVar(&opts.showValues, "show-values", false, "attach a snippet of each offending value")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "treat warnings as failures for the exit code")
	cmd.Flags().IntVar(&opts.jobs, "jobs", 4, "number of inputs validated concurrently")

	return cmd
}

func runCheck(cmd *cobra.Command, cfg *config.Config, opts *checkOptions, args []string) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q, want text or json", opts.format)
	}
	if opts.jqExpr != "" && opts.format != "json" {
		return errors.New("--jq requires --format json")
	}

	client, err := fetch.New(
		fetch.WithTimeout(cfg.HTTPTimeout),
		fetch.WithCacheSize(cfg.CacheMaxItems),
	)
	if err != nil {
		return err
	}

	// Each input gets its own validation run and its own ledger, so
	// runs can proceed concurrently without sharing state.
	results := make([]*report.Report, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	if opts.jobs > 0 {
		g.SetLimit(opts.jobs)
	}
	for i, arg := range args {
		i, arg := i, arg
		g.Go(func() error {
			doc, err := loadInput(ctx, client, arg)
			if err != nil {
				return err
			}
			ropts := []report.Option{}
			if opts.showValues {
				ropts = append(ropts, report.WithValues(doc))
			}
			results[i] = report.New(arg, eventfile.Validate(doc), ropts...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		if err := report.RenderJSON(out, results, opts.jqExpr); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			r.Text(out)
		}
	}

	for _, r := range results {
		if !r.Valid || (opts.strict && r.Warnings > 0) {
			return ErrValidation
		}
	}
	return nil
}

func loadInput(ctx context.Context, client *fetch.Client, arg string) (any, error) {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return client.Fetch(ctx, arg)
	}
	return loader.Load(arg)
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the event file format as a JSON Schema document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(schemagen.Build())
		},
	}
}
