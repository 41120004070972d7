package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Simplici0/vitrea/internal/document"
	"github.com/Simplici0/vitrea/internal/pricing"
	"github.com/Simplici0/vitrea/internal/project"
	"github.com/Simplici0/vitrea/internal/quote"
)

type options struct {
	pricingFile string
	output      string
	strict      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "vitrea",
		Short: "Price and plan window installation projects",
		Long: `vitrea reads a project of rooms and window openings as JSON and prints
its price breakdown or the cutting list and glass schedule of every opening.

Pass - as the file to read the project from stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.pricingFile, "pricing", os.Getenv("PRICING_FILE"), "YAML file overriding the default rates")
	flags.StringVarP(&opts.output, "output", "o", "text", "Output format: text, markdown, csv or json")
	flags.BoolVar(&opts.strict, "strict", false, "Reject style codes with unknown pane tokens")

	root.AddCommand(newEstimateCmd(opts), newPlanCmd(opts))
	return root
}

func newEstimateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate <project.json>",
		Short: "Print the price breakdown of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := buildQuote(cmd, opts, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.output == "json" {
				return writeJSON(w, struct {
					Breakdown any `json:"breakdown"`
					Rounded   any `json:"rounded"`
					Skipped   any `json:"skipped"`
				}{q.Breakdown, q.Rounded, q.Skipped})
			}
			format, err := document.ParseFormat(opts.output)
			if err != nil {
				return err
			}
			if err := document.Tables(w, q, format); err != nil {
				return err
			}
			for _, s := range q.Skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s window %d: %s\n", s.Room, s.Window, s.Reason)
			}
			return nil
		},
	}
}

func newPlanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <project.json>",
		Short: "Print the cutting list and glass schedule of every opening",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := buildQuote(cmd, opts, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.output == "json" {
				return writeJSON(w, struct {
					Openings any `json:"openings"`
					Skipped  any `json:"skipped"`
				}{q.Openings, q.Skipped})
			}
			format, err := document.ParseFormat(opts.output)
			if err != nil {
				return err
			}
			return document.ProductionTables(w, q, format)
		},
	}
}

func buildQuote(cmd *cobra.Command, opts *options, path string) (quote.Quote, error) {
	model, err := pricing.Load(opts.pricingFile)
	if err != nil {
		return quote.Quote{}, err
	}

	p, err := readProject(cmd.InOrStdin(), path)
	if err != nil {
		return quote.Quote{}, err
	}
	if opts.strict {
		if err := quote.CheckStyles(p); err != nil {
			return quote.Quote{}, err
		}
	}
	return quote.NewService(model).Build(p), nil
}

func readProject(stdin io.Reader, path string) (project.Project, error) {
	if path == "-" {
		return project.Decode(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return project.Project{}, fmt.Errorf("open project: %w", err)
	}
	defer f.Close()
	return project.Decode(f)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
