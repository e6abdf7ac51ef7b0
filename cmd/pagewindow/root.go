package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/DukeRupert/pagewindow/internal/pagination"
)

// Version information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
)

type options struct {
	current  int
	total    int
	items    int
	perPage  int
	edge     int
	siblings int
	maxTotal int
	format   string
	lang     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pagewindow",
		Short: "Compute the page numbers a pagination control shows",
		Long: `pagewindow prints the page layout of a paginated navigation control:
the edge pages, the pages around the current one, and where truncation
markers belong.`,
		Example: `  pagewindow --current 5 --total 10
  pagewindow --current 3 --items 950 --per-page 25 --format json`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.current, "current", "c", 1, "current page (1-based)")
	f.IntVarP(&opts.total, "total", "t", 0, "total number of pages")
	f.IntVar(&opts.items, "items", 0, "total number of items, used instead of --total")
	f.IntVar(&opts.perPage, "per-page", pagination.DefaultPerPage, "items per page when --items is set")
	f.IntVarP(&opts.edge, "edge", "e", 1, "pages always shown at each end")
	f.IntVarP(&opts.siblings, "siblings", "s", 2, "pages shown on each side of the current page")
	f.IntVar(&opts.maxTotal, "max-total", pagination.DefaultMaxTotalPages, "largest page count accepted")
	f.StringVarP(&opts.format, "format", "f", "text", "output format: text or json")
	f.StringVar(&opts.lang, "lang", "en", "BCP 47 language tag used to format page numbers")
	cmd.MarkFlagsMutuallyExclusive("total", "items")

	cmd.SetVersionTemplate("pagewindow version {{.Version}}\n")
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runWindow(cmd *cobra.Command, opts *options) error {
	if !cmd.Flags().Changed("total") && !cmd.Flags().Changed("items") {
		return fmt.Errorf("one of --total or --items is required")
	}

	total := opts.total
	if cmd.Flags().Changed("items") {
		total = pagination.TotalPagesFor(opts.items, opts.perPage)
	}

	if opts.maxTotal < 1 {
		return fmt.Errorf("--max-total must be at least 1, got %d", opts.maxTotal)
	}
	if total > opts.maxTotal {
		return fmt.Errorf("%d pages exceeds --max-total %d", total, opts.maxTotal)
	}

	window := pagination.Compute(opts.current, total, opts.edge, opts.siblings)

	switch opts.format {
	case "text":
		tag, err := language.Parse(opts.lang)
		if err != nil {
			return fmt.Errorf("invalid --lang %q: %w", opts.lang, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatText(window, tag))
		return nil
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(window)
	default:
		return fmt.Errorf("unknown --format %q (want text or json)", opts.format)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pagewindow %s (built %s)\n", Version, BuildTime)
		},
	}
}
