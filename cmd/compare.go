package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"lhcompare/compare"
	"lhcompare/config"
	"lhcompare/format"
	"lhcompare/lhci"
	"lhcompare/loader"
	"lhcompare/schema"
	"lhcompare/tui"
)

// ErrRegression is returned with --fail-on-regression when any metric regressed.
var ErrRegression = errors.New("lighthouse metrics regressed against the baseline")

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a run set against its baseline",
	Long: `Compare the Lighthouse reports of a build against those of a baseline build.

Examples:
  # Two run sets on disk (JSON files or lhci collect directories)
  lhcompare compare --current .lighthouseci --baseline baseline.json

  # Runs of a build and its ancestor on a Lighthouse CI server
  lhcompare compare --server-url https://lhci.example.com --project ID --build ID

  # Fail a CI job when anything regressed
  lhcompare compare --current a.json --baseline b.json --fail-on-regression

With no run sets given on a terminal, an interactive picker opens.`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, _ []string) error {
	f, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	var links map[string]string
	if cfg.Links != "" {
		if links, err = loader.LoadLinks(cfg.Links); err != nil {
			return err
		}
	}

	engine := compare.New(compare.WithLogger(log))

	src, err := cfg.Source()
	if errors.Is(err, config.ErrNoSource) && isTerminal() {
		_, err := tea.NewProgram(tui.NewCompareFlowModel(engine, links)).Run()
		return err
	}
	if err != nil {
		return err
	}

	current, baseline, err := loadRunSets(commandContext(cmd), src)
	if err != nil {
		return err
	}
	log.Debug().Int("current", len(current)).Int("baseline", len(baseline)).Msg("loaded run sets")

	results, err := engine.Compare(current, baseline)
	if err != nil {
		return fmt.Errorf("failed to compare reports: %w", err)
	}
	log.Info().Int("pages", len(results)).Msg("compared reports")

	if cfg.TUI {
		if _, err := tea.NewProgram(tui.NewResultsModel(results, links)).Run(); err != nil {
			return err
		}
	} else if err := writeReport(cmd, f, results, links); err != nil {
		return err
	}

	if cfg.FailOnRegression && format.HasRegression(results) {
		return ErrRegression
	}
	return nil
}

func loadRunSets(ctx context.Context, src config.Source) (current, baseline []schema.Run, err error) {
	if src == config.SourceServer {
		var opts []lhci.Option
		if cfg.Username != "" || cfg.Password != "" {
			opts = append(opts, lhci.WithBasicAuth(cfg.Username, cfg.Password))
		}
		if cfg.Representative {
			opts = append(opts, lhci.WithRepresentativeRuns())
		}
		log.Debug().Str("server", cfg.ServerURL).Str("project", cfg.Project).Str("build", cfg.Build).Msg("fetching runs")
		return lhci.NewClient(cfg.ServerURL, opts...).BuildRuns(ctx, cfg.Project, cfg.Build)
	}

	if current, err = loader.LoadRuns(cfg.Current); err != nil {
		return nil, nil, err
	}
	if baseline, err = loader.LoadRuns(cfg.Baseline); err != nil {
		return nil, nil, err
	}
	return current, baseline, nil
}

// writeReport writes the report to --output or stdout. On a GitHub Actions
// runner the Markdown report is also appended to the job summary.
func writeReport(cmd *cobra.Command, f format.Format, results compare.Results, links map[string]string) error {
	out, err := format.Render(f, results, links)
	if err != nil {
		return fmt.Errorf("failed to render %s report: %w", f, err)
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, out, 0o644); err != nil {
			return fmt.Errorf("failed to write report to %s: %w", cfg.Output, err)
		}
		log.Info().Str("output", cfg.Output).Msg("report written")
	} else if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return err
	}

	summary := cfg.SummaryPath()
	if summary == "" {
		return nil
	}
	if f != format.Markdown {
		if out, err = format.Render(format.Markdown, results, links); err != nil {
			return fmt.Errorf("failed to render markdown report: %w", err)
		}
	}
	return appendFile(summary, out)
}

func appendFile(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// commandContext returns the command's context, which is nil when RunE is
// called directly from the menu.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

var isTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func init() {
	flags := compareCmd.Flags()
	flags.String("current", "", "Current run set: JSON file or lhci collect directory")
	flags.String("baseline", "", "Baseline run set: JSON file or lhci collect directory")
	flags.String("links", "", "JSON file mapping page URLs to report links (lhci upload links.json)")
	flags.StringP("format", "f", string(format.Markdown), "Output format: markdown, csv, json or yaml")
	flags.StringP("output", "o", "", "Write the report to this file instead of stdout")
	flags.Bool("fail-on-regression", false, "Exit non-zero when any metric regressed")
	flags.Bool("tui", false, "Show the results in an interactive table")

	flags.String("server-url", "", "Lighthouse CI server URL")
	flags.String("project", "", "Lighthouse CI project ID")
	flags.String("build", "", "Lighthouse CI build ID; its ancestor is the baseline")
	flags.String("username", "", "Lighthouse CI basic auth username")
	flags.String("password", "", "Lighthouse CI basic auth password")
	flags.Bool("representative", false, "Only fetch representative runs, one per URL")

	rootCmd.AddCommand(compareCmd)
}
