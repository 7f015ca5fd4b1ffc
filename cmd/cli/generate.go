package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh/spinner"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/sw385/Semester-Schedule/internal/csvio"
	"github.com/sw385/Semester-Schedule/internal/exporter"
	"github.com/sw385/Semester-Schedule/internal/logger"
	"github.com/sw385/Semester-Schedule/internal/scheduler"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Search the catalog and write the best and worst schedules",
		Long: `Enumerate every combination of courses inside the credit window, drop
conflicting, Saturday and sleepless schedules, rank the rest and write the
preferred and undesirable picks in each requested format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			courses, err := csvio.LoadCatalog(cfg)
			if err != nil {
				return err
			}
			gen := scheduler.NewGenerator(courses, cfg)

			spin := runSpinner
			if quiet || !isTerminal(os.Stderr) {
				spin = runPlain
			}
			result, err := search(gen, spin)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Ranked) == 0 {
				fmt.Fprintf(out, "No schedule fits %v to %v credits without conflicts (%d candidates, %d conflicting, %d on Saturday, %d sleepless).\n",
					cfg.MinCredits, cfg.MaxCredits, result.Stats.Candidates, result.Stats.Conflicting, result.Stats.Saturday, result.Stats.Sleepless)
				return nil
			}

			if err := scheduler.Emit(result, renderers(cfg, out)...); err != nil {
				return err
			}

			fmt.Fprintf(out, "Ranked %d of %d candidate schedules by %s.\n", result.Stats.Ranked, result.Stats.Candidates, cfg.Strategy)
			if writesFiles(cfg.Formats) {
				fmt.Fprintf(out, "Wrote %d preferred and %d undesirable schedules to %s\n", len(result.Preferred), len(result.Undesirable), cfg.OutputDir)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64("min", 16, "minimum credits per schedule")
	f.Float64("max", 16, "maximum credits per schedule")
	f.IntP("count", "n", 10, "distinct schedules to pick from each end of the ranking")
	f.String("strategy", string(scheduler.StrategyCompactness), "ranking strategy: "+strings.Join(strategyNames(), ", "))
	f.Bool("no-mornings", false, "drop schedules with classes before 9 AM")
	f.Bool("no-nights", false, "drop schedules with classes after 5 PM")
	f.StringP("out", "o", "", "output directory (default \"_output schedules <timestamp>\")")
	f.StringSlice("format", []string{"csv"}, "output formats: csv, ics, text")
	f.BoolVarP(&quiet, "quiet", "q", false, "do not show the progress spinner")
	return cmd
}

func renderers(cfg *scheduler.Configuration, out io.Writer) []scheduler.Renderer {
	var list []scheduler.Renderer
	for _, format := range cfg.Formats {
		switch format {
		case "csv":
			list = append(list, csvio.CSVRenderer{Dir: cfg.OutputDir})
		case "ics":
			list = append(list, exporter.ICSRenderer{Dir: cfg.OutputDir, TermStart: cfg.TermStart, Weeks: cfg.TermWeeks})
		case "text":
			list = append(list, csvio.TextRenderer{Out: out})
		default:
			logger.Warn().Str("format", format).Msg("Unknown output format")
		}
	}
	return list
}

func writesFiles(formats []string) bool {
	return lo.Some(formats, []string{"csv", "ics"})
}

func strategyNames() []string {
	return lo.Map(scheduler.Strategies(), func(s scheduler.Strategy, _ int) string {
		return string(s)
	})
}

// search runs the pipeline inside spin, which may show progress while the
// action runs.
func search(gen *scheduler.Generator, spin func(title string, action func()) error) (*scheduler.Result, error) {
	var result *scheduler.Result
	title := fmt.Sprintf("Searching %d required and %d optional courses...", len(gen.Required()), len(gen.Optional()))
	if err := spin(title, func() { result = gen.Generate() }); err != nil {
		return nil, fmt.Errorf("failed to run schedule search: %w", err)
	}
	if result == nil {
		return nil, errors.New("schedule search did not run")
	}
	return result, nil
}

func runSpinner(title string, action func()) error {
	return spinner.New().Title(title).Action(action).Run()
}

func runPlain(_ string, action func()) error {
	action()
	return nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
