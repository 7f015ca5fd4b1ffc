package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/sw385/Semester-Schedule/internal/csvio"
	"github.com/sw385/Semester-Schedule/internal/scheduler"
	"github.com/sw385/Semester-Schedule/pkg/model"
)

func newValidateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a catalog for grouping and format errors",
		Long: `Build the catalog without searching it. Reports non contiguous course rows,
unparsable days and times, and a summary of the courses found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			courses, err := csvio.LoadCatalog(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("COURSE", "NAME", "REQUIRED", "CREDITS", "GROUPS", "SECTIONS")
			for _, c := range courses {
				sections := lo.SumBy(c.Groups, func(g *model.CorequisiteGroup) int { return len(g.Patterns) })
				t.Row(c.Code(), c.Groups[0].CourseName, fmt.Sprint(c.Required), fmt.Sprint(c.TotalCredits),
					fmt.Sprint(len(c.Groups)), fmt.Sprint(sections))
			}
			fmt.Fprintln(out, t.Render())

			gen := scheduler.NewGenerator(courses, cfg)
			combinations, candidates := 0, 0
			for combination := range gen.Combinations() {
				combinations++
				candidates += lo.Reduce(combination.Groups, func(n int, g *model.CorequisiteGroup, _ int) int {
					return n * len(g.Patterns)
				}, 1)
			}

			fmt.Fprintf(out, "\n%d courses (%d required, %v required credits)\n",
				len(courses), len(gen.Required()), csvio.RequiredCredits(courses))
			fmt.Fprintf(out, "%d combinations fit %v to %v credits, %d candidate schedules to check\n",
				combinations, cfg.MinCredits, cfg.MaxCredits, candidates)
			return nil
		},
	}

	cmd.Flags().Float64("min", 16, "minimum credits per schedule")
	cmd.Flags().Float64("max", 16, "maximum credits per schedule")
	return cmd
}
