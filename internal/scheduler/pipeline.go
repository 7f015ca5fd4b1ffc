package scheduler

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/sw385/Semester-Schedule/internal/logger"
	"github.com/sw385/Semester-Schedule/pkg/model"
)

// Renderer receives each selected schedule together with its label.
type Renderer interface {
	Render(label string, schedule *model.Schedule) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(label string, schedule *model.Schedule) error

func (f RendererFunc) Render(label string, schedule *model.Schedule) error {
	return f(label, schedule)
}

// Stats counts what happened to the candidates at every stage.
type Stats struct {
	Combinations         int `json:"combinations"`
	FeasibleCombinations int `json:"feasibleCombinations"`
	Candidates           int `json:"candidates"`
	Conflicting          int `json:"conflicting"`
	Saturday             int `json:"saturday"`
	Sleepless            int `json:"sleepless"`
	Filtered             int `json:"filtered"`
	NoMornings           int `json:"noMornings"`
	NoNights             int `json:"noNights"`
	Ranked               int `json:"ranked"`
}

// Selection is a ranked schedule picked for output.
type Selection struct {
	Label    string
	Index    int
	Schedule *model.Schedule
}

type Result struct {
	Ranked      []*model.Schedule
	Preferred   []Selection
	Undesirable []Selection
	Stats       Stats
}

// Generate runs the whole pipeline: enumerate, drop conflicts, compute metrics,
// drop Saturday and sleepless schedules, rank and pick distinct schedules from
// both ends of the ranking.
func (g *Generator) Generate() *Result {
	var stats Stats
	survivors := []*model.Schedule{}

	for schedule := range g.candidates(&stats) {
		if schedule.ContainsConflict() {
			stats.Conflicting++
			continue
		}

		m := schedule.Calculate()
		if m.SaturdayClass {
			stats.Saturday++
			continue
		}

		// Alternative views, only binding when enabled.
		if m.EarlyMornings == 0 {
			stats.NoMornings++
		}
		if m.LateNights == 0 {
			stats.NoNights++
		}
		if (g.cfg.NoMornings && m.EarlyMornings > 0) || (g.cfg.NoNights && m.LateNights > 0) {
			stats.Filtered++
			continue
		}

		if m.Sleepless > 0 {
			stats.Sleepless++
			continue
		}
		survivors = append(survivors, schedule)
	}

	Rank(survivors, g.cfg.Strategy)
	stats.Ranked = len(survivors)

	preferred, undesirable := SelectDistinct(survivors, g.cfg.SelectionCount)

	logger.Info().
		Int("combinations", stats.Combinations).
		Int("feasible", stats.FeasibleCombinations).
		Int("candidates", stats.Candidates).
		Int("conflicting", stats.Conflicting).
		Int("saturday", stats.Saturday).
		Int("sleepless", stats.Sleepless).
		Int("noMornings", stats.NoMornings).
		Int("noNights", stats.NoNights).
		Int("ranked", stats.Ranked).
		Str("strategy", string(g.cfg.Strategy)).
		Msg("Schedule search finished")

	return &Result{
		Ranked:      survivors,
		Preferred:   preferred,
		Undesirable: undesirable,
		Stats:       stats,
	}
}

// SelectDistinct walks the ranking from the front and from the back, skipping
// schedules equivalent to one already picked, until count schedules are found
// on each side. Preferred labels carry the ranking index; undesirable labels
// carry the offset from the end.
func SelectDistinct(ranked []*model.Schedule, count int) (preferred []Selection, undesirable []Selection) {
	preferred = pickDistinct(ranked, count, func(x int) (int, string) {
		return x, fmt.Sprintf("preferred %02d", x)
	})
	undesirable = pickDistinct(ranked, count, func(x int) (int, string) {
		return len(ranked) - x - 1, fmt.Sprintf("undesirable %02d", x+1)
	})
	return preferred, undesirable
}

func pickDistinct(ranked []*model.Schedule, count int, at func(x int) (int, string)) []Selection {
	picked := []Selection{}
	for x := 0; len(picked) < count && x < len(ranked); x++ {
		index, label := at(x)
		schedule := ranked[index]
		if lo.SomeBy(picked, func(s Selection) bool { return schedule.IsEquivalentTo(s.Schedule) }) {
			continue
		}
		picked = append(picked, Selection{Label: label, Index: index, Schedule: schedule})
	}
	return picked
}

// Emit hands every selection to each renderer, preferred first.
func Emit(result *Result, renderers ...Renderer) error {
	selections := append(append([]Selection{}, result.Preferred...), result.Undesirable...)
	for _, selection := range selections {
		for _, renderer := range renderers {
			if err := renderer.Render(selection.Label, selection.Schedule); err != nil {
				return fmt.Errorf("failed to render %s: %w", selection.Label, err)
			}
		}
		if ok, report := Validate(selection.Schedule); !ok {
			logger.Warn().Str("label", selection.Label).Msg(report)
		} else {
			logger.Debug().Str("label", selection.Label).Float64("compactness", selection.Schedule.CompactnessRatio()).Msg("Rendered schedule")
		}
	}
	return nil
}
