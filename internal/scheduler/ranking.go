package scheduler

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
	"github.com/sw385/Semester-Schedule/pkg/model"
)

// Strategy selects the total order used to rank surviving schedules.
type Strategy string

const (
	// StrategyCompactness prefers schedules whose class time fills most of the
	// time spent on campus.
	StrategyCompactness Strategy = "compactness"
	// StrategyWeighted scales compactness by the midday weight, pulling classes
	// towards 1 PM at the cost of more breaks.
	StrategyWeighted Strategy = "weighted"
	// StrategyTotalTime prefers the least time on campus, which tends to favour
	// fewer credits.
	StrategyTotalTime Strategy = "total-time"
	// StrategyCredits prefers lighter loads.
	StrategyCredits Strategy = "credits"
)

var rankings = map[Strategy]func(a, b *model.Schedule) int{
	StrategyCompactness: func(a, b *model.Schedule) int {
		return cmp.Compare(b.CompactnessRatio(), a.CompactnessRatio())
	},
	StrategyWeighted: func(a, b *model.Schedule) int {
		return cmp.Compare(b.Metrics().Weight*b.CompactnessRatio(), a.Metrics().Weight*a.CompactnessRatio())
	},
	StrategyTotalTime: func(a, b *model.Schedule) int {
		return cmp.Compare(a.Metrics().TotalTime, b.Metrics().TotalTime)
	},
	StrategyCredits: func(a, b *model.Schedule) int {
		return cmp.Compare(a.Credits, b.Credits)
	},
}

// Strategies lists the known ranking strategies.
func Strategies() []Strategy {
	strategies := lo.Keys(rankings)
	slices.Sort(strategies)
	return strategies
}

// Rank sorts schedules best first. Ties keep their input order.
func Rank(schedules []*model.Schedule, strategy Strategy) {
	compare, ok := rankings[strategy]
	if !ok {
		compare = rankings[StrategyCompactness]
	}
	slices.SortStableFunc(schedules, compare)
}
