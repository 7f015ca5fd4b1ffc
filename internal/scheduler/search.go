package scheduler

import (
	"iter"

	"github.com/samber/lo"
	"github.com/sw385/Semester-Schedule/pkg/model"
)

// Combination is a set of courses whose corequisite groups are taken together.
type Combination struct {
	Courses []*model.Course
	Groups  []*model.CorequisiteGroup
	Credits float64
}

// Generator enumerates candidate schedules for a catalog. Required courses are
// part of every combination, optional ones are tried in every subset.
type Generator struct {
	required []*model.Course
	optional []*model.Course
	cfg      *Configuration
}

func NewGenerator(courses []*model.Course, cfg *Configuration) *Generator {
	isRequired := func(c *model.Course, _ int) bool { return c.Required }
	return &Generator{
		required: lo.Filter(courses, isRequired),
		optional: lo.Reject(courses, isRequired),
		cfg:      cfg,
	}
}

func (g *Generator) Required() []*model.Course { return g.required }
func (g *Generator) Optional() []*model.Course { return g.optional }

// InWindow reports whether a credit sum lies in the closed credit window.
func (g *Generator) InWindow(credits float64) bool {
	return credits >= g.cfg.MinCredits && credits <= g.cfg.MaxCredits
}

// allCombinations walks every optional subset, smallest first, in
// lexicographic order, and reports whether its credits fit the window.
func (g *Generator) allCombinations() iter.Seq2[Combination, bool] {
	return func(yield func(Combination, bool) bool) {
		n := len(g.optional)
		for k := 0; k <= n; k++ {
			for subset := range indexCombinations(n, k) {
				courses := make([]*model.Course, 0, k+len(g.required))
				for _, i := range subset {
					courses = append(courses, g.optional[i])
				}
				courses = append(courses, g.required...)

				groups := lo.FlatMap(courses, func(c *model.Course, _ int) []*model.CorequisiteGroup {
					return c.Groups
				})
				credits := lo.SumBy(groups, func(group *model.CorequisiteGroup) float64 {
					return group.Credits
				})
				combination := Combination{Courses: courses, Groups: groups, Credits: credits}
				if !yield(combination, g.InWindow(credits)) {
					return
				}
			}
		}
	}
}

// Combinations yields the course combinations inside the credit window.
func (g *Generator) Combinations() iter.Seq[Combination] {
	return func(yield func(Combination) bool) {
		for combination, ok := range g.allCombinations() {
			if ok && !yield(combination) {
				return
			}
		}
	}
}

// Candidates yields one schedule per choice of pattern for every group of
// every combination. The sequence is lazy and can be ranged over again.
func (g *Generator) Candidates() iter.Seq[*model.Schedule] {
	return g.candidates(&Stats{})
}

// candidates is Candidates, counting combinations and candidates into stats
// as they are produced.
func (g *Generator) candidates(stats *Stats) iter.Seq[*model.Schedule] {
	return func(yield func(*model.Schedule) bool) {
		for combination, inWindow := range g.allCombinations() {
			stats.Combinations++
			if !inWindow {
				continue
			}
			stats.FeasibleCombinations++

			for tuple := range patternProduct(combination.Groups) {
				stats.Candidates++
				if !yield(model.NewSchedule(tuple, combination.Credits)) {
					return
				}
			}
		}
	}
}

// indexCombinations yields the k-subsets of [0, n) in lexicographic order. The
// yielded slice is reused between iterations.
func indexCombinations(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k < 0 || k > n {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			if !yield(idx) {
				return
			}
			i := k - 1
			for i >= 0 && idx[i] == i+n-k {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

// patternProduct yields the Cartesian product of the groups' patterns, the
// last group varying fastest. Each tuple is a fresh slice.
func patternProduct(groups []*model.CorequisiteGroup) iter.Seq[[]*model.MeetingPattern] {
	return func(yield func([]*model.MeetingPattern) bool) {
		for _, group := range groups {
			if len(group.Patterns) == 0 {
				return
			}
		}
		idx := make([]int, len(groups))
		for {
			tuple := make([]*model.MeetingPattern, len(groups))
			for i, group := range groups {
				tuple[i] = group.Patterns[idx[i]]
			}
			if !yield(tuple) {
				return
			}
			i := len(groups) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(groups[i].Patterns) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}
