package scheduler

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw385/Semester-Schedule/internal/logger"
	"github.com/sw385/Semester-Schedule/pkg/model"
)

func init() {
	logger.Configure(logger.Config{Level: logger.Disabled})
}

// group builds a corequisite group with one section per times string.
func group(code string, credits float64, times ...string) *model.CorequisiteGroup {
	g := &model.CorequisiteGroup{CourseCode: code, CourseName: code + " name", Credits: credits}
	for i, t := range times {
		row := model.CatalogRow{Section: fmt.Sprintf("%03d", i+1), DaysAndTimes: t}
		p, err := model.NewMeetingPattern(row, credits, code, g.CourseName)
		if err != nil {
			panic(err)
		}
		g.Patterns = append(g.Patterns, p)
	}
	return g
}

func course(required bool, groups ...*model.CorequisiteGroup) *model.Course {
	c := &model.Course{Required: required}
	for _, g := range groups {
		c.AddGroup(g)
	}
	return c
}

func config(minCredits, maxCredits float64) *Configuration {
	cfg := NewDefaultConfiguration()
	cfg.MinCredits = minCredits
	cfg.MaxCredits = maxCredits
	return cfg
}

func sections(s *model.Schedule) []string {
	out := make([]string, 0, len(s.Patterns))
	for _, p := range s.Patterns {
		out = append(out, p.CourseCode+"/"+p.Section)
	}
	return out
}

func TestIndexCombinations(t *testing.T) {
	var got [][]int
	for subset := range indexCombinations(4, 2) {
		got = append(got, slices.Clone(subset))
	}
	assert.Equal(t, [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, got)

	count := 0
	for subset := range indexCombinations(3, 0) {
		assert.Empty(t, subset)
		count++
	}
	assert.Equal(t, 1, count)

	for range indexCombinations(2, 3) {
		t.Fatal("no subset of size 3 exists in 2 elements")
	}
}

func TestPatternProductOrder(t *testing.T) {
	groups := []*model.CorequisiteGroup{
		group("A", 3, "Mo 9:00AM - 9:50AM", "Mo 10:00AM - 10:50AM"),
		group("B", 3, "Tu 9:00AM - 9:50AM", "Tu 10:00AM - 10:50AM", "Tu 11:00AM - 11:50AM"),
	}
	var got []string
	for tuple := range patternProduct(groups) {
		got = append(got, tuple[0].Section+"-"+tuple[1].Section)
	}
	assert.Equal(t, []string{"001-001", "001-002", "001-003", "002-001", "002-002", "002-003"}, got)

	empty := []*model.CorequisiteGroup{group("A", 3, "Mo 9:00AM - 9:50AM"), group("B", 3)}
	for range patternProduct(empty) {
		t.Fatal("a group without patterns yields no tuples")
	}
}

func TestCombinationsCreditWindow(t *testing.T) {
	required := course(true, group("REQ", 15, "Mo 9:00AM - 9:50AM"))
	one := course(false, group("ONE", 1, "Tu 9:00AM - 9:50AM"))
	two := course(false, group("TWO", 2, "We 9:00AM - 9:50AM"))

	credits := func(cfg *Configuration) []float64 {
		var out []float64
		for c := range NewGenerator([]*model.Course{required, one, two}, cfg).Combinations() {
			out = append(out, c.Credits)
		}
		return out
	}

	// 15, 16, 17 and 18 are the available sums
	assert.Equal(t, []float64{15, 16}, credits(config(15, 16)))
	assert.Equal(t, []float64{16}, credits(config(16, 16)))
	assert.Equal(t, []float64{17, 18}, credits(config(17, 18)))
	assert.Empty(t, credits(config(19, 30)))
}

func TestCombinationsIncludeRequiredLast(t *testing.T) {
	required := course(true, group("REQ", 3, "Mo 9:00AM - 9:50AM"))
	lab := course(false, group("CHEM", 3, "Tu 9:00AM - 9:50AM"), group("CHEM L", 1, "Th 1:00PM - 3:50PM"))

	var combos []Combination
	for c := range NewGenerator([]*model.Course{required, lab}, config(0, 100)).Combinations() {
		combos = append(combos, c)
	}
	require.Len(t, combos, 2)
	assert.Equal(t, []*model.Course{required}, combos[0].Courses)
	assert.Equal(t, []*model.Course{lab, required}, combos[1].Courses)
	assert.Len(t, combos[1].Groups, 3)
	assert.Equal(t, 7.0, combos[1].Credits)
}

func TestCandidatesAreRestartable(t *testing.T) {
	gen := NewGenerator([]*model.Course{
		course(true, group("A", 3, "Mo 9:00AM - 9:50AM", "Mo 11:00AM - 11:50AM")),
		course(false, group("B", 3, "Tu 9:00AM - 9:50AM", "Tu 1:00PM - 1:50PM")),
	}, config(6, 6))

	count := func() int {
		n := 0
		for range gen.Candidates() {
			n++
		}
		return n
	}
	assert.Equal(t, 4, count())
	assert.Equal(t, 4, count())

	stats := gen.Generate().Stats
	assert.Equal(t, 4, stats.Candidates)
	assert.Equal(t, 2, stats.Combinations)
	assert.Equal(t, 1, stats.FeasibleCombinations)

	// stopping early must not panic
	for range gen.Candidates() {
		break
	}
}

func TestGenerateSingleCombination(t *testing.T) {
	required := course(true, group("MATH 101", 3, "MoWeFr 9:00AM - 9:50AM"))
	optional := course(false, group("HIST 210", 13, "TuTh 9:00AM - 10:15AM"))

	result := NewGenerator([]*model.Course{required, optional}, config(16, 16)).Generate()

	assert.Equal(t, 2, result.Stats.Combinations)
	assert.Equal(t, 1, result.Stats.FeasibleCombinations)
	assert.Equal(t, 1, result.Stats.Candidates)
	assert.Equal(t, 0, result.Stats.Conflicting)
	require.Len(t, result.Ranked, 1)

	s := result.Ranked[0]
	assert.False(t, s.ContainsConflict())
	assert.False(t, s.Metrics().SaturdayClass)
	assert.Equal(t, 0, s.Metrics().Sleepless)
	assert.Equal(t, 16.0, s.Credits)

	require.Len(t, result.Preferred, 1)
	assert.Equal(t, "preferred 00", result.Preferred[0].Label)
	assert.Same(t, s, result.Preferred[0].Schedule)
	require.Len(t, result.Undesirable, 1)
	assert.Equal(t, "undesirable 01", result.Undesirable[0].Label)
}

func TestGenerateSectionsOfOneCourse(t *testing.T) {
	required := course(true, group("CS 150", 3, "MoWeFr 9:00AM - 9:50AM", "MoWeFr 9:30AM - 10:20AM"))

	result := NewGenerator([]*model.Course{required}, config(3, 3)).Generate()

	assert.Equal(t, 2, result.Stats.Candidates)
	assert.Equal(t, 0, result.Stats.Conflicting)
	assert.Len(t, result.Ranked, 2)
	assert.Len(t, result.Preferred, 2)
}

func TestGenerateDropsConflicts(t *testing.T) {
	first := course(true, group("CS 150", 3, "MoWeFr 9:00AM - 9:50AM"))
	second := course(true, group("PHYS 201", 3, "MoWeFr 9:30AM - 10:20AM"))

	result := NewGenerator([]*model.Course{first, second}, config(6, 6)).Generate()

	assert.Equal(t, 1, result.Stats.Candidates)
	assert.Equal(t, 1, result.Stats.Conflicting)
	assert.Empty(t, result.Ranked)
	assert.Empty(t, result.Preferred)
	assert.Empty(t, result.Undesirable)
}

func TestGenerateDropsSleeplessAndSaturday(t *testing.T) {
	night := course(true, group("NIGHT 1", 3, "Mo 5:00PM - 6:00PM"))
	morning := course(true, group("EARLY 1", 3, "Tu 8:00AM - 8:30AM", "Tu 10:00AM - 10:30AM", "Sa 10:00AM - 10:30AM"))

	result := NewGenerator([]*model.Course{night, morning}, config(6, 6)).Generate()

	assert.Equal(t, 3, result.Stats.Candidates)
	assert.Equal(t, 1, result.Stats.Sleepless)
	assert.Equal(t, 1, result.Stats.Saturday)
	require.Len(t, result.Ranked, 1)
	assert.Equal(t, []string{"NIGHT 1/001", "EARLY 1/002"}, sections(result.Ranked[0]))
}

func TestGenerateOptionalViews(t *testing.T) {
	courses := []*model.Course{
		course(true, group("A", 3, "Mo 8:00AM - 8:50AM", "Mo 10:00AM - 10:50AM", "Mo 6:00PM - 6:50PM")),
	}

	result := NewGenerator(courses, config(3, 3)).Generate()
	assert.Len(t, result.Ranked, 3)
	assert.Equal(t, 2, result.Stats.NoMornings)
	assert.Equal(t, 2, result.Stats.NoNights)

	cfg := config(3, 3)
	cfg.NoMornings = true
	cfg.NoNights = true
	result = NewGenerator(courses, cfg).Generate()
	require.Len(t, result.Ranked, 1)
	assert.Equal(t, "002", result.Ranked[0].Patterns[0].Section)
	assert.Equal(t, 2, result.Stats.Filtered)
}

func TestGenerateRanksByCompactness(t *testing.T) {
	courses := []*model.Course{
		course(true, group("A", 3, "Mo 9:00AM - 9:50AM")),
		course(true, group("B", 3, "Mo 10:00AM - 10:50AM", "Mo 3:00PM - 3:50PM", "Tu 10:00AM - 10:50AM")),
	}

	result := NewGenerator(courses, config(6, 6)).Generate()
	require.Len(t, result.Ranked, 3)
	assert.Equal(t, []string{"A/001", "B/001"}, sections(result.Ranked[0]))
	// a five hour gap costs more than a second day of travel
	assert.Equal(t, []string{"A/001", "B/003"}, sections(result.Ranked[1]))
	assert.Equal(t, []string{"A/001", "B/002"}, sections(result.Ranked[2]))

	for i := 1; i < len(result.Ranked); i++ {
		assert.GreaterOrEqual(t, result.Ranked[i-1].CompactnessRatio(), result.Ranked[i].CompactnessRatio())
	}
}

func TestGenerateDeduplicatesEquivalentSchedules(t *testing.T) {
	courses := []*model.Course{
		course(true, group("A", 3, "MoWe 9:00AM - 9:50AM", "MoWe 9:00AM - 9:50AM", "MoWe 2:00PM - 2:50PM")),
	}

	result := NewGenerator(courses, config(3, 3)).Generate()
	require.Len(t, result.Ranked, 3)

	labels := func(selections []Selection) []string {
		var out []string
		for _, s := range selections {
			out = append(out, s.Label)
		}
		return out
	}
	assert.Equal(t, []string{"preferred 00", "preferred 02"}, labels(result.Preferred))
	assert.Equal(t, []string{"undesirable 01", "undesirable 02"}, labels(result.Undesirable))

	for _, selections := range [][]Selection{result.Preferred, result.Undesirable} {
		for i := range selections {
			for j := i + 1; j < len(selections); j++ {
				assert.False(t, selections[j].Schedule.IsEquivalentTo(selections[i].Schedule))
			}
		}
	}
}

func TestGenerateSkipsSubsetOfPickedSchedule(t *testing.T) {
	courses := []*model.Course{
		course(true, group("A", 3, "Mo 9:00AM - 9:50AM")),
		course(false, group("B", 1, "Tu 9:00AM - 9:50AM")),
	}

	result := NewGenerator(courses, config(3, 4)).Generate()
	require.Len(t, result.Ranked, 2)
	assert.Equal(t, []string{"A/001"}, sections(result.Ranked[0]))
	assert.Equal(t, []string{"B/001", "A/001"}, sections(result.Ranked[1]))

	// [A] only meets where the already picked [B A] does
	require.Len(t, result.Undesirable, 1)
	assert.Equal(t, "undesirable 01", result.Undesirable[0].Label)
	assert.Equal(t, []string{"B/001", "A/001"}, sections(result.Undesirable[0].Schedule))

	// [B A] adds a block that [A] lacks, so both are preferred
	require.Len(t, result.Preferred, 2)
	assert.Equal(t, "preferred 00", result.Preferred[0].Label)
	assert.Equal(t, "preferred 01", result.Preferred[1].Label)
}

func TestSelectDistinctHonoursCount(t *testing.T) {
	var times []string
	for h := 8; h < 20; h++ {
		times = append(times, fmt.Sprintf("Mo %d:00%s - %d:30%s", (h+11)%12+1, ampm(h), (h+11)%12+1, ampm(h)))
	}
	courses := []*model.Course{course(true, group("A", 3, times...))}
	cfg := config(3, 3)
	cfg.SelectionCount = 4

	result := NewGenerator(courses, cfg).Generate()
	assert.Len(t, result.Ranked, len(times))
	assert.Len(t, result.Preferred, 4)
	assert.Len(t, result.Undesirable, 4)
	assert.Equal(t, len(times)-1, result.Undesirable[0].Index)
}

func ampm(hour int) string {
	if hour >= 12 {
		return "PM"
	}
	return "AM"
}

func TestEmit(t *testing.T) {
	courses := []*model.Course{course(true, group("A", 3, "Mo 9:00AM - 9:50AM", "Mo 1:00PM - 1:50PM"))}
	result := NewGenerator(courses, config(3, 3)).Generate()

	var rendered []string
	err := Emit(result, RendererFunc(func(label string, s *model.Schedule) error {
		rendered = append(rendered, label)
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"preferred 00", "preferred 01", "undesirable 01", "undesirable 02"}, rendered)

	err = Emit(result, RendererFunc(func(string, *model.Schedule) error {
		return errors.New("disk full")
	}))
	assert.ErrorContains(t, err, "preferred 00")
}
