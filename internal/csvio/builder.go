package csvio

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/sw385/Semester-Schedule/internal/logger"
	"github.com/sw385/Semester-Schedule/pkg/model"
)

// BuildCatalog turns flat catalog rows into courses. The rows are validated
// for contiguity first, then assembled: a row marked "c" opens a course, runs
// of one course code inside it form a corequisite group, and each row is one
// section of that group.
//
// With skipMalformed set, rows whose days and times do not parse are logged
// and dropped instead of failing the whole catalog.
func BuildCatalog(rows []*model.CatalogRow, skipMalformed bool) ([]*model.Course, error) {
	if err := ValidateGrouping(rows); err != nil {
		return nil, err
	}
	courses, err := assemble(rows, skipMalformed)
	if err != nil {
		return nil, err
	}

	required := lo.CountBy(courses, func(c *model.Course) bool { return c.Required })
	logger.Info().
		Int("courses", len(courses)).
		Int("required", required).
		Int("optional", len(courses)-required).
		Float64("requiredCredits", RequiredCredits(courses)).
		Msg("Catalog built")
	return courses, nil
}

// ValidateGrouping checks that the catalog starts with a course marker and
// that the rows of every course code are contiguous.
func ValidateGrouping(rows []*model.CatalogRow) error {
	if len(rows) == 0 {
		return nil
	}
	if !rows[0].StartsCourse() {
		return &model.InputGroupingError{
			CourseCode: rows[0].CourseCode,
			Row:        rows[0].Line,
			Reason:     fmt.Sprintf("first row must open a course with the %q marker", model.NewCourseMarker),
		}
	}

	firstSeen := map[string]int{}
	previous := ""
	for _, row := range rows {
		if row.CourseCode == "" {
			return &model.FormatError{Row: row.Line, Value: row.DaysAndTimes, Reason: "missing course code"}
		}
		if row.CourseCode != previous {
			if first, seen := firstSeen[row.CourseCode]; seen {
				return &model.InputGroupingError{CourseCode: row.CourseCode, FirstRow: first, Row: row.Line}
			}
			firstSeen[row.CourseCode] = row.Line
			previous = row.CourseCode
		}
	}
	return nil
}

// RequiredCredits sums the credits every schedule has to carry.
func RequiredCredits(courses []*model.Course) float64 {
	return lo.SumBy(courses, func(c *model.Course) float64 {
		if !c.Required {
			return 0
		}
		return c.TotalCredits
	})
}

func assemble(rows []*model.CatalogRow, skipMalformed bool) ([]*model.Course, error) {
	courses := []*model.Course{}
	var course *model.Course
	var group *model.CorequisiteGroup

	for _, row := range rows {
		if row.StartsCourse() {
			course = &model.Course{Required: row.IsRequired()}
			courses = append(courses, course)
			group = nil
		}
		if group == nil || group.CourseCode != row.CourseCode {
			credits, err := strconv.ParseFloat(row.Credits, 64)
			if err != nil {
				return nil, &model.FormatError{Row: row.Line, Value: row.Credits, Reason: "credits must be a number"}
			}
			group = &model.CorequisiteGroup{CourseCode: row.CourseCode, CourseName: row.CourseName, Credits: credits}
			course.AddGroup(group)
		}

		pattern, err := model.NewMeetingPattern(*row, group.Credits, group.CourseCode, group.CourseName)
		if err != nil {
			if skipMalformed && errors.Is(err, model.ErrFormat) {
				logger.Warn().Err(err).Str("course", row.CourseCode).Str("section", row.Section).Msg("Skipping malformed row")
				continue
			}
			return nil, err
		}
		group.Patterns = append(group.Patterns, pattern)
	}

	for _, c := range courses {
		for _, g := range c.Groups {
			if len(g.Patterns) == 0 {
				logger.Warn().Str("course", g.CourseCode).Msg("Corequisite group has no usable sections, no schedule can include it")
			}
		}
	}
	return courses, nil
}
