package csvio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gocarina/gocsv"
	"github.com/sw385/Semester-Schedule/pkg/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ExportSchedule formats the schedule data into ScheduleCSVRow structs and
// writes it to the CSV file specified by the given path.
func ExportSchedule(schedule *model.Schedule, path string) (string, error) {
	nice := formatSchedule(schedule)

	// Truncates an existing export of the same label
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&nice, out); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// ExportScheduleString formats the schedule data into ScheduleCSVRow structs
// and returns them as CSV text.
func ExportScheduleString(schedule *model.Schedule) (string, error) {
	nice := formatSchedule(schedule)
	return gocsv.MarshalString(&nice)
}

// CSVRenderer writes one "<label>.csv" per schedule into Dir.
type CSVRenderer struct {
	Dir string
}

func (r CSVRenderer) Render(label string, schedule *model.Schedule) error {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return err
	}
	_, err := ExportSchedule(schedule, filepath.Join(r.Dir, label+".csv"))
	return err
}

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true).Padding(1, 0, 0, 0)
	dayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	columnStyle = lipgloss.NewStyle().Width(20).PaddingRight(2)
	statsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

// TextRenderer prints a week view of every schedule, one column per day that
// has meetings.
type TextRenderer struct {
	Out io.Writer
}

func (r TextRenderer) Render(label string, schedule *model.Schedule) error {
	_, err := fmt.Fprintln(r.Out, PrintSchedule(label, schedule))
	return err
}

// PrintSchedule lays out the schedule as day columns followed by its metrics.
func PrintSchedule(label string, schedule *model.Schedule) string {
	title := cases.Title(language.English, cases.NoLower)

	var days [model.DaysPerWeek][]string
	for _, m := range meetings(schedule) {
		n := m.block.Weekday - 1
		if days[n] == nil {
			days[n] = []string{dayStyle.Render(m.block.Weekday.String())}
		}
		days[n] = append(days[n],
			timeStyle.Render(fmt.Sprintf("%s-%s", m.block.Start, m.block.End)),
			m.pattern.CourseCode+" "+m.pattern.Section,
			title.String(m.pattern.CourseName),
			"",
		)
	}

	var columns []string
	for _, lines := range days {
		if lines != nil {
			columns = append(columns, columnStyle.Render(strings.Join(lines, "\n")))
		}
	}

	m := schedule.Metrics()
	stats := statsStyle.Render(fmt.Sprintf("%.1f credits, %.2f hours on campus, %.2f hours in class, compactness %.4f",
		schedule.Credits, m.TotalTime/60, m.ClassTime/60, schedule.CompactnessRatio()))

	return lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(label),
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		stats,
	)
}

type meeting struct {
	pattern *model.MeetingPattern
	block   model.TimeBlock
}

// meetings lists every block with its pattern, by weekday then start time.
func meetings(schedule *model.Schedule) []meeting {
	var out []meeting
	for _, p := range schedule.Patterns {
		for _, b := range p.Blocks {
			if b.Weekday >= model.Monday && b.Weekday <= model.Sunday {
				out = append(out, meeting{pattern: p, block: b})
			}
		}
	}
	slices.SortStableFunc(out, func(a, b meeting) int {
		if a.block.Before(b.block) {
			return -1
		}
		if b.block.Before(a.block) {
			return 1
		}
		return strings.Compare(a.pattern.CourseCode, b.pattern.CourseCode)
	})
	return out
}

func formatSchedule(schedule *model.Schedule) []*model.ScheduleCSVRow {
	formatted := []*model.ScheduleCSVRow{}
	for _, m := range meetings(schedule) {
		formatted = append(formatted, &model.ScheduleCSVRow{
			CourseCode: m.pattern.CourseCode,
			CourseName: m.pattern.CourseName,
			Section:    m.pattern.Section,
			Day:        m.block.Weekday.String(),
			Start:      m.block.Start.String(),
			End:        m.block.End.String(),
			Duration:   m.block.Duration(),
			Credits:    m.pattern.Credits,
		})
	}
	return formatted
}
