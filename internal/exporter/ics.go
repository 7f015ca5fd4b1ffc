package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/sw385/Semester-Schedule/pkg/model"
)

// GenerateICS writes one weekly recurring event per meeting block. The first
// occurrence of each block is the first matching weekday on or after
// termStart, in termStart's location.
func GenerateICS(schedule *model.Schedule, w io.Writer, termStart time.Time, weeks int) error {
	if weeks <= 0 {
		return fmt.Errorf("term must last at least one week, got %d", weeks)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Semester Schedule//EN")

	now := time.Now()
	day := time.Date(termStart.Year(), termStart.Month(), termStart.Day(), 0, 0, 0, 0, termStart.Location())

	for _, p := range schedule.Patterns {
		for _, b := range p.Blocks {
			first := day.AddDate(0, 0, daysUntil(day.Weekday(), b.Weekday))
			start := first.Add(time.Duration(b.Start) * time.Minute)
			end := first.Add(time.Duration(b.End) * time.Minute)

			event := cal.AddEvent(eventID(p, b))
			event.SetDtStampTime(now)
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", weeks))
			event.SetSummary(p.CourseCode + " " + p.CourseName)
			event.SetDescription(fmt.Sprintf("Section: %s\nCredits: %g\nMeets: %s", p.Section, p.Credits, p.RawTime))
		}
	}

	return cal.SerializeTo(w)
}

// daysUntil counts the days from one weekday to the next occurrence of target.
func daysUntil(from time.Weekday, target model.Weekday) int {
	// time.Weekday starts at Sunday = 0, model.Weekday at Monday = 1.
	to := int(target) % 7
	return (to - int(from) + 7) % 7
}

func eventID(p *model.MeetingPattern, b model.TimeBlock) string {
	code := strings.ReplaceAll(p.CourseCode, " ", "")
	return fmt.Sprintf("%s-%s-%s-%04d@semester-schedule", code, p.Section, b.Weekday.Token(), int(b.Start))
}

// ICSRenderer writes one "<label>.ics" per schedule into Dir.
type ICSRenderer struct {
	Dir       string
	TermStart time.Time
	Weeks     int
}

func (r ICSRenderer) Render(label string, schedule *model.Schedule) error {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(r.Dir, label+".ics")
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	if err := GenerateICS(schedule, out, r.TermStart, r.Weeks); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
