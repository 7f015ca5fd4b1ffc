package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw385/Semester-Schedule/pkg/model"
)

func testSchedule(t *testing.T) *model.Schedule {
	t.Helper()
	lecture, err := model.NewMeetingPattern(model.CatalogRow{Section: "001", DaysAndTimes: "MoWe 9:00AM - 9:50AM"}, 3, "MATH 101", "Calculus I")
	require.NoError(t, err)
	lab, err := model.NewMeetingPattern(model.CatalogRow{Section: "002", DaysAndTimes: "Su 1:00PM - 3:50PM"}, 1, "CHEM 101L", "Chemistry Lab")
	require.NoError(t, err)
	return model.NewSchedule([]*model.MeetingPattern{lecture, lab}, 4)
}

func TestGenerateICS(t *testing.T) {
	// a Wednesday
	termStart := time.Date(2026, time.September, 9, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, GenerateICS(testSchedule(t), &buf, termStart, 15))
	output := buf.String()

	assert.Contains(t, output, "SUMMARY:MATH 101 Calculus I")
	assert.Equal(t, 3, strings.Count(output, "BEGIN:VEVENT"))
	assert.Equal(t, 3, strings.Count(output, "RRULE:FREQ=WEEKLY;COUNT=15"))

	// Monday rolls over to the following week, Wednesday starts the same day
	assert.Contains(t, output, "DTSTART:20260914T090000Z")
	assert.Contains(t, output, "DTSTART:20260909T090000Z")
	assert.Contains(t, output, "DTEND:20260909T095000Z")
	assert.Contains(t, output, "DTSTART:20260913T130000Z")
}

func TestGenerateICSLocalTime(t *testing.T) {
	loc := time.FixedZone("EDT", -4*60*60)
	termStart := time.Date(2026, time.September, 7, 0, 0, 0, 0, loc)

	var buf bytes.Buffer
	require.NoError(t, GenerateICS(testSchedule(t), &buf, termStart, 1))

	// 9:00 AM at UTC-4 is 13:00 UTC
	assert.Contains(t, buf.String(), "DTSTART:20260907T130000Z")
}

func TestGenerateICSRejectsEmptyTerm(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, GenerateICS(testSchedule(t), &buf, time.Now(), 0))
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 0, daysUntil(time.Monday, model.Monday))
	assert.Equal(t, 6, daysUntil(time.Monday, model.Sunday))
	assert.Equal(t, 1, daysUntil(time.Sunday, model.Monday))
	assert.Equal(t, 0, daysUntil(time.Sunday, model.Sunday))
	assert.Equal(t, 4, daysUntil(time.Wednesday, model.Sunday))
}

func TestICSRenderer(t *testing.T) {
	dir := t.TempDir()
	renderer := ICSRenderer{Dir: dir, TermStart: time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC), Weeks: 15}
	require.NoError(t, renderer.Render("preferred 03", testSchedule(t)))

	data, err := os.ReadFile(filepath.Join(dir, "preferred 03.ics"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
}
