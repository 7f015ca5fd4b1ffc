package model

import (
	"fmt"
	"strings"
	"time"
)

type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the number of weekday buckets a schedule is split into.
const DaysPerWeek = 7

var dayTokens = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ParseDayToken maps a two letter token ("Mo".."Su") to its weekday.
func ParseDayToken(token string) (Weekday, bool) {
	for i, t := range dayTokens {
		if t == token {
			return Weekday(i + 1), true
		}
	}
	return 0, false
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return dayNames[d-1]
}

// Token returns the two letter catalog token of the weekday.
func (d Weekday) Token() string {
	if d < Monday || d > Sunday {
		return "??"
	}
	return dayTokens[d-1]
}

// Clock is a time of day in minutes after midnight.
type Clock int

const clockLayout = "3:04PM"

// ParseClock parses catalog times such as "9:00AM" or "12:10PM".
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return 0, err
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// NewClock builds a Clock from a 24h hour and minute.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

func (c Clock) Hour() int { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	h := c.Hour() % 12
	if h == 0 {
		h = 12
	}
	suffix := "AM"
	if c.Hour() >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d%s", h, c.Minute(), suffix)
}

// TimeBlock is a single weekly occurrence of a meeting pattern.
type TimeBlock struct {
	Weekday    Weekday
	Start      Clock
	End        Clock
	CourseCode string
}

// Duration returns the length of the block in minutes.
func (b TimeBlock) Duration() int {
	return int(b.End - b.Start)
}

// Overlaps reports whether two blocks on the same weekday share any minute.
// Boundaries are inclusive: a block ending when another starts collides with it.
func (b TimeBlock) Overlaps(other TimeBlock) bool {
	if b.Weekday != other.Weekday {
		return false
	}
	return b.Start <= other.End && other.Start <= b.End
}

// Before orders blocks by weekday, then start time.
func (b TimeBlock) Before(other TimeBlock) bool {
	if b.Weekday != other.Weekday {
		return b.Weekday < other.Weekday
	}
	return b.Start < other.Start
}

// SameOccurrence reports whether both blocks describe the same course meeting
// at the same time on the same day.
func (b TimeBlock) SameOccurrence(other TimeBlock) bool {
	return b.CourseCode == other.CourseCode &&
		b.Weekday == other.Weekday &&
		b.Start == other.Start &&
		b.End == other.End
}

func (b TimeBlock) String() string {
	return fmt.Sprintf("%s %s %s-%s", b.CourseCode, b.Weekday.Token(), b.Start, b.End)
}
