package model

import (
	"errors"
	"fmt"
	"strings"
)

// MeetingPattern is one offered section of a corequisite group. All of its
// blocks share a single start and end time.
type MeetingPattern struct {
	Section    string
	RawTime    string
	Credits    float64
	CourseCode string
	CourseName string
	Blocks     []TimeBlock
}

// NewMeetingPattern parses a catalog row such as "MoWeTh 12:10PM - 1:00PM"
// into one TimeBlock per listed weekday.
func NewMeetingPattern(row CatalogRow, credits float64, courseCode string, courseName string) (*MeetingPattern, error) {
	blocks, err := ParseDaysAndTimes(row.DaysAndTimes, courseCode)
	if err != nil {
		var formatErr *FormatError
		if errors.As(err, &formatErr) {
			formatErr.Row = row.Line
		}
		return nil, err
	}
	return &MeetingPattern{
		Section:    row.Section,
		RawTime:    row.DaysAndTimes,
		Credits:    credits,
		CourseCode: courseCode,
		CourseName: courseName,
		Blocks:     blocks,
	}, nil
}

// ParseDaysAndTimes splits a days-and-times string into blocks. Patterns with
// different times on different days are not representable and are rejected.
func ParseDaysAndTimes(value string, courseCode string) ([]TimeBlock, error) {
	fields := strings.Fields(value)
	if len(fields) != 4 || fields[2] != "-" {
		return nil, &FormatError{Value: value, Reason: "expected \"<days> <start> - <end>\""}
	}
	days := fields[0]
	if len(days) == 0 || len(days)%2 != 0 {
		return nil, &FormatError{Value: value, Reason: fmt.Sprintf("malformed weekday list %q", days)}
	}
	start, err := ParseClock(fields[1])
	if err != nil {
		return nil, &FormatError{Value: value, Reason: fmt.Sprintf("bad start time %q", fields[1])}
	}
	end, err := ParseClock(fields[3])
	if err != nil {
		return nil, &FormatError{Value: value, Reason: fmt.Sprintf("bad end time %q", fields[3])}
	}

	blocks := make([]TimeBlock, 0, len(days)/2)
	for n := 0; n < len(days)/2; n++ {
		token := days[n*2 : (n+1)*2]
		day, ok := ParseDayToken(token)
		if !ok {
			return nil, &FormatError{Value: value, Reason: fmt.Sprintf("unknown weekday %q", token)}
		}
		if end <= start {
			return nil, &FormatError{Value: value, Reason: fmt.Sprintf("end time %s is not after start time %s", end, start)}
		}
		blocks = append(blocks, TimeBlock{Weekday: day, Start: start, End: end, CourseCode: courseCode})
	}
	return blocks, nil
}

// Collides reports whether any block of p overlaps any block of other.
func (p *MeetingPattern) Collides(other *MeetingPattern) bool {
	for _, b1 := range p.Blocks {
		for _, b2 := range other.Blocks {
			if b1.Overlaps(b2) {
				return true
			}
		}
	}
	return false
}

func (p *MeetingPattern) String() string {
	return p.CourseCode + " " + p.CourseName + " " + p.Section
}
