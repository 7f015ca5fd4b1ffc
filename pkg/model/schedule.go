package model

import (
	"math"
	"sort"
	"strings"
)

// TravelAllowance is the commute time in minutes added for every day that has
// at least one meeting.
const TravelAllowance = 120

var (
	morningWindow = TimeBlock{Start: NewClock(0, 0), End: NewClock(8, 59)}
	nightWindow   = TimeBlock{Start: NewClock(17, 0), End: NewClock(23, 59)}
)

// Metrics are derived from the chosen patterns of a schedule. Times are in minutes.
type Metrics struct {
	TotalTime     float64
	ClassTime     float64
	TravelTime    float64
	EarlyMornings int
	LateNights    int
	Sleepless     int
	SaturdayClass bool
	Weight        float64
}

// Schedule is one concrete choice of a meeting pattern per corequisite group.
// Patterns are shared with the catalog and must not be modified.
type Schedule struct {
	Patterns []*MeetingPattern
	Credits  float64

	metrics    Metrics
	calculated bool
}

// NewSchedule wraps a tuple of chosen patterns.
func NewSchedule(patterns []*MeetingPattern, credits float64) *Schedule {
	return &Schedule{Patterns: patterns, Credits: credits}
}

// Blocks returns every block of every chosen pattern, in pattern order.
func (s *Schedule) Blocks() []TimeBlock {
	var blocks []TimeBlock
	for _, p := range s.Patterns {
		blocks = append(blocks, p.Blocks...)
	}
	return blocks
}

// ContainsConflict reports whether two patterns of different courses collide.
// Patterns sharing a course code are never checked against each other.
func (s *Schedule) ContainsConflict() bool {
	_, _, found := s.FirstConflict()
	return found
}

// FirstConflict returns the first pair of colliding patterns, if any.
func (s *Schedule) FirstConflict() (*MeetingPattern, *MeetingPattern, bool) {
	for i, p1 := range s.Patterns {
		for _, p2 := range s.Patterns[i+1:] {
			if p1.CourseCode == p2.CourseCode {
				continue
			}
			if p1.Collides(p2) {
				return p1, p2, true
			}
		}
	}
	return nil, nil, false
}

// Days buckets the blocks by weekday (index 0 is Monday), each bucket sorted by
// start time.
func (s *Schedule) Days() [DaysPerWeek][]TimeBlock {
	var days [DaysPerWeek][]TimeBlock
	blocks := s.Blocks()
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Before(blocks[j])
	})
	for _, b := range blocks {
		if b.Weekday < Monday || b.Weekday > Sunday {
			continue
		}
		days[b.Weekday-1] = append(days[b.Weekday-1], b)
	}
	return days
}

// Calculate computes the derived metrics once and caches them. Later calls
// return the cached value.
func (s *Schedule) Calculate() Metrics {
	if s.calculated {
		return s.metrics
	}

	var m Metrics
	days := s.Days()
	m.SaturdayClass = len(days[Saturday-1]) > 0

	for _, day := range days {
		if len(day) == 0 {
			continue
		}
		m.TravelTime += TravelAllowance
		m.TotalTime += TravelAllowance
		for _, b := range day {
			m.ClassTime += float64(b.Duration())
			m.TotalTime += float64(b.Duration())
		}
		for n := 0; n < len(day)-1; n++ {
			// Same-course blocks may overlap; they never count as negative time.
			if gap := day[n+1].Start - day[n].End; gap > 0 {
				m.TotalTime += float64(gap)
			}
		}
	}

	var earlyMorning, lateNight [DaysPerWeek]bool
	for n, day := range days {
		morning, night := morningWindow, nightWindow
		morning.Weekday, night.Weekday = Weekday(n+1), Weekday(n+1)
		for _, b := range day {
			if b.Overlaps(morning) {
				earlyMorning[n] = true
			}
			if b.Overlaps(night) {
				lateNight[n] = true
			}
		}
		if earlyMorning[n] {
			m.EarlyMornings++
		}
		if lateNight[n] {
			m.LateNights++
		}
	}
	// Sunday night into Monday morning is assumed restful.
	for n := 0; n < DaysPerWeek-1; n++ {
		if lateNight[n] && earlyMorning[n+1] {
			m.Sleepless++
		}
	}

	for _, b := range s.Blocks() {
		m.Weight += ((Gaussian(b.Start) + Gaussian(b.End)) / 2) * float64(b.Duration()) / 60
	}

	s.metrics = m
	s.calculated = true
	return m
}

// Metrics returns the cached metrics, calculating them on first use.
func (s *Schedule) Metrics() Metrics {
	return s.Calculate()
}

// CompactnessRatio is class time over total time including gaps and travel.
func (s *Schedule) CompactnessRatio() float64 {
	m := s.Calculate()
	if m.TotalTime == 0 {
		return 0
	}
	return m.ClassTime / m.TotalTime
}

// Gaussian maps a time of day onto a bell curve centred on 1 PM over the
// 8 AM to 6 PM span, shifted down by a quarter.
func Gaussian(t Clock) float64 {
	minutes := ((int(t)-int(NewClock(8, 0)))%1440 + 1440) % 1440
	const mu, sigma = 0.0, 1.0
	x := -3 + (float64(minutes)/600)*6
	return math.Exp(-math.Pow(x-mu, 2)/(2*math.Pow(sigma, 2))) - 0.25
}

// IsEquivalentTo reports whether every block of s meets in other with the same
// course, weekday and times, regardless of which section ids produced them.
// The check is one-way: a schedule is equivalent to any superset of itself.
func (s *Schedule) IsEquivalentTo(other *Schedule) bool {
	return coveredBy(s.Blocks(), other.Blocks())
}

func coveredBy(blocks []TimeBlock, others []TimeBlock) bool {
	for _, b1 := range blocks {
		found := false
		for _, b2 := range others {
			if b1.SameOccurrence(b2) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *Schedule) String() string {
	lines := make([]string, 0, len(s.Patterns))
	for _, p := range s.Patterns {
		lines = append(lines, p.String())
	}
	return strings.Join(lines, "\n")
}

// ScheduleCSVRow is one exported line per time block of a finished schedule.
type ScheduleCSVRow struct {
	CourseCode string  `csv:"course_code"`
	CourseName string  `csv:"course_name"`
	Section    string  `csv:"section"`
	Day        string  `csv:"day"`
	Start      string  `csv:"start"`
	End        string  `csv:"end"`
	Duration   int     `csv:"duration"`
	Credits    float64 `csv:"credits"`
}
