package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(day Weekday, start, end string, code string) TimeBlock {
	s, err := ParseClock(start)
	if err != nil {
		panic(err)
	}
	e, err := ParseClock(end)
	if err != nil {
		panic(err)
	}
	return TimeBlock{Weekday: day, Start: s, End: e, CourseCode: code}
}

func TestParseClock(t *testing.T) {
	cases := map[string]Clock{
		"9:00AM":  NewClock(9, 0),
		"09:00AM": NewClock(9, 0),
		"12:10PM": NewClock(12, 10),
		"12:00AM": NewClock(0, 0),
		"5:45pm":  NewClock(17, 45),
		"11:59PM": NewClock(23, 59),
	}
	for input, expected := range cases {
		clock, err := ParseClock(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, clock, input)
	}

	_, err := ParseClock("25:00XM")
	assert.Error(t, err)
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "12:10PM", NewClock(12, 10).String())
	assert.Equal(t, "12:00AM", NewClock(0, 0).String())
	assert.Equal(t, "9:05AM", NewClock(9, 5).String())
}

func TestOverlapsDifferentWeekdays(t *testing.T) {
	for d1 := Monday; d1 <= Sunday; d1++ {
		for d2 := Monday; d2 <= Sunday; d2++ {
			if d1 == d2 {
				continue
			}
			a := block(d1, "9:00AM", "10:00AM", "A")
			b := block(d2, "9:00AM", "10:00AM", "B")
			assert.False(t, a.Overlaps(b), "%v vs %v", d1, d2)
		}
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	blocks := []TimeBlock{
		block(Monday, "9:00AM", "9:50AM", "A"),
		block(Monday, "9:30AM", "10:20AM", "B"),
		block(Monday, "9:50AM", "11:00AM", "C"),
		block(Monday, "8:00AM", "12:00PM", "D"),
		block(Monday, "1:00PM", "2:00PM", "E"),
		block(Tuesday, "9:00AM", "9:50AM", "F"),
	}
	for _, a := range blocks {
		for _, b := range blocks {
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "%v vs %v", a, b)
		}
	}
}

func TestOverlapsBoundaries(t *testing.T) {
	first := block(Monday, "9:00AM", "9:50AM", "A")

	t.Run("touching endpoints collide", func(t *testing.T) {
		assert.True(t, first.Overlaps(block(Monday, "9:50AM", "10:40AM", "B")))
	})
	t.Run("partial overlap", func(t *testing.T) {
		assert.True(t, first.Overlaps(block(Monday, "9:30AM", "10:20AM", "B")))
	})
	t.Run("containment", func(t *testing.T) {
		assert.True(t, first.Overlaps(block(Monday, "9:10AM", "9:20AM", "B")))
		assert.True(t, block(Monday, "9:10AM", "9:20AM", "B").Overlaps(first))
	})
	t.Run("disjoint", func(t *testing.T) {
		assert.False(t, first.Overlaps(block(Monday, "9:51AM", "10:40AM", "B")))
	})
}

func TestParseDayToken(t *testing.T) {
	day, ok := ParseDayToken("Th")
	assert.True(t, ok)
	assert.Equal(t, Thursday, day)
	assert.Equal(t, "Thursday", day.String())
	assert.Equal(t, "Th", day.Token())

	_, ok = ParseDayToken("Xx")
	assert.False(t, ok)
}
