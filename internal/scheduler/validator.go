package scheduler

import (
	"fmt"

	"github.com/sw385/Semester-Schedule/pkg/model"
)

// Validate checks a schedule for course collisions and the hard filters.
// Returns false and a message for invalid schedules.
func Validate(schedule *model.Schedule) (bool, string) {
	var message string
	var valid bool = true
	var hasCourseCollision bool = false

	for i, p1 := range schedule.Patterns {
		for _, p2 := range schedule.Patterns[i+1:] {
			if p1.CourseCode == p2.CourseCode || !p1.Collides(p2) {
				continue
			}
			valid = false
			hasCourseCollision = true
			message += fmt.Sprintf("    %s (%s) collides with %s (%s)\n", p1, p1.RawTime, p2, p2.RawTime)
		}
	}

	m := schedule.Calculate()
	var checks string
	if hasCourseCollision {
		checks += "[FAIL]: Course collision check.\n"
	} else {
		checks += "[  OK]: Course collision check.\n"
	}
	if m.SaturdayClass {
		valid = false
		checks += "[FAIL]: Saturday check.\n"
	} else {
		checks += "[  OK]: Saturday check.\n"
	}
	if m.Sleepless > 0 {
		valid = false
		checks += fmt.Sprintf("[FAIL]: Sleepless night check (%d late night followed by early morning).\n", m.Sleepless)
	} else {
		checks += "[  OK]: Sleepless night check.\n"
	}

	return valid, checks + message
}
