package model

// CorequisiteGroup is one credit bearing unit of a course. Its patterns are
// interchangeable: exactly one of them ends up in a schedule.
type CorequisiteGroup struct {
	CourseCode string
	CourseName string
	Credits    float64
	Patterns   []*MeetingPattern
}

func (g *CorequisiteGroup) String() string {
	return g.CourseCode + " " + g.CourseName
}

// Course is a catalog entry: one or more corequisite groups that must all be
// taken together (lecture + lab, for example).
type Course struct {
	Required     bool
	Groups       []*CorequisiteGroup
	TotalCredits float64
}

// AddGroup appends a corequisite group and accounts for its credits.
func (c *Course) AddGroup(group *CorequisiteGroup) {
	c.Groups = append(c.Groups, group)
	c.TotalCredits += group.Credits
}

// Code returns the course code of the first group.
func (c *Course) Code() string {
	if len(c.Groups) == 0 {
		return ""
	}
	return c.Groups[0].CourseCode
}

func (c *Course) String() string {
	if len(c.Groups) == 0 {
		return ""
	}
	return c.Groups[0].String()
}
