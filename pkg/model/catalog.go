package model

import "strings"

const (
	RequiredMarker  = "r"
	NewCourseMarker = "c"
)

// CatalogRow is one line of the course catalog. Every row is one offered
// section of a corequisite group.
type CatalogRow struct {
	CourseCode   string `csv:"Course code" mapstructure:"Course code" yaml:"Course code"`
	CourseName   string `csv:"Course name" mapstructure:"Course name" yaml:"Course name"`
	Credits      string `csv:"Credits" mapstructure:"Credits" yaml:"Credits"`
	Required     string `csv:"Required?" mapstructure:"Required?" yaml:"Required?"`
	Corequisites string `csv:"Corequisites?" mapstructure:"Corequisites?" yaml:"Corequisites?"`
	Section      string `csv:"Section" mapstructure:"Section" yaml:"Section"`
	DaysAndTimes string `csv:"Days and times" mapstructure:"Days and times" yaml:"Days and times"`
	Line         int    `csv:"-" mapstructure:"-" yaml:"-"`
}

// IsRequired reports whether the row marks its course as required.
func (r *CatalogRow) IsRequired() bool {
	return strings.TrimSpace(r.Required) == RequiredMarker
}

// StartsCourse reports whether the row opens a new course.
func (r *CatalogRow) StartsCourse() bool {
	return strings.TrimSpace(r.Corequisites) == NewCourseMarker
}

// Normalize trims stray whitespace and quotes left by loose catalog exports.
func (r *CatalogRow) Normalize() {
	clean := func(s string) string {
		return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
	}
	r.CourseCode = clean(r.CourseCode)
	r.CourseName = clean(r.CourseName)
	r.Credits = clean(r.Credits)
	r.Required = clean(r.Required)
	r.Corequisites = clean(r.Corequisites)
	r.Section = clean(r.Section)
	r.DaysAndTimes = clean(r.DaysAndTimes)
}
