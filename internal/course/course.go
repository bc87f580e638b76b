package course

import "time"

// DefaultColor is used when the user has no custom color for a course.
const DefaultColor = "#000000"

// Course accumulates everything fetched for a single course: display
// metadata plus the resource collections and the bucketed views derived
// from them. A Course is mutated freely while the loader populates it and
// becomes read-mostly once the session is published.
type Course struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code"`
	Syllabus   string `json:"syllabus_body"`
	Term       *Term  `json:"term"`

	// Set by the loader, not decoded from the API.
	Color        string `json:"-"`
	SyllabusText string `json:"-"`

	UsersByRole   map[string][]User `json:"-"`
	Pages         []*Page           `json:"-"`
	Modules       []*Module         `json:"-"`
	Announcements []*Announcement   `json:"-"`
	Assignments   []*Assignment     `json:"-"`

	AnnouncementGroups []AnnouncementGroup `json:"-"`
	AssignmentGroups   []AssignmentGroup   `json:"-"`
}

// Term is the enrollment term window a course belongs to. Courses without a
// term are treated as permanent.
type Term struct {
	ID      int64      `json:"id"`
	Name    string     `json:"name"`
	StartAt *time.Time `json:"start_at"`
	EndAt   *time.Time `json:"end_at"`
}

// Contains reports whether the term window covers the given instant. Open
// ends count as unbounded.
func (t *Term) Contains(now time.Time) bool {
	if t.StartAt != nil && now.Before(*t.StartAt) {
		return false
	}
	if t.EndAt != nil && !now.Before(*t.EndAt) {
		return false
	}
	return true
}

// Active reports whether the course should be retained: its term window
// contains now, or it has no term at all.
func (c *Course) Active(now time.Time) bool {
	if c.Term == nil {
		return true
	}
	return c.Term.Contains(now)
}
