package loader

import (
	"time"

	"coursenest/internal/course"
)

// Session is the published result of one load run: the current user, their
// groups filtered to retained courses, and the fully populated course list.
// It is handed over only after every phase completes, so readers never see a
// half-populated course.
type Session struct {
	User        *course.User
	Enrollments []course.Enrollment
	Groups      []*course.Group
	Courses     []*course.Course
	Colors      map[string]string
	LoadedAt    time.Time
}
