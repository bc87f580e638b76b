package loader

import (
	"context"

	"coursenest/internal/course"
)

// API is the slice of the LMS client the loader depends on. canvas.Client
// implements it; tests substitute fakes.
type API interface {
	Self(ctx context.Context) (*course.User, error)
	SelfEnrollments(ctx context.Context) ([]course.Enrollment, error)
	SelfGroups(ctx context.Context) ([]*course.Group, error)
	GroupUsers(ctx context.Context, groupID int64) ([]course.User, error)
	GroupAnnouncements(ctx context.Context, groupID int64) ([]*course.Announcement, error)
	CourseColors(ctx context.Context) (map[string]string, error)
	ActiveCourses(ctx context.Context) ([]*course.Course, error)
	CourseUsers(ctx context.Context, courseID int64) ([]course.User, error)
	CoursePages(ctx context.Context, courseID int64) ([]*course.Page, error)
	CourseModules(ctx context.Context, courseID int64) ([]*course.Module, error)
	CourseAnnouncements(ctx context.Context, courseID int64) ([]*course.Announcement, error)
	CourseAssignments(ctx context.Context, courseID int64) ([]*course.Assignment, error)
}
