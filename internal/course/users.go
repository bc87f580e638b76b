package course

// User is a course member or the current user profile.
type User struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	SortableName string       `json:"sortable_name"`
	AvatarURL    string       `json:"avatar_url"`
	Email        string       `json:"email"`
	Enrollments  []Enrollment `json:"enrollments"`
}

// Enrollment ties a user to a course under a role.
type Enrollment struct {
	ID       int64  `json:"id"`
	CourseID int64  `json:"course_id"`
	UserID   int64  `json:"user_id"`
	Type     string `json:"type"`
	Role     string `json:"role"`
	State    string `json:"enrollment_state"`
}

// Group is a course-scoped user group with its own announcement stream.
type Group struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CourseID     int64  `json:"course_id"`
	MembersCount int    `json:"members_count"`

	Users         []User          `json:"-"`
	Announcements []*Announcement `json:"-"`
}
