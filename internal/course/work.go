package course

import "time"

// Assignment is a gradable task within a course. Quiz-backed assignments
// carry the quiz's ID in QuizID; IsQuiz is set when a quiz module item is
// linked to the assignment.
type Assignment struct {
	ID             int64      `json:"id"`
	CourseID       int64      `json:"course_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	DueAt          *time.Time `json:"due_at"`
	PointsPossible float64    `json:"points_possible"`
	QuizID         int64      `json:"quiz_id"`
	HTMLURL        string     `json:"html_url"`

	DescriptionText string `json:"-"`
	IsQuiz          bool   `json:"-"`
}

// Announcement is a posted discussion topic flagged as an announcement.
type Announcement struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	PostedAt   *time.Time `json:"posted_at"`
	AuthorName string     `json:"user_name"`
	HTMLURL    string     `json:"html_url"`

	MessageText string `json:"-"`
}
