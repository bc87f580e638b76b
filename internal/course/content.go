package course

import "time"

// Module item types as reported by the API.
const (
	ItemTypeAssignment = "Assignment"
	ItemTypeQuiz       = "Quiz"
	ItemTypePage       = "Page"
)

// Page is a wiki page within a course. BodyText is the rendered plain-text
// form of the HTML body, filled in by the loader.
type Page struct {
	PageID    int64      `json:"page_id"`
	URL       string     `json:"url"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	UpdatedAt *time.Time `json:"updated_at"`

	BodyText string `json:"-"`
}

// Module is an ordered section of course content.
type Module struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Position int           `json:"position"`
	Items    []*ModuleItem `json:"items"`
}

// ModuleItem is one entry in a module. Depending on Type it references an
// assignment (by content ID), a quiz (by quiz ID, which matches an
// assignment's QuizID), or a page (by page URL). The Linked fields stay nil
// until the cross-link pass resolves them; at most one is ever set.
type ModuleItem struct {
	ID        int64  `json:"id"`
	ModuleID  int64  `json:"module_id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	ContentID int64  `json:"content_id"`
	PageURL   string `json:"page_url"`
	Position  int    `json:"position"`

	LinkedAssignment *Assignment `json:"-"`
	LinkedPage       *Page       `json:"-"`
}
