package course

// LinkModuleItems resolves module item references against the course's own
// assignments and pages: assignment items by content ID, quiz items by quiz
// ID (also marking the assignment quiz-backed), page items by page URL.
// Link fields are cleared before matching, so running the pass again after
// either collection changes yields the same state as a single fresh run.
func (c *Course) LinkModuleItems() {
	byID := make(map[int64]*Assignment, len(c.Assignments))
	byQuizID := make(map[int64]*Assignment)
	for _, a := range c.Assignments {
		byID[a.ID] = a
		if a.QuizID != 0 {
			byQuizID[a.QuizID] = a
		}
	}

	byURL := make(map[string]*Page, len(c.Pages))
	for _, p := range c.Pages {
		if p.URL != "" {
			byURL[p.URL] = p
		}
	}

	for _, m := range c.Modules {
		for _, item := range m.Items {
			item.LinkedAssignment = nil
			item.LinkedPage = nil
			switch item.Type {
			case ItemTypeAssignment:
				if a, ok := byID[item.ContentID]; ok {
					item.LinkedAssignment = a
				}
			case ItemTypeQuiz:
				if a, ok := byQuizID[item.ContentID]; ok {
					item.LinkedAssignment = a
					a.IsQuiz = true
				}
			case ItemTypePage:
				if p, ok := byURL[item.PageURL]; ok {
					item.LinkedPage = p
				}
			}
		}
	}
}
