package course

import (
	"sort"
	"time"

	"coursenest/internal/bucket"
)

// AnnouncementGroup is one relevance window of a course's announcements.
type AnnouncementGroup = bucket.Group[*Announcement]

// AssignmentGroup is one due-date window of a course's assignments.
type AssignmentGroup = bucket.Group[*Assignment]

// RebuildAnnouncementGroups recomputes the bucketed announcement view from
// scratch. Every announcement lands in exactly one group; announcements
// without a posted date fall into the trailing catch-all.
func (c *Course) RebuildAnnouncementGroups(now time.Time) {
	c.AnnouncementGroups = bucket.Partition(c.Announcements, bucket.AnnouncementRules(now),
		func(a *Announcement) (time.Time, bool) {
			if a.PostedAt == nil {
				return time.Time{}, false
			}
			return *a.PostedAt, true
		})
}

// RebuildAssignmentGroups recomputes the due-date view from scratch. The
// past group is additionally sorted by due date descending, with dateless
// entries after all dated ones.
func (c *Course) RebuildAssignmentGroups(now time.Time) {
	groups := bucket.Partition(c.Assignments, bucket.AssignmentRules(now),
		func(a *Assignment) (time.Time, bool) {
			if a.DueAt == nil {
				return time.Time{}, false
			}
			return *a.DueAt, true
		})

	for i := range groups {
		if groups[i].Label != bucket.Past {
			continue
		}
		items := groups[i].Items
		sort.SliceStable(items, func(a, b int) bool {
			switch {
			case items[a].DueAt == nil:
				return false
			case items[b].DueAt == nil:
				return true
			default:
				return items[a].DueAt.After(*items[b].DueAt)
			}
		})
	}

	c.AssignmentGroups = groups
}
