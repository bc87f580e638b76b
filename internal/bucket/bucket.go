package bucket

import "time"

// Label names a relevance window items get sorted into for display.
type Label string

const (
	Today      Label = "today"
	Yesterday  Label = "yesterday"
	LastWeek   Label = "last_week"
	LastMonth  Label = "last_month"
	Previously Label = "previously"

	DueSoon   Label = "due_soon"
	Upcoming  Label = "upcoming"
	Past      Label = "past"
	NoDueDate Label = "no_due_date"
)

// Rule pairs a label with its date predicate. A nil predicate marks the
// catch-all rule, which claims everything the earlier rules left behind.
type Rule struct {
	Label Label
	In    func(time.Time) bool
}

// Group holds the items one rule claimed, in source order.
type Group[T any] struct {
	Label Label
	Items []T
}

// Partition splits items across the rules in order. Each rule removes its
// matches from the remaining set before the next rule runs, so earlier labels
// win when windows overlap and the result is always a disjoint, exhaustive
// split of the input (provided the last rule is a catch-all). Items whose
// timestamp is absent (when returns false) never match a dated predicate and
// end up in the catch-all.
func Partition[T any](items []T, rules []Rule, when func(T) (time.Time, bool)) []Group[T] {
	remaining := make([]T, len(items))
	copy(remaining, items)

	groups := make([]Group[T], 0, len(rules))
	for _, rule := range rules {
		if rule.In == nil {
			groups = append(groups, Group[T]{Label: rule.Label, Items: remaining})
			remaining = nil
			continue
		}

		var matched, rest []T
		for _, item := range remaining {
			if ts, ok := when(item); ok && rule.In(ts) {
				matched = append(matched, item)
			} else {
				rest = append(rest, item)
			}
		}
		groups = append(groups, Group[T]{Label: rule.Label, Items: matched})
		remaining = rest
	}

	return groups
}

// AnnouncementRules builds the posted-date windows relative to now:
// today, yesterday, the previous calendar week, the previous calendar month,
// and a trailing catch-all.
func AnnouncementRules(now time.Time) []Rule {
	day := StartOfDay(now)
	week := StartOfWeek(now)
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonth := month.AddDate(0, -1, 0)

	return []Rule{
		{Label: Today, In: between(day, day.AddDate(0, 0, 1))},
		{Label: Yesterday, In: between(day.AddDate(0, 0, -1), day)},
		{Label: LastWeek, In: between(week.AddDate(0, 0, -7), week)},
		{Label: LastMonth, In: between(prevMonth, month)},
		{Label: Previously},
	}
}

// AssignmentRules builds the due-date windows relative to now. Due soon means
// within the next seven days. Dateless assignments fall through to the
// trailing no-due-date catch-all.
func AssignmentRules(now time.Time) []Rule {
	soon := now.AddDate(0, 0, 7)

	return []Rule{
		{Label: DueSoon, In: between(now, soon)},
		{Label: Upcoming, In: func(t time.Time) bool { return !t.Before(soon) }},
		{Label: Past, In: func(t time.Time) bool { return t.Before(now) }},
		{Label: NoDueDate},
	}
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the most recent Monday midnight at or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// between reports whether a timestamp falls in [start, end).
func between(start, end time.Time) func(time.Time) bool {
	return func(t time.Time) bool {
		return !t.Before(start) && t.Before(end)
	}
}
