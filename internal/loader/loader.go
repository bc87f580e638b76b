package loader

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"coursenest/internal/cache"
	"coursenest/internal/course"
	"coursenest/internal/fanout"
	"coursenest/internal/richtext"
)

// Loader drives the whole fetch run: user preparation, course list, the five
// populate phases, and the final cross-link and group-filter pass. Phases
// run strictly in sequence; inside a phase the per-course fetches fan out
// through the chunked executor. Only the user and course-list fetches are
// fatal — every per-course fetch degrades to an empty slot.
type Loader struct {
	api       API
	store     *cache.Cache
	render    func(string) string
	chunkSize int
	now       func() time.Time
}

// New builds a loader over the given API and cache.
func New(api API, store *cache.Cache) *Loader {
	return &Loader{
		api:       api,
		store:     store,
		render:    richtext.Render,
		chunkSize: fanout.DefaultChunkSize,
		now:       time.Now,
	}
}

// SetChunkSize overrides the fan-out width for subsequent loads.
func (l *Loader) SetChunkSize(n int) {
	if n > 0 {
		l.chunkSize = n
	}
}

// needs records, per resource kind, whether a course still has to be
// populated. A kind is needed iff its collection is empty when the course
// list is prepared, which lets a caller pre-seed aggregates before the run.
type needs struct {
	users         bool
	pages         bool
	modules       bool
	announcements bool
	assignments   bool
}

// Load runs the full pipeline and publishes the finished session. A failure
// fetching the current user or the course list aborts the run; everything
// else is logged and degraded.
func (l *Loader) Load(ctx context.Context) (*Session, error) {
	now := l.now()

	user, enrollments, groups, err := l.prepareUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare user: %w", err)
	}

	colors := l.fetchColors(ctx)

	courses, err := l.prepareCourses(ctx, colors, now)
	if err != nil {
		return nil, fmt.Errorf("prepare courses: %w", err)
	}

	pending := make(map[int64]needs, len(courses))
	for _, c := range courses {
		pending[c.ID] = needs{
			users:         len(c.UsersByRole) == 0,
			pages:         len(c.Pages) == 0,
			modules:       len(c.Modules) == 0,
			announcements: len(c.Announcements) == 0,
			assignments:   len(c.Assignments) == 0,
		}
	}

	l.populateUsers(ctx, courses, pending)
	l.populatePages(ctx, courses, pending)
	l.populateModules(ctx, courses, pending)
	l.populateAnnouncements(ctx, courses, pending)
	l.populateAssignments(ctx, courses, pending)

	// Derived views are rebuilt for every course, not just the populated
	// ones, so pre-seeded collections partition too. Both rebuilds are
	// wholesale and idempotent.
	for _, c := range courses {
		c.LinkModuleItems()
		c.RebuildAnnouncementGroups(now)
		c.RebuildAssignmentGroups(now)
	}
	groups = filterGroups(groups, courses)

	logrus.WithFields(logrus.Fields{
		"courses": len(courses),
		"groups":  len(groups),
	}).Info("course load complete")

	return &Session{
		User:        user,
		Enrollments: enrollments,
		Groups:      groups,
		Courses:     courses,
		Colors:      colors,
		LoadedAt:    now,
	}, nil
}

// prepareUser loads the profile sub-graph from the global cache scope; a hit
// on all three entries short-circuits the network entirely. On a miss, the
// profile, enrollments, and group list are required fetches, while each
// group's members and announcements are fanned out and tolerated to fail.
func (l *Loader) prepareUser(ctx context.Context) (*course.User, []course.Enrollment, []*course.Group, error) {
	var (
		user        course.User
		enrollments []course.Enrollment
		groups      []*course.Group
	)
	if l.store.LoadGlobal(cache.KindProfile, &user) &&
		l.store.LoadGlobal(cache.KindEnrollments, &enrollments) &&
		l.store.LoadGlobal(cache.KindGroups, &groups) {
		logrus.Info("serving user profile from cache")
		l.rehydrateGroups(groups)
		return &user, enrollments, groups, nil
	}

	fetched, err := l.api.Self(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	enrollments, err = l.api.SelfEnrollments(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	groups, err = l.api.SelfGroups(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	fanout.Run(ctx, groups, l.chunkSize, func(ctx context.Context, g *course.Group) (struct{}, error) {
		if users, err := l.api.GroupUsers(ctx, g.ID); err != nil {
			logrus.WithError(err).WithField("group", g.ID).Warn("group members fetch failed")
		} else {
			g.Users = users
			l.save(cache.GroupOwner(g.ID), cache.KindUsers, users)
		}
		if announcements, err := l.api.GroupAnnouncements(ctx, g.ID); err != nil {
			logrus.WithError(err).WithField("group", g.ID).Warn("group announcements fetch failed")
		} else {
			for _, a := range announcements {
				a.MessageText = l.render(a.Message)
			}
			g.Announcements = announcements
			l.save(cache.GroupOwner(g.ID), cache.KindAnnouncements, announcements)
		}
		return struct{}{}, nil
	})

	l.saveGlobal(cache.KindProfile, fetched)
	l.saveGlobal(cache.KindEnrollments, enrollments)
	l.saveGlobal(cache.KindGroups, groups)

	return fetched, enrollments, groups, nil
}

func (l *Loader) saveGlobal(kind cache.Kind, v any) {
	if err := l.store.SaveGlobal(kind, v); err != nil {
		logrus.WithError(err).WithField("kind", kind).Warn("cache write failed")
	}
}

func (l *Loader) save(owner string, kind cache.Kind, v any) {
	if err := l.store.Save(owner, kind, v); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"owner": owner, "kind": kind}).Warn("cache write failed")
	}
}

// rehydrateGroups refills each cached group's members and announcements from
// the per-group cache scope. The group list entry only persists group
// metadata, so the sub-graph lives in its own entries.
func (l *Loader) rehydrateGroups(groups []*course.Group) {
	for _, g := range groups {
		var users []course.User
		if l.store.Load(cache.GroupOwner(g.ID), cache.KindUsers, &users) {
			g.Users = users
		}
		var announcements []*course.Announcement
		if l.store.Load(cache.GroupOwner(g.ID), cache.KindAnnouncements, &announcements) {
			for _, a := range announcements {
				a.MessageText = l.render(a.Message)
			}
			g.Announcements = announcements
		}
	}
}

// fetchColors always goes to the network; colors are cheap and can change
// between runs. A failure degrades to the default color for every course.
func (l *Loader) fetchColors(ctx context.Context) map[string]string {
	colors, err := l.api.CourseColors(ctx)
	if err != nil {
		logrus.WithError(err).Warn("course colors fetch failed")
		return map[string]string{}
	}
	return colors
}

// prepareCourses fetches the active course list, retains courses whose term
// window contains now or that have no term, orders term-bound courses before
// permanent ones, and seeds color and syllabus text.
func (l *Loader) prepareCourses(ctx context.Context, colors map[string]string, now time.Time) ([]*course.Course, error) {
	fetched, err := l.api.ActiveCourses(ctx)
	if err != nil {
		return nil, err
	}

	var retained []*course.Course
	for _, c := range fetched {
		if !c.Active(now) {
			continue
		}
		retained = append(retained, c)
	}
	sort.SliceStable(retained, func(i, j int) bool {
		return retained[i].Term != nil && retained[j].Term == nil
	})

	for _, c := range retained {
		c.Color = colors[fmt.Sprintf("course_%d", c.ID)]
		if c.Color == "" {
			c.Color = course.DefaultColor
		}
		c.SyllabusText = l.render(c.Syllabus)
	}

	return retained, nil
}

// loadSlot serves one (owner, kind) slot: cache first, network on miss, with
// a best-effort cache write after a successful fetch.
func loadSlot[T any](ctx context.Context, l *Loader, owner string, kind cache.Kind, fetch func(context.Context) ([]T, error)) ([]T, error) {
	var cached []T
	if l.store.Load(owner, kind, &cached) {
		logrus.WithFields(logrus.Fields{"owner": owner, "kind": kind}).Debug("serving from cache")
		return cached, nil
	}

	items, err := fetch(ctx)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"owner": owner, "kind": kind}).Warn("fetch failed")
		return nil, err
	}

	if err := l.store.Save(owner, kind, items); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"owner": owner, "kind": kind}).Warn("cache write failed")
	}
	return items, nil
}

func (l *Loader) populateUsers(ctx context.Context, courses []*course.Course, pending map[int64]needs) {
	targets := flagged(courses, pending, func(n needs) bool { return n.users })

	results := fanout.Run(ctx, targets, l.chunkSize, func(ctx context.Context, c *course.Course) ([]course.User, error) {
		return loadSlot(ctx, l, cache.CourseOwner(c.ID), cache.KindUsers, func(ctx context.Context) ([]course.User, error) {
			return l.api.CourseUsers(ctx, c.ID)
		})
	})

	for i, r := range results {
		if r == nil {
			continue
		}
		byRole := make(map[string][]course.User)
		for _, u := range *r {
			if len(u.Enrollments) == 0 {
				byRole[""] = append(byRole[""], u)
				continue
			}
			for _, e := range u.Enrollments {
				byRole[e.Type] = append(byRole[e.Type], u)
			}
		}
		targets[i].UsersByRole = byRole
	}
}

func (l *Loader) populatePages(ctx context.Context, courses []*course.Course, pending map[int64]needs) {
	targets := flagged(courses, pending, func(n needs) bool { return n.pages })

	results := fanout.Run(ctx, targets, l.chunkSize, func(ctx context.Context, c *course.Course) ([]*course.Page, error) {
		return loadSlot(ctx, l, cache.CourseOwner(c.ID), cache.KindPages, func(ctx context.Context) ([]*course.Page, error) {
			return l.api.CoursePages(ctx, c.ID)
		})
	})

	for i, r := range results {
		if r == nil {
			continue
		}
		for _, p := range *r {
			p.BodyText = l.render(p.Body)
		}
		targets[i].Pages = *r
	}
}

func (l *Loader) populateModules(ctx context.Context, courses []*course.Course, pending map[int64]needs) {
	targets := flagged(courses, pending, func(n needs) bool { return n.modules })

	results := fanout.Run(ctx, targets, l.chunkSize, func(ctx context.Context, c *course.Course) ([]*course.Module, error) {
		return loadSlot(ctx, l, cache.CourseOwner(c.ID), cache.KindModules, func(ctx context.Context) ([]*course.Module, error) {
			return l.api.CourseModules(ctx, c.ID)
		})
	})

	for i, r := range results {
		if r == nil {
			continue
		}
		targets[i].Modules = *r
	}
}

func (l *Loader) populateAnnouncements(ctx context.Context, courses []*course.Course, pending map[int64]needs) {
	targets := flagged(courses, pending, func(n needs) bool { return n.announcements })

	results := fanout.Run(ctx, targets, l.chunkSize, func(ctx context.Context, c *course.Course) ([]*course.Announcement, error) {
		return loadSlot(ctx, l, cache.CourseOwner(c.ID), cache.KindAnnouncements, func(ctx context.Context) ([]*course.Announcement, error) {
			return l.api.CourseAnnouncements(ctx, c.ID)
		})
	})

	for i, r := range results {
		if r == nil {
			continue
		}
		for _, a := range *r {
			a.MessageText = l.render(a.Message)
		}
		targets[i].Announcements = *r
	}
}

func (l *Loader) populateAssignments(ctx context.Context, courses []*course.Course, pending map[int64]needs) {
	targets := flagged(courses, pending, func(n needs) bool { return n.assignments })

	results := fanout.Run(ctx, targets, l.chunkSize, func(ctx context.Context, c *course.Course) ([]*course.Assignment, error) {
		return loadSlot(ctx, l, cache.CourseOwner(c.ID), cache.KindAssignments, func(ctx context.Context) ([]*course.Assignment, error) {
			return l.api.CourseAssignments(ctx, c.ID)
		})
	})

	for i, r := range results {
		if r == nil {
			continue
		}
		for _, a := range *r {
			a.DescriptionText = l.render(a.Description)
		}
		targets[i].Assignments = *r
	}
}

// flagged selects the subset of courses whose pending record still wants a
// given resource kind, preserving course order.
func flagged(courses []*course.Course, pending map[int64]needs, want func(needs) bool) []*course.Course {
	var out []*course.Course
	for _, c := range courses {
		if want(pending[c.ID]) {
			out = append(out, c)
		}
	}
	return out
}

// filterGroups drops groups whose course is not in the retained set. The
// cached group list is left untouched.
func filterGroups(groups []*course.Group, courses []*course.Course) []*course.Group {
	retained := make(map[int64]bool, len(courses))
	for _, c := range courses {
		retained[c.ID] = true
	}

	var kept []*course.Group
	for _, g := range groups {
		if retained[g.CourseID] {
			kept = append(kept, g)
		}
	}
	return kept
}
