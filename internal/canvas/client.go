package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coursenest/internal/course"
)

// Client talks to a Canvas-compatible REST API with bearer-token auth. Every
// fetch returns either a full resource list or an error; there are no
// partial results. Calls are idempotent and safe to retry.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New wires a client for the given API root. A nil http.Client gets a
// 30-second-timeout default.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Path: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Self fetches the current user's profile.
func (c *Client) Self(ctx context.Context) (*course.User, error) {
	var user course.User
	if err := c.get(ctx, "/api/v1/users/self", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SelfEnrollments fetches all enrollments of the current user.
func (c *Client) SelfEnrollments(ctx context.Context) ([]course.Enrollment, error) {
	var enrollments []course.Enrollment
	q := url.Values{"per_page": {"100"}}
	if err := c.get(ctx, "/api/v1/users/self/enrollments", q, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

// SelfGroups fetches the groups the current user belongs to.
func (c *Client) SelfGroups(ctx context.Context) ([]*course.Group, error) {
	var groups []*course.Group
	q := url.Values{"per_page": {"100"}}
	if err := c.get(ctx, "/api/v1/users/self/groups", q, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// GroupUsers fetches the members of one group.
func (c *Client) GroupUsers(ctx context.Context, groupID int64) ([]course.User, error) {
	var users []course.User
	q := url.Values{"per_page": {"100"}}
	if err := c.get(ctx, fmt.Sprintf("/api/v1/groups/%d/users", groupID), q, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GroupAnnouncements fetches the announcement stream of one group.
func (c *Client) GroupAnnouncements(ctx context.Context, groupID int64) ([]*course.Announcement, error) {
	var announcements []*course.Announcement
	q := url.Values{"only_announcements": {"true"}, "per_page": {"100"}}
	if err := c.get(ctx, fmt.Sprintf("/api/v1/groups/%d/discussion_topics", groupID), q, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

// CourseColors fetches the user's custom per-course color map. Keys look
// like "course_12345".
func (c *Client) CourseColors(ctx context.Context) (map[string]string, error) {
	var payload struct {
		CustomColors map[string]string `json:"custom_colors"`
	}
	if err := c.get(ctx, "/api/v1/users/self/colors", nil, &payload); err != nil {
		return nil, err
	}
	return payload.CustomColors, nil
}

// ActiveCourses fetches all courses with an active enrollment, including
// term and syllabus body.
func (c *Client) ActiveCourses(ctx context.Context) ([]*course.Course, error) {
	var courses []*course.Course
	q := url.Values{
		"enrollment_state": {"active"},
		"include[]":        {"term", "syllabus_body"},
		"per_page":         {"100"},
	}
	if err := c.get(ctx, "/api/v1/courses", q, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// CourseUsers fetches a course's members with their enrollments.
func (c *Client) CourseUsers(ctx context.Context, courseID int64) ([]course.User, error) {
	var users []course.User
	q := url.Values{"include[]": {"enrollments"}, "per_page": {"100"}}
	if err := c.get(ctx, fmt.Sprintf("/api/v1/courses/%d/users", courseID), q, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CoursePages fetches a course's wiki pages with bodies.
func (c *Client) CoursePages(ctx context.Context, courseID int64) ([]*course.Page, error) {
	var pages []*course.Page
	q := url.Values{"include[]": {"body"}, "per_page": {"100"}}
	if err := c.get(ctx, fmt.Sprintf("/api/v1/courses/%d/pages", courseID), q, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// CourseModules fetches a course's modules with their items.
func (c *Client) CourseModules(ctx context.Context, courseID int64) ([]*course.Module, error) {
	var modules []*course.Module
	q := url.Values{"include[]": {"items"}, "per_page": {"100"}}
	if err := c.get(ctx, fmt.Sprintf("/api/v1/courses/%d/modules", courseID), q, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

// CourseAnnouncements fetches a course's announcement stream.
func (c *Client) CourseAnnouncements(ctx context.Context, courseID int64) ([]*course.Announcement, error) {
	var announcements []*course.Announcement
	q := url.Values{"only_announcements": {"true"}, "per_page": {"100"}}
	if err := c.get(ctx, fmt.Sprintf("/api/v1/courses/%d/discussion_topics", courseID), q, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

// CourseAssignments fetches a course's assignments.
func (c *Client) CourseAssignments(ctx context.Context, courseID int64) ([]*course.Assignment, error) {
	var assignments []*course.Assignment
	q := url.Values{"per_page": {"100"}}
	if err := c.get(ctx, fmt.Sprintf("/api/v1/courses/%d/assignments", courseID), q, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}
