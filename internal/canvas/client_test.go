package canvas

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestActiveCourses(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courses" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("missing bearer token, got %q", got)
		}
		if got := r.URL.Query().Get("enrollment_state"); got != "active" {
			t.Errorf("expected enrollment_state=active, got %q", got)
		}
		_, _ = w.Write([]byte(`[
			{"id": 42, "name": "Algebra", "course_code": "MATH-101",
			 "term": {"id": 7, "name": "Fall", "start_at": "2026-08-01T00:00:00Z", "end_at": null}},
			{"id": 43, "name": "History", "course_code": "HIST-200", "term": null}
		]`))
	}))
	defer server.Close()

	client := New(server.URL, "secret", server.Client())
	courses, err := client.ActiveCourses(context.Background())
	if err != nil {
		t.Fatalf("ActiveCourses: %v", err)
	}

	if len(courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(courses))
	}
	if courses[0].ID != 42 || courses[0].Name != "Algebra" {
		t.Fatalf("unexpected first course: %+v", courses[0])
	}
	if courses[0].Term == nil || courses[0].Term.StartAt == nil || courses[0].Term.EndAt != nil {
		t.Fatalf("term not decoded: %+v", courses[0].Term)
	}
	if courses[1].Term != nil {
		t.Fatalf("null term should decode to nil")
	}
}

func TestCourseColors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/users/self/colors" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"custom_colors": {"course_42": "#1a73e8"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "secret", server.Client())
	colors, err := client.CourseColors(context.Background())
	if err != nil {
		t.Fatalf("CourseColors: %v", err)
	}
	if colors["course_42"] != "#1a73e8" {
		t.Fatalf("unexpected colors: %v", colors)
	}
}

func TestNonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(server.URL, "bad-token", server.Client())
	_, err := client.Self(context.Background())
	if err == nil {
		t.Fatalf("expected error for 401")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status code %d", statusErr.StatusCode)
	}
}

func TestDecodeFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := New(server.URL, "secret", server.Client())
	_, err := client.CourseAssignments(context.Background(), 42)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestCourseAssignmentsDecoding(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courses/42/assignments" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Essay", "due_at": "2026-09-15T23:59:00Z", "points_possible": 50, "quiz_id": 0},
			{"id": 2, "name": "Quiz 1", "due_at": null, "quiz_id": 900}
		]`))
	}))
	defer server.Close()

	client := New(server.URL, "secret", server.Client())
	assignments, err := client.CourseAssignments(context.Background(), 42)
	if err != nil {
		t.Fatalf("CourseAssignments: %v", err)
	}

	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(assignments))
	}
	if assignments[0].DueAt == nil || assignments[0].PointsPossible != 50 {
		t.Fatalf("unexpected first assignment: %+v", assignments[0])
	}
	if assignments[1].DueAt != nil || assignments[1].QuizID != 900 {
		t.Fatalf("unexpected second assignment: %+v", assignments[1])
	}
}
