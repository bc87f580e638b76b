package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type snapshot struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	c := New(t.TempDir(), 24*time.Hour)
	want := snapshot{Name: "algebra", Count: 3}

	if err := c.Save(CourseOwner(42), KindAssignments, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got snapshot
	if !c.Load(CourseOwner(42), KindAssignments, &got) {
		t.Fatalf("expected cache hit")
	}
	if got != want {
		t.Fatalf("round trip mismatch: %+v != %+v", got, want)
	}
}

func TestLoadExpiry(t *testing.T) {
	t.Parallel()

	c := New(t.TempDir(), 24*time.Hour)
	if err := c.Save(CourseOwner(42), KindAssignments, snapshot{Name: "algebra"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got snapshot

	c.now = func() time.Time { return time.Now().Add(23*time.Hour + 59*time.Minute) }
	if !c.Load(CourseOwner(42), KindAssignments, &got) {
		t.Fatalf("expected hit just inside the freshness window")
	}

	c.now = func() time.Time { return time.Now().Add(24*time.Hour + time.Minute) }
	if c.Load(CourseOwner(42), KindAssignments, &got) {
		t.Fatalf("expected miss past the freshness window")
	}

	// Lazy invalidation: the stale file is still on disk.
	if _, err := os.Stat(filepath.Join(c.dir, CourseOwner(42), "assignments.json")); err != nil {
		t.Fatalf("stale entry should not be deleted: %v", err)
	}
}

func TestLoadMissingAndCorruptEntries(t *testing.T) {
	t.Parallel()

	c := New(t.TempDir(), 24*time.Hour)

	var got snapshot
	if c.Load(CourseOwner(1), KindPages, &got) {
		t.Fatalf("expected miss for absent entry")
	}

	dir := filepath.Join(c.dir, CourseOwner(1))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pages.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if c.Load(CourseOwner(1), KindPages, &got) {
		t.Fatalf("expected miss for corrupt entry")
	}
}

func TestClearIsBestEffort(t *testing.T) {
	t.Parallel()

	c := New(t.TempDir(), 24*time.Hour)

	if err := c.Clear(CourseOwner(7), KindModules); err != nil {
		t.Fatalf("clearing a missing entry should not fail: %v", err)
	}

	if err := c.Save(CourseOwner(7), KindModules, snapshot{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.Clear(CourseOwner(7), KindModules); err != nil {
		t.Fatalf("clear: %v", err)
	}

	var got snapshot
	if c.Load(CourseOwner(7), KindModules, &got) {
		t.Fatalf("expected miss after clear")
	}
}

func TestGlobalScope(t *testing.T) {
	t.Parallel()

	c := New(t.TempDir(), 24*time.Hour)
	want := snapshot{Name: "me"}

	if err := c.SaveGlobal(KindProfile, want); err != nil {
		t.Fatalf("save global: %v", err)
	}

	var got snapshot
	if !c.LoadGlobal(KindProfile, &got) {
		t.Fatalf("expected global hit")
	}
	if got != want {
		t.Fatalf("global round trip mismatch: %+v", got)
	}

	info := c.GlobalInfo(KindProfile)
	if !info.Exists || !info.Fresh || info.Size == 0 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestClearAll(t *testing.T) {
	t.Parallel()

	c := New(t.TempDir(), 24*time.Hour)
	if err := c.Save(CourseOwner(1), KindUsers, snapshot{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.SaveGlobal(KindProfile, snapshot{}); err != nil {
		t.Fatalf("save global: %v", err)
	}

	if err := c.ClearAll(); err != nil {
		t.Fatalf("clear all: %v", err)
	}

	var got snapshot
	if c.Load(CourseOwner(1), KindUsers, &got) || c.LoadGlobal(KindProfile, &got) {
		t.Fatalf("expected every entry gone after ClearAll")
	}
}
