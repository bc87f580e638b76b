package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Kind names the resource granularity entries are cached at.
type Kind string

const (
	KindUsers         Kind = "users"
	KindPages         Kind = "pages"
	KindModules       Kind = "modules"
	KindAnnouncements Kind = "announcements"
	KindAssignments   Kind = "assignments"

	KindProfile     Kind = "profile"
	KindEnrollments Kind = "enrollments"
	KindGroups      Kind = "groups"
)

// globalOwner scopes single-owner resources such as the current user.
const globalOwner = "self"

// CourseOwner keys cache entries belonging to a course.
func CourseOwner(id int64) string {
	return fmt.Sprintf("course-%d", id)
}

// GroupOwner keys cache entries belonging to a user group.
func GroupOwner(id int64) string {
	return fmt.Sprintf("group-%d", id)
}

// Cache persists per-owner, per-kind JSON snapshots on disk. Freshness comes
// from the file's modification time: an entry older than maxAge is treated
// as absent on load but is not deleted until someone overwrites or clears it.
type Cache struct {
	dir    string
	maxAge time.Duration
	now    func() time.Time
}

// New creates a cache rooted at dir. Entries older than maxAge read as
// missing.
func New(dir string, maxAge time.Duration) *Cache {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logrus.WithError(err).Warn("failed to create cache directory")
	}
	return &Cache{dir: dir, maxAge: maxAge, now: time.Now}
}

func (c *Cache) path(owner string, kind Kind) string {
	return filepath.Join(c.dir, owner, string(kind)+".json")
}

// Save serializes v into the entry for (owner, kind), creating the owner
// directory on first use and overwriting any previous entry.
func (c *Cache) Save(owner string, kind Kind, v any) error {
	if err := os.MkdirAll(filepath.Join(c.dir, owner), 0o755); err != nil {
		return fmt.Errorf("create cache scope %s: %w", owner, err)
	}

	file, err := os.Create(c.path(owner, kind))
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	return nil
}

// Load reads the entry for (owner, kind) into out. It reports false when the
// entry is missing, older than the max age, or fails to decode; decode
// failures are logged and otherwise treated like a miss.
func (c *Cache) Load(owner string, kind Kind, out any) bool {
	p := c.path(owner, kind)

	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	if c.now().Sub(info.ModTime()) >= c.maxAge {
		return false
	}

	file, err := os.Open(p)
	if err != nil {
		return false
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(out); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"owner": owner,
			"kind":  kind,
		}).Warn("failed to decode cache entry")
		return false
	}
	return true
}

// SaveGlobal stores a single-owner resource keyed by kind alone.
func (c *Cache) SaveGlobal(kind Kind, v any) error {
	return c.Save(globalOwner, kind, v)
}

// LoadGlobal reads a single-owner resource keyed by kind alone.
func (c *Cache) LoadGlobal(kind Kind, out any) bool {
	return c.Load(globalOwner, kind, out)
}

// Clear removes one entry. A missing entry is not an error.
func (c *Cache) Clear(owner string, kind Kind) error {
	if err := os.Remove(c.path(owner, kind)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear cache entry: %w", err)
	}
	return nil
}

// ClearGlobal removes one global-scope entry.
func (c *Cache) ClearGlobal(kind Kind) error {
	return c.Clear(globalOwner, kind)
}

// ClearAll wipes every entry, used on logout/reset.
func (c *Cache) ClearAll() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("recreate cache directory: %w", err)
	}
	return nil
}

// Info describes one entry for inspection.
type Info struct {
	Exists  bool
	Size    int64
	ModTime time.Time
	Fresh   bool
}

// EntryInfo reports the on-disk state of one entry.
func (c *Cache) EntryInfo(owner string, kind Kind) Info {
	stat, err := os.Stat(c.path(owner, kind))
	if err != nil {
		return Info{}
	}
	return Info{
		Exists:  true,
		Size:    stat.Size(),
		ModTime: stat.ModTime(),
		Fresh:   c.now().Sub(stat.ModTime()) < c.maxAge,
	}
}

// GlobalInfo reports the on-disk state of one global-scope entry.
func (c *Cache) GlobalInfo(kind Kind) Info {
	return c.EntryInfo(globalOwner, kind)
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string {
	return c.dir
}
