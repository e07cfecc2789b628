package backup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/emirpasic/gods/maps/treemap"
)

// TimeLayout is the layout of the timestamp part of backup folder names.
const TimeLayout = "2006_01_02_15_04"

var namePattern = regexp.MustCompile(`^(\d+)-(\d{4}_\d{2}_\d{2}_\d{2}_\d{2})$`)

// Errors of the backup manager.
var (
	ErrNoBackups = errors.New("no backups")
	ErrCorrupt   = errors.New("backup corrupt")
	ErrNotBackup = errors.New("not a backup folder")
)

// Backup is a single backup folder.
type Backup struct {
	Number int
	Time   time.Time
	Name   string // folder name
	Path   string // full path of the folder
}

func (b Backup) String() string {
	return fmt.Sprintf("#%d %s", b.Number, b.Time.Format("2006-01-02 15:04"))
}

// Name returns the folder name for backup number n created at t.
func Name(n int, t time.Time) string {
	return fmt.Sprintf("%d-%s", n, t.Format(TimeLayout))
}

// ParseName splits a backup folder name into number and time.
func ParseName(name string) (int, time.Time, error) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, time.Time{}, fmt.Errorf("%q: %w", name, ErrNotBackup)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%q: %w", name, ErrNotBackup)
	}
	t, err := time.ParseInLocation(TimeLayout, m[2], time.Local)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%q: %w", name, ErrNotBackup)
	}
	return n, t, nil
}

// Manager handles the backups in a backup root folder.
type Manager struct {
	root string
	now  func() time.Time
}

// NewManager creates a manager for backups in root. The folder is created on
// the first backup.
func NewManager(root string) *Manager {
	return &Manager{root: root, now: time.Now}
}

// Root returns the backup root folder.
func (m *Manager) Root() string {
	return m.root
}

// SetClock replaces the clock used for timestamps.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// List returns all backups, ordered by number. A missing root folder holds no
// backups.
func (m *Manager) List() ([]Backup, error) {
	entries, err := os.ReadDir(m.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}
	byNumber := treemap.NewWithIntComparator()
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		n, t, err := ParseName(e.Name())
		if err != nil {
			continue
		}
		byNumber.Put(n, Backup{
			Number: n,
			Time:   t,
			Name:   e.Name(),
			Path:   filepath.Join(m.root, e.Name()),
		})
	}
	backups := make([]Backup, 0, byNumber.Size())
	for _, v := range byNumber.Values() {
		backups = append(backups, v.(Backup))
	}
	tracer().Debugf("found %d backups in %s", len(backups), m.root)
	return backups, nil
}

// NextNumber returns the number for the next backup, i.e. the highest number
// in use plus one.
func (m *Manager) NextNumber() (int, error) {
	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) == 0 {
		return 1, nil
	}
	return backups[len(backups)-1].Number + 1, nil
}

// Latest returns the backup with the highest number.
func (m *Manager) Latest() (Backup, error) {
	backups, err := m.List()
	if err != nil {
		return Backup{}, err
	}
	if len(backups) == 0 {
		return Backup{}, ErrNoBackups
	}
	return backups[len(backups)-1], nil
}

// Find returns the backup with number n.
func (m *Manager) Find(n int) (Backup, error) {
	backups, err := m.List()
	if err != nil {
		return Backup{}, err
	}
	for _, b := range backups {
		if b.Number == n {
			return b, nil
		}
	}
	return Backup{}, fmt.Errorf("backup #%d: %w", n, ErrNoBackups)
}

// Create copies the folder src into a new backup and writes its manifest.
// If the backup root is located inside src, it is not copied.
func (m *Manager) Create(src string) (Backup, error) {
	info, err := os.Stat(src)
	if err != nil {
		return Backup{}, fmt.Errorf("backup source: %w", err)
	}
	if !info.IsDir() {
		return Backup{}, fmt.Errorf("backup source %s is not a folder", src)
	}
	n, err := m.NextNumber()
	if err != nil {
		return Backup{}, err
	}
	t := m.now().Truncate(time.Minute)
	b := Backup{Number: n, Time: t, Name: Name(n, t)}
	b.Path = filepath.Join(m.root, b.Name)
	if err := os.MkdirAll(b.Path, 0o755); err != nil {
		return Backup{}, fmt.Errorf("creating backup folder: %w", err)
	}
	skip, _ := filepath.Abs(m.root)
	mf := newManifest(t)
	err = copyTree(src, b.Path, skip, func(rel string, sum []byte, size int64) {
		mf.add(rel, sum, size)
	})
	if err == nil {
		err = mf.write(b.Path)
	}
	if err != nil {
		_ = os.RemoveAll(b.Path)
		return Backup{}, fmt.Errorf("creating backup %s: %w", b.Name, err)
	}
	tracer().Infof("created backup %s with %d files", b.Name, len(mf.Files))
	return b, nil
}

// Restore copies the files of backup b into dst. Existing files are
// overwritten, other files in dst are left alone.
func (m *Manager) Restore(b Backup, dst string) error {
	if err := m.owns(b); err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("restoring backup %s: %w", b.Name, err)
	}
	err := copyTree(b.Path, dst, "", nil)
	if err != nil {
		return fmt.Errorf("restoring backup %s: %w", b.Name, err)
	}
	tracer().Infof("restored backup %s to %s", b.Name, dst)
	return nil
}

// Delete removes backup b.
func (m *Manager) Delete(b Backup) error {
	if err := m.owns(b); err != nil {
		return err
	}
	if err := os.RemoveAll(b.Path); err != nil {
		return fmt.Errorf("deleting backup %s: %w", b.Name, err)
	}
	tracer().Infof("deleted backup %s", b.Name)
	return nil
}

// owns checks that b is a backup folder directly below the root.
func (m *Manager) owns(b Backup) error {
	if _, _, err := ParseName(b.Name); err != nil {
		return err
	}
	if filepath.Clean(b.Path) != filepath.Join(m.root, b.Name) {
		return fmt.Errorf("%s: %w", b.Path, ErrNotBackup)
	}
	info, err := os.Stat(b.Path)
	if err != nil {
		return fmt.Errorf("backup %s: %w", b.Name, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", b.Path, ErrNotBackup)
	}
	return nil
}

// copyTree copies all regular files below src into dst. Entries whose
// absolute path equals skip are left out, as is the manifest. If visit is
// non-nil it is called with the checksum of every file copied.
func copyTree(src, dst, skip string, visit func(rel string, sum []byte, size int64)) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if skip != "" {
			if abs, _ := filepath.Abs(path); abs == skip {
				return filepath.SkipDir
			}
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		switch {
		case d.IsDir():
			return os.MkdirAll(target, 0o755)
		case rel == ManifestName:
			return nil
		case !d.Type().IsRegular():
			tracer().Debugf("skipping %s, not a regular file", rel)
			return nil
		}
		sum, size, err := copyFile(path, target)
		if err != nil {
			return err
		}
		if visit != nil {
			visit(filepath.ToSlash(rel), sum, size)
		}
		return nil
	})
}

// copyFile copies a single file and returns its BLAKE3 checksum.
func copyFile(from, to string) ([]byte, int64, error) {
	in, err := os.Open(from)
	if err != nil {
		return nil, 0, err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return nil, 0, err
	}
	out, err := os.OpenFile(to, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return nil, 0, err
	}
	h := newHasher()
	size, err := io.Copy(io.MultiWriter(out, h), in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, 0, err
	}
	return h.Sum(nil), size, nil
}
