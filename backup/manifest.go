package backup

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/zeebo/blake3"
)

// ManifestName is the name of the manifest file in every backup folder.
const ManifestName = ".qalam-manifest.json"

// Entry is the manifest record of a single file.
type Entry struct {
	Size   int64  `json:"size"`
	BLAKE3 string `json:"blake3"`
}

// Manifest lists the files of a backup with their checksums. Paths are
// relative to the backup folder and use forward slashes.
type Manifest struct {
	Version int              `json:"version"`
	Created time.Time        `json:"created"`
	Files   map[string]Entry `json:"files"`
}

func newHasher() hash.Hash {
	return blake3.New()
}

func newManifest(t time.Time) *Manifest {
	return &Manifest{Version: 1, Created: t, Files: make(map[string]Entry)}
}

func (mf *Manifest) add(rel string, sum []byte, size int64) {
	mf.Files[rel] = Entry{Size: size, BLAKE3: hex.EncodeToString(sum)}
}

// Paths returns the file paths of the manifest in sorted order.
func (mf *Manifest) Paths() []string {
	paths := make([]string, 0, len(mf.Files))
	for p := range mf.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (mf *Manifest) write(dir string) error {
	data, err := json.MarshalIndent(mf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ManifestName), data, 0o644)
}

// ReadManifest reads the manifest of backup b.
func ReadManifest(b Backup) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(b.Path, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("backup %s: reading manifest: %w", b.Name, err)
	}
	mf := newManifest(time.Time{})
	if err := json.Unmarshal(data, mf); err != nil {
		return nil, fmt.Errorf("backup %s: manifest: %v: %w", b.Name, err, ErrCorrupt)
	}
	return mf, nil
}

// Verify checks the files of backup b against its manifest. Missing, extra
// and modified files make a backup corrupt.
func (m *Manager) Verify(b Backup) error {
	if err := m.owns(b); err != nil {
		return err
	}
	mf, err := ReadManifest(b)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(mf.Files))
	err = filepath.WalkDir(b.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !d.Type().IsRegular() {
			return err
		}
		rel, err := filepath.Rel(b.Path, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == ManifestName {
			return nil
		}
		entry, ok := mf.Files[rel]
		if !ok {
			return fmt.Errorf("backup %s: unexpected file %s: %w", b.Name, rel, ErrCorrupt)
		}
		seen[rel] = true
		sum, size, err := checksum(path)
		if err != nil {
			return err
		}
		want, _ := hex.DecodeString(entry.BLAKE3)
		if size != entry.Size || !bytes.Equal(sum, want) {
			return fmt.Errorf("backup %s: file %s modified: %w", b.Name, rel, ErrCorrupt)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, p := range mf.Paths() {
		if !seen[p] {
			return fmt.Errorf("backup %s: file %s missing: %w", b.Name, p, ErrCorrupt)
		}
	}
	tracer().Debugf("backup %s verified, %d files", b.Name, len(mf.Files))
	return nil
}

func checksum(path string) ([]byte, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	sum := blake3.Sum256(data)
	return sum[:], int64(len(data)), nil
}
