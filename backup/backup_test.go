package backup

import (
	"archive/tar"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/npillmayer/qalam"
	"github.com/npillmayer/qalam/internal/memhost"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

var pi = time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)

func fixedClock() time.Time { return pi }

func writeTree(t *testing.T, dir string, files map[string]string) {
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

var sample = map[string]string{
	"notes.txt":       "سلام\n",
	"src/main.txt":    "hello\n",
	"src/deep/x.json": `{"a": 1}`,
}

func TestParseName(t *testing.T) {
	n, tm, err := ParseName("12-2025_03_14_09_26")
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.True(t, tm.Equal(pi.Truncate(time.Minute)))
	assert.Equal(t, "12-2025_03_14_09_26", Name(12, pi))
	for _, bad := range []string{"backup", "1-2025_03_14", "x-2025_03_14_09_26", "1-2025_13_14_09_26", "-2025_03_14_09_26"} {
		_, _, err := ParseName(bad)
		assert.ErrorIs(t, err, ErrNotBackup, bad)
	}
}

func TestListAndNextNumber(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.backup")
	defer teardown()
	//
	root := t.TempDir()
	for _, name := range []string{"1-2024_01_01_10_00", "5-2024_01_03_10_00", "2-2024_01_02_10_00", "junk", "3-2024"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, name), 0o755))
	}
	// files never count as backups
	require.NoError(t, os.WriteFile(filepath.Join(root, "7-2024_01_01_10_00"), nil, 0o644))
	m := NewManager(root)
	backups, err := m.List()
	require.NoError(t, err)
	require.Len(t, backups, 3)
	assert.Equal(t, 1, backups[0].Number)
	assert.Equal(t, 2, backups[1].Number)
	assert.Equal(t, 5, backups[2].Number)
	n, err := m.NextNumber()
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	latest, err := m.Latest()
	require.NoError(t, err)
	assert.Equal(t, "5-2024_01_03_10_00", latest.Name)
}

func TestEmptyRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.backup")
	defer teardown()
	//
	m := NewManager(filepath.Join(t.TempDir(), "none"))
	backups, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, backups)
	n, err := m.NextNumber()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = m.Latest()
	assert.ErrorIs(t, err, ErrNoBackups)
}

func TestCreateAndVerify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.backup")
	defer teardown()
	//
	src, root := t.TempDir(), t.TempDir()
	writeTree(t, src, sample)
	m := NewManager(root)
	m.SetClock(fixedClock)
	b, err := m.Create(src)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Number)
	assert.Equal(t, "1-2025_03_14_09_26", b.Name)
	data, err := os.ReadFile(filepath.Join(b.Path, "src", "deep", "x.json"))
	require.NoError(t, err)
	assert.Equal(t, sample["src/deep/x.json"], string(data))
	//
	mf, err := ReadManifest(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt", "src/deep/x.json", "src/main.txt"}, mf.Paths())
	assert.Equal(t, int64(6), mf.Files["src/main.txt"].Size)
	assert.Len(t, mf.Files["notes.txt"].BLAKE3, 64)
	require.NoError(t, m.Verify(b))
	//
	b2, err := m.Create(src)
	require.NoError(t, err)
	assert.Equal(t, 2, b2.Number)
}

func TestVerifyDetectsChanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.backup")
	defer teardown()
	//
	src, root := t.TempDir(), t.TempDir()
	writeTree(t, src, sample)
	m := NewManager(root)
	b, err := m.Create(src)
	require.NoError(t, err)
	//
	p := filepath.Join(b.Path, "src", "main.txt")
	require.NoError(t, os.WriteFile(p, []byte("HELLO\n"), 0o644))
	assert.ErrorIs(t, m.Verify(b), ErrCorrupt)
	require.NoError(t, os.Remove(p))
	assert.ErrorIs(t, m.Verify(b), ErrCorrupt)
	writeTree(t, b.Path, map[string]string{"src/main.txt": "hello\n"})
	require.NoError(t, m.Verify(b))
	writeTree(t, b.Path, map[string]string{"intruder.txt": "boo"})
	assert.ErrorIs(t, m.Verify(b), ErrCorrupt)
}

func TestCreateSkipsBackupRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.backup")
	defer teardown()
	//
	src := t.TempDir()
	writeTree(t, src, sample)
	m := NewManager(filepath.Join(src, ".backups"))
	_, err := m.Create(src)
	require.NoError(t, err)
	b, err := m.Create(src)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(b.Path, ".backups"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	require.NoError(t, m.Verify(b))
}

func TestRestoreAndDelete(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.backup")
	defer teardown()
	//
	src, root := t.TempDir(), t.TempDir()
	writeTree(t, src, sample)
	m := NewManager(root)
	b, err := m.Create(src)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(filepath.Join(src, "src")))
	writeTree(t, src, map[string]string{"notes.txt": "changed"})
	//
	require.NoError(t, m.Restore(b, src))
	for name, content := range sample {
		data, err := os.ReadFile(filepath.Join(src, filepath.FromSlash(name)))
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	}
	_, err = os.Stat(filepath.Join(src, ManifestName))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	//
	require.NoError(t, m.Delete(b))
	_, err = m.Latest()
	assert.ErrorIs(t, err, ErrNoBackups)
	//
	foreign := Backup{Number: 1, Name: "1-2025_03_14_09_26", Path: filepath.Join(src, "1-2025_03_14_09_26")}
	assert.ErrorIs(t, m.Delete(foreign), ErrNotBackup)
}

// readArchive unpacks the regular files of a tar.xz stream.
func readArchive(t *testing.T, r io.Reader) map[string]string {
	xr, err := xz.NewReader(r)
	require.NoError(t, err)
	tr := tar.NewReader(xr)
	files := make(map[string]string)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		data, err := io.ReadAll(tr)
		require.NoError(t, err)
		files[hdr.Name] = string(data)
	}
	return files
}

func TestArchive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.backup")
	defer teardown()
	//
	src, root := t.TempDir(), t.TempDir()
	writeTree(t, src, sample)
	m := NewManager(root)
	m.SetClock(fixedClock)
	b, err := m.Create(src)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, m.Archive(b, &buf))
	files := readArchive(t, &buf)
	assert.Equal(t, "hello\n", files["1-2025_03_14_09_26/src/main.txt"])
	assert.Contains(t, files, "1-2025_03_14_09_26/"+ManifestName)
	assert.Len(t, files, 4)
}

func TestExtensionMenu(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.backup")
	defer teardown()
	//
	src, root := t.TempDir(), t.TempDir()
	writeTree(t, src, sample)
	host := memhost.New()
	x := NewExtension(src, root, qalam.English)
	loader := qalam.NewLoader(host, host.Capabilities())
	require.NoError(t, loader.Register(x))
	//
	require.NoError(t, loader.Trigger("Restore latest backup"))
	msg, ok := host.LastError()
	require.True(t, ok)
	assert.Equal(t, "Backup", msg.Title)
	assert.Equal(t, ErrNoBackups.Error(), msg.Text)
	//
	require.NoError(t, loader.Trigger("Create backup"))
	require.NoError(t, loader.Trigger("Verify latest backup"))
	require.NoError(t, loader.Trigger("List backups"))
	assert.Len(t, host.Errors, 1)
	require.Len(t, host.Infos, 1)
	assert.Contains(t, host.Infos[0].Text, "#1 ")
	//
	require.NoError(t, os.Remove(filepath.Join(src, "notes.txt")))
	require.NoError(t, loader.Trigger("Restore latest backup"))
	_, err := os.Stat(filepath.Join(src, "notes.txt"))
	assert.NoError(t, err)
	assert.Len(t, host.Errors, 1)
}

func TestExportLatestThroughMenu(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.backup")
	defer teardown()
	//
	src, root := t.TempDir(), t.TempDir()
	writeTree(t, src, sample)
	host := memhost.New()
	x := NewExtension(src, root, qalam.English)
	x.Manager().SetClock(fixedClock)
	loader := qalam.NewLoader(host, host.Capabilities())
	require.NoError(t, loader.Register(x))
	//
	require.NoError(t, loader.Trigger("Export latest backup"))
	msg, ok := host.LastError()
	require.True(t, ok)
	assert.Equal(t, ErrNoBackups.Error(), msg.Text)
	//
	require.NoError(t, loader.Trigger("Create backup"))
	require.NoError(t, loader.Trigger("Export latest backup"))
	assert.Len(t, host.Errors, 1)
	name := filepath.Join(root, "1-2025_03_14_09_26"+ArchiveExt)
	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	files := readArchive(t, f)
	assert.Equal(t, "hello\n", files["1-2025_03_14_09_26/src/main.txt"])
	// the archive file is not taken for a backup
	backups, err := x.Manager().List()
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}
