package backup

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/ulikunitz/xz"
)

// Archive writes backup b as a tar.xz stream to w. Entries are placed in a
// folder named like the backup. The manifest is included.
func (m *Manager) Archive(b Backup, w io.Writer) error {
	if err := m.owns(b); err != nil {
		return err
	}
	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating xz writer: %w", err)
	}
	tw := tar.NewWriter(xw)
	err = filepath.WalkDir(b.Path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(b.Path, p)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = path.Join(b.Name, filepath.ToSlash(rel))
		if d.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return fmt.Errorf("archiving backup %s: %w", b.Name, err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("archiving backup %s: %w", b.Name, err)
	}
	if err := xw.Close(); err != nil {
		return fmt.Errorf("archiving backup %s: %w", b.Name, err)
	}
	tracer().Infof("archived backup %s", b.Name)
	return nil
}

// ArchiveExt is the file extension of exported backups.
const ArchiveExt = ".tar.xz"

// ArchiveFile writes backup b as a tar.xz file. An incomplete file is removed.
func (m *Manager) ArchiveFile(b Backup, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("archiving backup %s: %w", b.Name, err)
	}
	err = m.Archive(b, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("archiving backup %s: %w", b.Name, cerr)
	}
	if err != nil {
		os.Remove(name)
	}
	return err
}
