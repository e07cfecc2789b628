package backup

import (
	"path/filepath"
	"strings"

	"github.com/npillmayer/qalam"
)

// Extension backs up a project folder. Errors are shown in a dialog and end
// the operation.
type Extension struct {
	host    qalam.Host
	caps    qalam.Capabilities
	lang    qalam.UILanguage
	source  string
	manager *Manager
}

var _ qalam.Extension = (*Extension)(nil)

// NewExtension creates an extension which backs up folder source into
// backup folders below root.
func NewExtension(source, root string, lang qalam.UILanguage) *Extension {
	return &Extension{source: source, manager: NewManager(root), lang: lang}
}

// Manager returns the backup manager of the extension.
func (x *Extension) Manager() *Manager {
	return x.manager
}

// Name is part of interface qalam.Extension.
func (x *Extension) Name() string {
	return "backup"
}

// Attach is part of interface qalam.Extension.
func (x *Extension) Attach(host qalam.Host, caps qalam.Capabilities) error {
	x.host = host
	x.caps = caps
	return nil
}

var (
	createLabel  = qalam.Label{En: "Create backup", Ar: "إنشاء نسخة احتياطية"}
	restoreLabel = qalam.Label{En: "Restore latest backup", Ar: "استعادة آخر نسخة احتياطية"}
	listLabel    = qalam.Label{En: "List backups", Ar: "عرض النسخ الاحتياطية"}
	verifyLabel  = qalam.Label{En: "Verify latest backup", Ar: "التحقق من آخر نسخة احتياطية"}
	exportLabel  = qalam.Label{En: "Export latest backup", Ar: "تصدير آخر نسخة احتياطية"}
	titleLabel   = qalam.Label{En: "Backup", Ar: "النسخ الاحتياطي"}
)

// MenuItems is part of interface qalam.Extension.
func (x *Extension) MenuItems() []qalam.MenuItem {
	return []qalam.MenuItem{
		{Name: createLabel.In(x.lang), Callback: x.report(x.CreateBackup)},
		{Name: restoreLabel.In(x.lang), Callback: x.report(x.RestoreLatest)},
		{Name: listLabel.In(x.lang), Callback: x.report(x.ListBackups)},
		{Name: verifyLabel.In(x.lang), Callback: x.report(x.VerifyLatest)},
		{Name: exportLabel.In(x.lang), Callback: x.report(x.ExportLatest)},
	}
}

func (x *Extension) report(op func() error) func() {
	return func() {
		x.caps.ShowError(titleLabel.In(x.lang), op())
	}
}

// CreateBackup backs up the source folder.
func (x *Extension) CreateBackup() error {
	b, err := x.manager.Create(x.source)
	if err != nil {
		return err
	}
	x.caps.Notify("Backup " + b.Name + " created")
	return nil
}

// RestoreLatest verifies the most recent backup and copies it back into the
// source folder.
func (x *Extension) RestoreLatest() error {
	b, err := x.manager.Latest()
	if err != nil {
		return err
	}
	if err := x.manager.Verify(b); err != nil {
		return err
	}
	if err := x.manager.Restore(b, x.source); err != nil {
		return err
	}
	x.caps.Notify("Backup " + b.Name + " restored")
	return nil
}

// ListBackups shows the existing backups in an info dialog or, lacking
// dialogs, in the status bar.
func (x *Extension) ListBackups() error {
	backups, err := x.manager.List()
	if err != nil {
		return err
	}
	var lines []string
	for _, b := range backups {
		lines = append(lines, b.String())
	}
	text := "No backups"
	if len(lines) > 0 {
		text = strings.Join(lines, "\n")
	}
	if x.caps.Dialogs != nil {
		x.caps.Dialogs.ShowInfo(titleLabel.In(x.lang), text)
	} else {
		x.caps.Notify(text)
	}
	return nil
}

// VerifyLatest checks the most recent backup against its manifest.
func (x *Extension) VerifyLatest() error {
	b, err := x.manager.Latest()
	if err != nil {
		return err
	}
	if err := x.manager.Verify(b); err != nil {
		return err
	}
	x.caps.Notify("Backup " + b.Name + " is intact")
	return nil
}

// ExportLatest verifies the most recent backup and writes it as a tar.xz
// archive next to the backup folders.
func (x *Extension) ExportLatest() error {
	b, err := x.manager.Latest()
	if err != nil {
		return err
	}
	if err := x.manager.Verify(b); err != nil {
		return err
	}
	name := filepath.Join(x.manager.Root(), b.Name+ArchiveExt)
	if err := x.manager.ArchiveFile(b, name); err != nil {
		return err
	}
	x.caps.Notify("Backup " + b.Name + " exported to " + name)
	return nil
}
