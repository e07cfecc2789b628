package arabic

import (
	"github.com/npillmayer/qalam"
)

// Extension offers the diacritics palette as menu items, plus an item for
// removing diacritics.
type Extension struct {
	host qalam.Host
	caps qalam.Capabilities
	lang qalam.UILanguage
}

var _ qalam.Extension = (*Extension)(nil)

// NewExtension creates the diacritics extension with menu labels in lang.
func NewExtension(lang qalam.UILanguage) *Extension {
	return &Extension{lang: lang}
}

// Name is part of interface qalam.Extension.
func (x *Extension) Name() string {
	return "tashkeel"
}

// Attach is part of interface qalam.Extension.
func (x *Extension) Attach(host qalam.Host, caps qalam.Capabilities) error {
	x.host = host
	x.caps = caps
	return nil
}

var removeLabel = qalam.Label{En: "Remove diacritics", Ar: "إزالة التشكيل"}

// MenuItems is part of interface qalam.Extension.
func (x *Extension) MenuItems() []qalam.MenuItem {
	items := make([]qalam.MenuItem, 0, len(Palette)+1)
	for _, m := range Palette {
		mark := m
		name := "Insert " + mark.Name
		if x.lang == qalam.Arabic {
			name = "إدراج " + mark.Arabic
		}
		items = append(items, qalam.MenuItem{
			Name:     name,
			Callback: func() { x.caps.ShowError("Insert diacritic", x.InsertMark(mark)) },
		})
	}
	items = append(items, qalam.MenuItem{
		Name:     removeLabel.In(x.lang),
		Callback: func() { x.caps.ShowError("Remove diacritics", x.RemoveDiacritics()) },
	})
	return items
}

// InsertMark inserts a mark at the cursor of the current editor.
func (x *Extension) InsertMark(mark Mark) error {
	ed := x.host.CurrentEditor()
	if ed == nil {
		return qalam.ErrNoEditor
	}
	ed.Cursor().InsertText(string(mark.Rune))
	return nil
}

// RemoveDiacritics strips diacritics from the selection or, if nothing is
// selected, from the whole document.
func (x *Extension) RemoveDiacritics() error {
	ed := x.host.CurrentEditor()
	if ed == nil {
		return qalam.ErrNoEditor
	}
	c := ed.Cursor()
	if !c.HasSelection() {
		c.Select(0, ed.Len())
	}
	stripped, err := StripTashkeel(c.SelectedText())
	if err != nil {
		return err
	}
	c.InsertText(stripped)
	tracer().Debugf("removed diacritics")
	return nil
}
