package autocorrect

import (
	"github.com/npillmayer/qalam"
)

// Extension offers the corrector to the host. Auto-correction starts
// disabled.
type Extension struct {
	*Corrector
	host qalam.Host
	caps qalam.Capabilities
	lang qalam.UILanguage
}

var _ qalam.Extension = (*Extension)(nil)
var _ qalam.EditorListener = (*Extension)(nil)
var _ qalam.Closer = (*Extension)(nil)

// NewExtension creates the auto-correction extension.
func NewExtension(lang qalam.UILanguage) *Extension {
	return &Extension{Corrector: NewCorrector(), lang: lang}
}

// Name is part of interface qalam.Extension.
func (x *Extension) Name() string {
	return "autocorrect"
}

// Attach is part of interface qalam.Extension.
func (x *Extension) Attach(host qalam.Host, caps qalam.Capabilities) error {
	x.host = host
	x.caps = caps
	x.EditorChanged(host.CurrentEditor())
	return nil
}

var (
	toggleLabel = qalam.Label{En: "Toggle auto-correction", Ar: "تبديل التصحيح التلقائي"}
	onLabel     = qalam.Label{En: "Auto-correction on", Ar: "التصحيح التلقائي مفعل"}
	offLabel    = qalam.Label{En: "Auto-correction off", Ar: "التصحيح التلقائي معطل"}
)

// MenuItems is part of interface qalam.Extension.
func (x *Extension) MenuItems() []qalam.MenuItem {
	return []qalam.MenuItem{{
		Name: toggleLabel.In(x.lang),
		Callback: func() {
			if x.Toggle() {
				x.caps.Notify(onLabel.In(x.lang))
			} else {
				x.caps.Notify(offLabel.In(x.lang))
			}
		},
	}}
}

// Close is part of interface qalam.Closer. It removes the subscription.
func (x *Extension) Close() error {
	x.SetEnabled(false)
	return nil
}
