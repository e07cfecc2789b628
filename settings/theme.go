package settings

// Keys of the theme settings block in the editor's shared settings.
const (
	ThemeKey           = "editor.syntax_highlighting.theme"
	AvailableThemesKey = "editor.syntax_highlighting.available_themes"
)

// Theme returns the selected theme and the list of available themes from
// the shared settings. Either may be empty if not configured.
func Theme(f *File) (string, []string) {
	current := f.Get(ThemeKey).String()
	var available []string
	for _, v := range f.Get(AvailableThemesKey).Array() {
		if s := v.String(); s != "" {
			available = append(available, s)
		}
	}
	return current, available
}

// SetTheme writes the selected theme and saves the shared settings.
func SetTheme(f *File, theme string) error {
	if err := f.Set(ThemeKey, theme); err != nil {
		return err
	}
	return f.Save()
}
