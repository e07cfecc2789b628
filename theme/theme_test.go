package theme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/qalam"
	"github.com/npillmayer/qalam/internal/memhost"
	"github.com/npillmayer/qalam/settings"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const shared = `{
  "editor": {
    "font": "Amiri",
    "syntax_highlighting": {
      "theme": "nord",
      "available_themes": ["nord", "dracula", "paper"]
    }
  },
  "recent": ["a.txt", "b.txt"]
}`

func attach(t *testing.T, content string) (*memhost.Host, *Extension, string) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	host := memhost.New()
	x := NewExtension(path, qalam.English)
	require.NoError(t, x.Attach(host, host.Capabilities()))
	return host, x, path
}

func TestDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.theme")
	defer teardown()
	//
	host, x, _ := attach(t, "")
	assert.Empty(t, host.Errors)
	assert.Equal(t, Default, x.Current())
	assert.Equal(t, Builtin, x.Available())
}

func TestSettingsBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.theme")
	defer teardown()
	//
	_, x, _ := attach(t, shared)
	assert.Equal(t, "nord", x.Current())
	assert.Equal(t, []string{"nord", "dracula", "paper"}, x.Available())
}

func TestSelectPreservesOtherKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.theme")
	defer teardown()
	//
	host, x, path := attach(t, shared)
	require.NoError(t, x.Select("paper"))
	assert.Equal(t, "paper", x.Current())
	assert.Equal(t, []string{"Theme: paper"}, host.Status)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "paper", gjson.GetBytes(data, "editor.syntax_highlighting.theme").String())
	assert.Equal(t, "Amiri", gjson.GetBytes(data, "editor.font").String())
	assert.Equal(t, int64(2), gjson.GetBytes(data, "recent.#").Int())
	//
	assert.ErrorIs(t, x.Select("monokai"), ErrUnknownTheme)
}

func TestChooseThroughMenu(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.theme")
	defer teardown()
	//
	host, x, _ := attach(t, "")
	items := x.MenuItems()
	require.Len(t, items, 1)
	assert.Equal(t, "Select theme", items[0].Name)
	// cancelled
	items[0].Callback()
	assert.Equal(t, Default, x.Current())
	require.Len(t, host.Choices, 1)
	assert.Equal(t, Default, host.Choices[0].Text)
	// picked
	host.Answers = []string{"dracula"}
	items[0].Callback()
	assert.Equal(t, "dracula", x.Current())
	assert.Empty(t, host.Errors)
}

func TestMalformedSettings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.theme")
	defer teardown()
	//
	host, x, path := attach(t, `{"editor": [`)
	msg, ok := host.LastError()
	require.True(t, ok)
	assert.Equal(t, "Theme", msg.Title)
	assert.Equal(t, Default, x.Current())
	// the user's settings file must survive a selection
	err := x.Select("nord")
	assert.True(t, errors.Is(err, settings.ErrMalformed))
	data, rerr := os.ReadFile(path)
	require.NoError(t, rerr)
	assert.Equal(t, `{"editor": [`, string(data))
	assert.Empty(t, host.Status)
}
