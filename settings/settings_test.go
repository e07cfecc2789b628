package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestMissingFileGivesDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.settings")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "reverse.json")
	r, f, err := LoadReverse(path)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, DefaultReverse(), r)
	require.NotNil(t, f)
	// saving creates the file
	require.NoError(t, r.Store(f))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestMalformedFileGivesDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.settings")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "reverse.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"direction": `), 0o644))
	r, f, err := LoadReverse(path)
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.Equal(t, RightToLeft, r.Direction)
	assert.Equal(t, 4, r.MaxWorkers)
	// the broken file is not replaced
	r.Direction = LeftToRight
	assert.True(t, errors.Is(r.Store(f), ErrMalformed))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"direction": `, string(data))
}

func TestLoadReverse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.settings")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "reverse.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"direction": "left_to_right", "max_workers": 7, "discard_stale": true}`), 0o644))
	r, _, err := LoadReverse(path)
	require.NoError(t, err)
	assert.Equal(t, Reverse{Direction: LeftToRight, MaxWorkers: 7, DiscardStale: true}, r)
}

func TestLoadReverseOutOfRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.settings")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "reverse.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"direction": "up", "max_workers": 42}`), 0o644))
	r, _, err := LoadReverse(path)
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.Equal(t, DefaultReverse(), r)
}

func TestStorePreservesOtherKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.settings")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "reverse.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"comment": "keep me", "max_workers": 2}`), 0o644))
	r, f, err := LoadReverse(path)
	require.NoError(t, err)
	r.Direction = LeftToRight
	require.NoError(t, r.Store(f))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me", gjson.GetBytes(data, "comment").String())
	assert.Equal(t, LeftToRight, gjson.GetBytes(data, "direction").String())
	assert.Equal(t, int64(2), gjson.GetBytes(data, "max_workers").Int())
}

func TestThemeBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.settings")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "editor.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"editor": {
			"font_size": 14,
			"syntax_highlighting": { "theme": "monokai", "available_themes": ["monokai", "nord"] }
		}
	}`), 0o644))
	f, err := Open(path)
	require.NoError(t, err)
	current, available := Theme(f)
	assert.Equal(t, "monokai", current)
	assert.Equal(t, []string{"monokai", "nord"}, available)
	//
	require.NoError(t, SetTheme(f, "nord"))
	g, err := Open(path)
	require.NoError(t, err)
	current, _ = Theme(g)
	assert.Equal(t, "nord", current)
	assert.Equal(t, int64(14), g.Get("editor.font_size").Int())
}
