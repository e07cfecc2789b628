package memhost

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestInsertReplacesSelection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.core")
	defer teardown()
	//
	doc := NewDocument("", "hello world")
	doc.Select(6, 11)
	doc.InsertText("there")
	assert.Equal(t, "hello there", doc.Text())
	assert.Equal(t, 11, doc.Position())
	assert.False(t, doc.HasSelection())
}

func TestHandlersAndOff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.core")
	defer teardown()
	//
	doc := NewDocument("", "")
	calls := 0
	id := doc.OnTextChanged(func() { calls++ })
	doc.Type("abc")
	if calls != 3 {
		t.Errorf("expected 3 notifications, have %d", calls)
	}
	doc.Off(id)
	doc.Type("d")
	if calls != 3 {
		t.Errorf("expected handler to be removed, have %d calls", calls)
	}
	assert.Equal(t, 0, doc.HandlerCount())
}

func TestSelectWordUnderCursor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.core")
	defer teardown()
	//
	doc := NewDocument("", "قال الذى كتب")
	doc.SetPosition(8) // directly behind the second word
	doc.SelectWordUnderCursor()
	assert.Equal(t, "الذى", doc.SelectedText())
	from, to := doc.Selection()
	assert.Equal(t, 4, from)
	assert.Equal(t, 8, to)
	//
	doc.SetPosition(3)
	doc.SelectWordUnderCursor()
	assert.Equal(t, "قال", doc.SelectedText())
}

func TestSelectWordUnderCursorOnBlank(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "qalam.core")
	defer teardown()
	//
	doc := NewDocument("", "a  b")
	doc.SetPosition(2)
	doc.SelectWordUnderCursor()
	assert.False(t, doc.HasSelection())
	assert.Equal(t, 2, doc.Position())
}

func TestPositionIsClamped(t *testing.T) {
	doc := NewDocument("", "abc")
	doc.SetPosition(10)
	assert.Equal(t, 3, doc.Position())
	doc.SetPosition(-1)
	assert.Equal(t, 0, doc.Position())
}
