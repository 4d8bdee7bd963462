package host

import (
	"os"
	"path/filepath"
	"testing"

	"folderpick/internal/errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalog(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	names := []string{}
	for _, d := range r.Defs() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{
		"Folder File Pro", "Folder File Picker", "DAO Hex Color Picker",
		"DAO RVB Color Picker", "DAO Text Maker",
	}, names)

	def, ok := r.Def("Folder File Picker")
	require.True(t, ok)
	assert.Equal(t, "DAO_master/IO", def.Category)
}

func TestCreateNodeDefaults(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	n, cmd, err := r.CreateNode("Folder File Pro")
	require.NoError(t, err)
	assert.Nil(t, cmd)
	assert.Equal(t, "Folder File Pro (dir → file_path)", n.Title)

	assert.Equal(t, "input", n.Widget("directory").String())
	assert.Equal(t, KindCombo, n.Widget("regex_mode").Kind)
	assert.Equal(t, []string{"include", "exclude"}, n.Widget("regex_mode").Options)
	assert.True(t, n.Widget("regex_ignore_case").Bool())
	assert.Equal(t, KindNumber, n.Widget("index").Kind)
	assert.Equal(t, 0, n.Widget("index").Int())
	assert.Equal(t, float64(1000000000), n.Widget("index").Max)

	tm, _, err := r.CreateNode("DAO Text Maker")
	require.NoError(t, err)
	assert.Equal(t, 128, tm.Widget("font_size").Int())
	assert.Equal(t, 100.0, tm.Widget("fill_alpha").Float())
	assert.Equal(t, "HELLO DAO!\nTEST", tm.Widget("text").String())

	_, _, err = r.CreateNode("Nope")
	assert.True(t, errors.IsUnknownNodeType(err))
}

func TestExtensionsHookMatchingNodes(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	var calls []string
	hook := func(name string) Hook {
		return func(n *Node) tea.Cmd {
			calls = append(calls, name+":"+n.Type)
			return nil
		}
	}
	require.NoError(t, r.RegisterExtension(Extension{
		Name: "color", Match: MustMatcher([]string{"*color picker*"}, nil), Created: hook("color"),
	}))
	require.NoError(t, r.RegisterExtension(Extension{
		Name: "dao", Match: MustMatcher(nil, []string{"dao_master/*"}), Created: hook("dao"),
	}))
	assert.Error(t, r.RegisterExtension(Extension{Name: "dao", Match: MustMatcher(nil, nil), Created: hook("x")}))

	_, _, err = r.CreateNode("DAO RVB Color Picker")
	require.NoError(t, err)
	_, _, err = r.CreateNode("Folder File Pro")
	require.NoError(t, err)

	assert.Equal(t, []string{"color:DAO RVB Color Picker", "dao:DAO RVB Color Picker"}, calls)
	assert.Equal(t, []string{"color", "dao"}, r.Extensions("DAO Hex Color Picker"))
	assert.Empty(t, r.Extensions("Folder File Pro"))
}

func TestUpgradeWidget(t *testing.T) {
	n := NewNode("T", "")
	n.AddWidget(KindString, "a", "x", nil)
	n.AddWidget(KindString, "file", "pic.png", nil)
	n.AddWidget(KindNumber, "index", 3, nil)

	var got interface{}
	combo := n.UpgradeWidget("file", KindCombo, func(v interface{}) tea.Cmd { got = v; return nil })
	assert.Equal(t, KindCombo, combo.Kind)
	assert.Equal(t, "pic.png", combo.Value)
	assert.Same(t, combo, n.Widgets()[1], "position is kept")
	assert.Len(t, n.Widgets(), 3)

	combo.Set("other.png")
	assert.Equal(t, "other.png", got)

	assert.Same(t, combo, n.UpgradeWidget("file", KindCombo, nil))

	added := n.UpgradeWidget("missing", KindCombo, nil)
	assert.Same(t, added, n.Widgets()[3])
	assert.Equal(t, "", added.Value)
}

func TestWidgetRewire(t *testing.T) {
	var order []string
	w := &Widget{Name: "dir", Callback: func(interface{}) tea.Cmd {
		order = append(order, "original")
		return nil
	}}
	w.Rewire(func(v interface{}) tea.Cmd {
		order = append(order, "refresh:"+v.(string))
		return nil
	})

	w.Set("/tmp")
	assert.Equal(t, []string{"original", "refresh:/tmp"}, order)
	assert.Equal(t, "/tmp", w.String())

	bare := &Widget{}
	bare.Rewire(func(interface{}) tea.Cmd { order = append(order, "only"); return nil })
	bare.Press()
	assert.Equal(t, "only", order[len(order)-1])
}

func TestWidgetConversions(t *testing.T) {
	assert.Equal(t, 7, (&Widget{Value: "7"}).Int())
	assert.Equal(t, 7, (&Widget{Value: 7.9}).Int())
	assert.True(t, (&Widget{Value: "true"}).Bool())
	assert.False(t, (&Widget{Value: 1}).Bool())
	assert.Equal(t, "2.5", (&Widget{Value: 2.5}).String())
	assert.Equal(t, "", (&Widget{}).String())

	w := &Widget{Options: []string{"a", "b"}}
	assert.True(t, w.HasOption("b"))
	assert.Equal(t, 1, w.OptionIndex("b"))
	assert.Equal(t, -1, w.OptionIndex("z"))
}

func TestMarkWiredAndDirty(t *testing.T) {
	n := NewNode("T", "")
	assert.True(t, n.MarkWired("refresh"))
	assert.False(t, n.MarkWired("refresh"))

	assert.False(t, n.Dirty())
	ApplyMsg{Node: n, Fn: func(n *Node) tea.Cmd {
		n.AddWidget(KindButton, "↻", nil, nil)
		return nil
	}}.Apply()
	assert.True(t, n.Dirty())
	assert.False(t, n.Dirty(), "reading clears the flag")
	assert.NotContains(t, n.Values(), "↻")
}

func TestChain(t *testing.T) {
	var order []int
	a := func(*Node) tea.Cmd { order = append(order, 1); return nil }
	b := func(*Node) tea.Cmd { order = append(order, 2); return nil }

	assert.Nil(t, Chain(nil, nil))
	Chain(a, nil)(nil)
	Chain(nil, b)(nil)
	Chain(a, b)(nil)
	assert.Equal(t, []int{1, 2, 1, 2}, order)
}

func TestMatcherInvalidPattern(t *testing.T) {
	_, err := NewMatcher([]string{"[unclosed"}, nil)
	assert.Error(t, err)

	var m *Matcher
	assert.False(t, m.Match(NodeDef{Name: "x"}))
}

func TestLoadCatalogDir(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(`
nodes:
  - name: Custom Picker
    category: Mine
    inputs:
      - {name: path, type: STRING, default: "/x"}
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	require.NoError(t, r.LoadCatalogDir(dir))
	n, _, err := r.CreateNode("Custom Picker")
	require.NoError(t, err)
	assert.Equal(t, "/x", n.Widget("path").String())

	assert.NoError(t, r.LoadCatalogDir(filepath.Join(dir, "missing")))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(`
nodes:
  - name: Broken
    inputs:
      - {name: mode, type: COMBO}
`), 0644))
	assert.Error(t, r.LoadCatalogDir(dir))
}
