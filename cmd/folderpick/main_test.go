package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"folderpick/internal/config"
	"folderpick/pkg/testutils"
	"folderpick/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	fb      *testutils.FakeBackend
	cfgPath string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	return &cli{
		fb:      testutils.NewFakeBackend(t),
		cfgPath: filepath.Join(t.TempDir(), "config.yaml"),
	}
}

// run executes the root command and returns stdout with styling removed
func (c *cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", c.cfgPath, "--server", c.fb.Server.URL}, args...))
	err := root.Execute()
	return testutils.StripANSI(out.String()), err
}

func TestLs(t *testing.T) {
	c := newCLI(t)
	c.fb.SetListing(testutils.Listing("/srv", "/", []string{"sub"}, []string{"a.png", "notes.txt"}))

	out, err := c.run(t, "ls", "/srv", "--ext", ".png", "--sort", "mtime", "--desc")
	require.NoError(t, err)
	assert.Contains(t, out, "/srv")
	assert.Contains(t, out, "▸ sub/")
	assert.Contains(t, out, "a.png")
	assert.Contains(t, out, "notes.txt")
	assert.Contains(t, out, "1 directories, 2 files")

	reqs := c.fb.Requests(config.New().Backend.Endpoints.List)
	require.Len(t, reqs, 1)
	q := reqs[0].Query
	assert.Equal(t, "/srv", q.Get("directory"))
	assert.Equal(t, ".png", q.Get("exts"))
	assert.Equal(t, "mtime", q.Get("sort_by"))
	assert.Equal(t, "true", q.Get("descending"))
	assert.Equal(t, "true", q.Get("regex_ic"))
}

func TestLsErrors(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "ls", "/srv", "--sort", "color")
	assert.Error(t, err)

	_, err = c.run(t, "ls", "/missing")
	assert.Error(t, err, "an unknown directory is a listing failure")
}

func TestLsRecursive(t *testing.T) {
	c := newCLI(t)
	c.fb.SetPickerFiles("/srv", []types.PickerFile{
		{Name: "a.png", Path: "/srv/a.png", Size: 2048},
		{Name: "deep/b.png", Path: "/srv/deep/b.png", Size: 10},
	})

	out, err := c.run(t, "ls", "-R", "/srv")
	require.NoError(t, err)
	assert.Contains(t, out, "deep/b.png")
	assert.Contains(t, out, "2.0 kB")
	assert.Contains(t, out, "2 files")

	reqs := c.fb.Requests(config.New().Backend.Endpoints.ListDir)
	require.Len(t, reqs, 1)
	assert.Equal(t, "true", reqs[0].Query.Get("recursive"))
}

func TestNodes(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(t, "nodes", "--inputs")
	require.NoError(t, err)
	assert.Contains(t, out, "Folder File Pro")
	assert.Contains(t, out, "DAO Text Maker")
	assert.Contains(t, out, "directory")
}

func TestNodesWithCatalog(t *testing.T) {
	c := newCLI(t)
	dir := t.TempDir()
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{
		"extra.yaml": "nodes:\n  - name: Extra Node\n    category: custom\n    inputs:\n      - {name: label, type: STRING, default: hi}\n",
	})

	out, err := c.run(t, "--catalog", dir, "nodes")
	require.NoError(t, err)
	assert.Contains(t, out, "Extra Node")
	assert.Contains(t, out, "custom")
}

func TestFonts(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(t, "fonts")
	require.NoError(t, err)
	assert.Contains(t, out, "No fonts found")

	c.fb.SetFonts([]string{"Arial.ttf", "Mono.otf"})
	out, err = c.run(t, "fonts")
	require.NoError(t, err)
	assert.Contains(t, out, "Arial.ttf")
	assert.Contains(t, out, "Mono.otf")
}

func TestColors(t *testing.T) {
	c := newCLI(t)
	ep := config.New().Backend.Endpoints
	c.fb.SetPalette(ep.HexPicker, []string{"reds.txt"}, map[string][]string{"reds.txt": {"#ff0000", "#aa0000"}})
	c.fb.SetPalette(ep.RVBPicker, []string{"rvb.txt"}, nil)

	out, err := c.run(t, "colors")
	require.NoError(t, err)
	assert.Contains(t, out, "reds.txt")

	out, err = c.run(t, "colors", "--palette", "rvb")
	require.NoError(t, err)
	assert.Contains(t, out, "rvb.txt")
	assert.NotContains(t, out, "reds.txt")

	out, err = c.run(t, "colors", "reds.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "#ff0000")
	assert.Contains(t, out, "#aa0000")

	_, err = c.run(t, "colors", "--palette", "cmyk")
	assert.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(t, "config", "init", "--theme", "ocean")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+c.cfgPath)
	_, err = os.Stat(c.cfgPath)
	require.NoError(t, err)

	_, err = c.run(t, "config", "init")
	assert.Error(t, err, "an existing file is kept")
	_, err = c.run(t, "config", "init", "--force", "--theme", "neon")
	assert.Error(t, err)

	saved, err := config.LoadConfigFile(c.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "ocean", saved.Theme.Name)
	assert.Equal(t, c.fb.Server.URL, saved.Backend.URL)

	out, err = c.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, c.fb.Server.URL)
	assert.Contains(t, out, "ocean")

	out, err = c.run(t, "config", "themes")
	require.NoError(t, err)
	for _, name := range config.ListThemes() {
		assert.Contains(t, out, name)
	}
}

func TestUnknownNodeType(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "node", "No Such Node")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown node type")
}

func TestBadServerFlag(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "c.yaml"), "--server", "ftp://nowhere", "fonts"})
	assert.Error(t, root.Execute())
}

func TestColumns(t *testing.T) {
	assert.Equal(t, "a     bb    ccc\ndddd\n", columns([]string{"a", "bb", "ccc", "dddd"}, 18))
	assert.Equal(t, "one\ntwo\n", columns([]string{"one", "two"}, 2))
}
