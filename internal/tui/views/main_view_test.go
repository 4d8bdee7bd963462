package views

import (
	"fmt"
	"testing"

	"folderpick/internal/host"
	"folderpick/internal/tui/common"
	"folderpick/pkg/testutils"

	"github.com/stretchr/testify/assert"
)

// Mock model for testing
type mockModel struct {
	node     *host.Node
	cursor   int
	mode     common.Mode
	edit     string
	panel    string
	overlay  string
	status   string
	showHelp bool
}

func (m *mockModel) Node() *host.Node   { return m.node }
func (m *mockModel) Cursor() int        { return m.cursor }
func (m *mockModel) Mode() common.Mode  { return m.mode }
func (m *mockModel) EditView() string   { return m.edit }
func (m *mockModel) PanelView() string  { return m.panel }
func (m *mockModel) Overlay() string    { return m.overlay }
func (m *mockModel) StatusView() string { return m.status }
func (m *mockModel) ShowHelp() bool     { return m.showHelp }
func (m *mockModel) HelpView() string   { return "FULL HELP" }

func testNode() *host.Node {
	n := host.NewNode("DAO Text Maker", "DAO_master/Text")
	n.Title = "Text Maker"
	n.AddWidget(host.KindString, "text", "HELLO", nil)
	combo := n.AddWidget(host.KindCombo, "font_file", "Mono.otf", nil)
	combo.SetOptions([]string{"Arial.ttf", "Mono.otf"})
	n.AddWidget(host.KindToggle, "bg_transparent", true, nil)
	n.AddWidget(host.KindNumber, "font_size", 128, nil)
	n.AddWidget(host.KindButton, "↻", nil, nil)
	n.AddWidget(host.KindNumber, "hidden_one", 0, nil).Hidden = true
	return n
}

func TestRenderMainView(t *testing.T) {
	tests := []struct {
		name     string
		model    *mockModel
		contains []string // Strings that should be present in the output
		excludes []string // Strings that should not be present in the output
	}{
		{
			name:  "form",
			model: &mockModel{node: testNode()},
			contains: []string{
				"Text Maker",
				"DAO_master/Text",
				"› text",
				"HELLO",
				"‹ Mono.otf › 2/2",
				"[x]",
				"128",
				"↻",
				"[Tab] Next",
			},
			excludes: []string{
				"hidden_one",
				"FULL HELP",
			},
		},
		{
			name:     "editing",
			model:    &mockModel{node: testNode(), cursor: 3, mode: common.Edit, edit: "font_size: 64"},
			contains: []string{"font_size: 64", "[Enter] Apply"},
			excludes: []string{"128"},
		},
		{
			name:     "with panel and status",
			model:    &mockModel{node: testNode(), panel: "PANEL GRID", status: "Loading /srv", mode: common.Browse},
			contains: []string{"PANEL GRID", "Loading /srv", "[Backspace] Up"},
			excludes: []string{"› text"},
		},
		{
			name:     "with help shown",
			model:    &mockModel{node: testNode(), showHelp: true},
			contains: []string{"FULL HELP"},
			excludes: []string{"[Tab] Next"},
		},
		{
			name:     "overlay replaces everything",
			model:    &mockModel{node: testNode(), overlay: "LIGHTBOX", panel: "PANEL GRID"},
			contains: []string{"LIGHTBOX"},
			excludes: []string{"PANEL GRID", "Text Maker"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := testutils.StripANSI(RenderMainView(tt.model))

			// Check required strings are present
			for _, s := range tt.contains {
				assert.Contains(t, output, s, fmt.Sprintf("output should contain '%s'", s))
			}

			// Check excluded strings are not present
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s, fmt.Sprintf("output should not contain '%s'", s))
			}
		})
	}
}

func TestRenderKeyCommands(t *testing.T) {
	assert.Contains(t, RenderKeyCommands(common.Form), "Quit")
	assert.Contains(t, RenderKeyCommands(common.Browse), "Find")
	assert.Contains(t, RenderKeyCommands(common.Edit), "Cancel")
}

func TestRenderPicker(t *testing.T) {
	output := testutils.StripANSI(RenderPicker("LIST"))
	assert.Contains(t, output, "folderpick")
	assert.Contains(t, output, "LIST")
	assert.Contains(t, output, "[Enter] Create")
}
