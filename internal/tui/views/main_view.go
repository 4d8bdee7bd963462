package views

import (
	"fmt"
	"strings"

	"folderpick/internal/host"
	"folderpick/internal/tui/common"
	"folderpick/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// PanelLeft and PanelTop are the screen cell where the embedded panel
// starts: past the app padding and below the title line.
const (
	PanelLeft = 1
	PanelTop  = 1
)

// OverlayLeft and OverlayTop are where the preview frame starts, past the
// app padding. The overlay replaces the title.
const (
	OverlayLeft = 1
	OverlayTop  = 0
)

func RenderMainView(m common.ModelReader) string {
	if overlay := m.Overlay(); overlay != "" {
		return styles.Theme.App.Render(overlay)
	}

	var sb strings.Builder
	n := m.Node()

	sb.WriteString(renderTitle(n) + "\n")
	if p := m.PanelView(); p != "" {
		sb.WriteString(p + "\n")
	}
	sb.WriteString(renderForm(m))

	if status := m.StatusView(); status != "" {
		sb.WriteString("\n" + status)
	}
	if m.ShowHelp() {
		sb.WriteString("\n" + m.HelpView())
	} else {
		sb.WriteString("\n" + RenderKeyCommands(m.Mode()))
	}

	return styles.Theme.App.Render(sb.String())
}

// RenderPicker frames the node type list shown before a node exists
func RenderPicker(list string) string {
	return styles.Theme.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			renderBanner(),
			list,
			styles.Theme.Help.Render("[Enter] Create  [/] Filter  [ctrl+c] Quit"),
		))
}

func RenderKeyCommands(mode common.Mode) string {
	switch mode {
	case common.Browse:
		return styles.Theme.Help.Render("[arrows] Move  [Enter] Open  [Backspace] Up  [/] Path  [type] Find  [Esc] Back to form")
	case common.Edit:
		return styles.Theme.Help.Render("[Enter] Apply  [Esc] Cancel")
	}
	return styles.Theme.Help.Render("[Tab] Next  [←/→] Change  [Space] Toggle  [Enter] Edit/Press/Browse  [?] Help  [ctrl+c] Quit")
}

func renderBanner() string {
	return styles.Theme.Title.Render("▞ folderpick")
}

func renderTitle(n *host.Node) string {
	return styles.Theme.Title.Render(n.Title) + " " + styles.Theme.Dimmed.Render(n.Category)
}

func renderForm(m common.ModelReader) string {
	widgets := m.Node().VisibleWidgets()
	if len(widgets) == 0 {
		return styles.Theme.Dimmed.Render("(no inputs)")
	}

	width := 0
	for _, w := range widgets {
		width = max(width, lipgloss.Width(w.Name))
	}

	lines := make([]string, 0, len(widgets))
	for i, w := range widgets {
		focused := i == m.Cursor() && m.Mode() != common.Browse
		label := styles.Theme.Label
		marker := "  "
		if focused {
			label = styles.Theme.FocusedLabel
			marker = "› "
		}
		name := label.Render(fmt.Sprintf("%-*s", width, w.Name))

		value := renderValue(w, focused)
		if focused && m.Mode() == common.Edit {
			value = m.EditView()
		}
		if w.Kind == host.KindDOM && m.Mode() == common.Browse {
			value = styles.Theme.Success.Render("▤ browsing")
		}
		lines = append(lines, marker+name+"  "+value)
	}
	return strings.Join(lines, "\n")
}

func renderValue(w *host.Widget, focused bool) string {
	switch w.Kind {
	case host.KindCombo:
		if len(w.Options) == 0 {
			return styles.Theme.Dimmed.Render("(none)")
		}
		pos := ""
		if i := w.OptionIndex(w.String()); i >= 0 {
			pos = styles.Theme.Dimmed.Render(fmt.Sprintf(" %d/%d", i+1, len(w.Options)))
		}
		return styles.Theme.Value.Render("‹ "+w.String()+" ›") + pos
	case host.KindToggle:
		if w.Bool() {
			return styles.Theme.Value.Render("[x]")
		}
		return styles.Theme.Value.Render("[ ]")
	case host.KindButton:
		if focused {
			return styles.Theme.ButtonActive.Render(w.Name)
		}
		return styles.Theme.Button.Render(w.Name)
	case host.KindDOM:
		return styles.Theme.Dimmed.Render("▤ browsing panel")
	}
	if w.String() == "" {
		return styles.Theme.Dimmed.Render(`""`)
	}
	return styles.Theme.Value.Render(w.String())
}
