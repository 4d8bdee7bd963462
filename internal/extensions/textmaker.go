package extensions

import (
	"context"

	"folderpick/internal/host"

	tea "github.com/charmbracelet/bubbletea"
)

// FontLister lists the fonts the text renderer can use
type FontLister interface {
	Fonts(ctx context.Context) ([]string, error)
}

// NewTextMaker turns "font_file" into a combo of the available fonts
func NewTextMaker(f FontLister) host.Hook {
	refresh := func(n *host.Node) tea.Cmd {
		return func() tea.Msg {
			fonts, err := f.Fonts(context.Background())
			if err != nil {
				fetchFailed(err, TextMaker)
				fonts = nil
			}
			return apply(n, func(n *host.Node) tea.Cmd {
				fillCombo(n.Widget("font_file"), fonts)
				return nil
			})
		}
	}

	return func(n *host.Node) tea.Cmd {
		if !n.MarkWired(TextMaker) {
			return nil
		}
		n.UpgradeWidget("font_file", host.KindCombo, nil)
		ensureButton(n, func() tea.Cmd { return refresh(n) })
		return refresh(n)
	}
}
