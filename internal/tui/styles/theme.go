package styles

import (
	"folderpick/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds every style the frontend draws with. It is rebuilt from
// the configured palette whenever the config changes.
type Styles struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Help       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style

	// Toolbar
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	PathField    lipgloss.Style
	Count        lipgloss.Style

	// Cards
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardDir      lipgloss.Style
	Badge        lipgloss.Style
	Dimmed       lipgloss.Style
	ListRow      lipgloss.Style
	ListSelected lipgloss.Style

	// Node form
	Label        lipgloss.Style
	Value        lipgloss.Style
	FocusedLabel lipgloss.Style

	Lightbox lipgloss.Style
}

// Theme is the active style set
var Theme = New(config.New())

// New builds the styles for cfg's palette
func New(cfg *config.Config) Styles {
	t := cfg.Theme
	primary := lipgloss.Color(t.Primary)
	border := lipgloss.Color(t.Border)
	emphasis := lipgloss.Color(t.Emphasis)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)

	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Selected: lipgloss.NewStyle().
			Foreground(emphasis).
			Bold(true),
		Unselected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		Button: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#DDDDDD")),
		ButtonActive: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primary),
		PathField: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DDDDDD")),
		Count: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595")),

		Card:         card,
		CardSelected: card.BorderForeground(emphasis).Bold(true),
		CardDir: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#81A1C1")).
			Bold(true),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#BBBBBB")),
		Dimmed: lipgloss.NewStyle().
			Faint(true),
		ListRow: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")),
		ListSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primary),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595")),
		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DDDDDD")),
		FocusedLabel: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),

		Lightbox: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(primary).
			Padding(0, 1),
	}
}

// Apply makes cfg's palette the active theme
func Apply(cfg *config.Config) {
	Theme = New(cfg)
}
