package panel

import (
	"strings"
	"time"
	"unicode"

	"folderpick/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTypeAheadTimeout is how long the buffer survives without a key
const DefaultTypeAheadTimeout = 800 * time.Millisecond

// typeAheadExpiredMsg clears the buffer unless a newer key re-armed it
type typeAheadExpiredMsg struct {
	panelID int
	gen     uint64
}

// TypeAhead accumulates typed characters into a prefix query.
type TypeAhead struct {
	panelID int
	buf     []rune
	gen     uint64
	timeout time.Duration
	tick    func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

// NewTypeAhead creates an empty buffer clearing after timeout
func NewTypeAhead(panelID int, timeout time.Duration) *TypeAhead {
	if timeout <= 0 {
		timeout = DefaultTypeAheadTimeout
	}
	return &TypeAhead{panelID: panelID, timeout: timeout, tick: tea.Tick}
}

// SetTimeout changes the idle timeout for subsequent keys
func (t *TypeAhead) SetTimeout(d time.Duration) {
	if d > 0 {
		t.timeout = d
	}
}

// Query returns the current buffer
func (t *TypeAhead) Query() string {
	return string(t.buf)
}

func (t *TypeAhead) arm() tea.Cmd {
	t.gen++
	id, gen := t.panelID, t.gen
	return t.tick(t.timeout, func(time.Time) tea.Msg {
		return typeAheadExpiredMsg{panelID: id, gen: gen}
	})
}

// Add appends r, lowercased, and restarts the clear timer
func (t *TypeAhead) Add(r rune) tea.Cmd {
	t.buf = append(t.buf, unicode.ToLower(r))
	return t.arm()
}

// Backspace drops the last character. It reports false when the buffer
// was already empty.
func (t *TypeAhead) Backspace() (bool, tea.Cmd) {
	if len(t.buf) == 0 {
		return false, nil
	}
	t.buf = t.buf[:len(t.buf)-1]
	return true, t.arm()
}

// Clear empties the buffer and invalidates pending timers
func (t *TypeAhead) Clear() {
	t.buf = t.buf[:0]
	t.gen++
}

func (t *TypeAhead) expire(gen uint64) {
	if gen == t.gen {
		t.buf = t.buf[:0]
	}
}

// Search finds the first card after current, wrapping around once, whose
// name starts with query (case-insensitive). current < 0 counts as 0. It
// returns -1 when nothing matches.
func Search(cards []types.Card, current int, query string) int {
	n := len(cards)
	if n == 0 || query == "" {
		return -1
	}
	query = strings.ToLower(query)
	if current < 0 {
		current = 0
	}
	for step := 1; step <= n; step++ {
		i := (current + step) % n
		if strings.HasPrefix(strings.ToLower(cards[i].DisplayName), query) {
			return i
		}
	}
	return -1
}
