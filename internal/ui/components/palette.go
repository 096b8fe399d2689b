package components

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomo/internal/ui/theme"
)

const (
	historyLimit = 20
	shownHints   = 5
)

// PaletteSubmitMsg carries a confirmed command line.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is sent when the palette is dismissed with esc.
type PaletteCancelMsg struct{}

var (
	frame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(theme.Peach).
		Padding(0, 1)
	hint     = lipgloss.NewStyle().Foreground(theme.Subtext0)
	selected = lipgloss.NewStyle().Foreground(theme.Peach).Bold(true)
)

// Palette reads one session command. Tab completes the command word from
// the usage hints; up and down walk previously submitted lines.
type Palette struct {
	field   textinput.Model
	usage   []string
	history []string
	cursor  int
	open    bool
	width   int
}

func NewPalette(usage []string) Palette {
	field := textinput.New()
	field.Prompt = ": "
	field.Placeholder = "focus 25m, break, stop…"
	field.CharLimit = 64
	return Palette{field: field, usage: usage}
}

func (p Palette) Visible() bool { return p.open }

func (p *Palette) SetWidth(w int) { p.width = w }

// Open clears the line and focuses it.
func (p *Palette) Open() tea.Cmd {
	p.open = true
	p.cursor = len(p.history)
	p.field.Reset()
	return p.field.Focus()
}

func (p *Palette) close() {
	p.open = false
	p.field.Blur()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.open {
		return p, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEsc:
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case tea.KeyEnter:
			line := strings.Join(strings.Fields(p.field.Value()), " ")
			p.remember(line)
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case tea.KeyTab:
			p.complete()
			return p, nil
		case tea.KeyUp:
			p.recall(-1)
			return p, nil
		case tea.KeyDown:
			p.recall(+1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.field, cmd = p.field.Update(msg)
	return p, cmd
}

// remember appends line to the history, moving a repeated line to the end.
func (p *Palette) remember(line string) {
	if line == "" {
		return
	}
	p.history = slices.DeleteFunc(p.history, func(h string) bool { return h == line })
	p.history = append(p.history, line)
	if len(p.history) > historyLimit {
		p.history = p.history[len(p.history)-historyLimit:]
	}
}

func (p *Palette) recall(step int) {
	next := p.cursor + step
	if next < 0 || next > len(p.history) {
		return
	}
	p.cursor = next
	if next == len(p.history) {
		p.field.Reset()
		return
	}
	p.field.SetValue(p.history[next])
	p.field.CursorEnd()
}

// complete replaces the first word with the single command it prefixes.
func (p *Palette) complete() {
	word, rest, hasRest := strings.Cut(strings.TrimLeft(p.field.Value(), " "), " ")
	candidates := p.Matching(word, len(p.usage))
	if word == "" || len(candidates) != 1 {
		return
	}
	command, _, _ := strings.Cut(candidates[0], " ")
	line := command + " "
	if hasRest {
		line += rest
	}
	p.field.SetValue(line)
	p.field.CursorEnd()
}

// Matching returns up to limit usage hints whose text starts with prefix.
func (p Palette) Matching(prefix string, limit int) []string {
	var out []string
	for _, u := range p.usage {
		if len(out) == limit {
			break
		}
		if strings.HasPrefix(u, prefix) {
			out = append(out, u)
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.open {
		return ""
	}
	typed := strings.ToLower(strings.TrimLeft(p.field.Value(), " "))
	word, _, _ := strings.Cut(typed, " ")
	lines := []string{theme.Title.Render("Command"), p.field.View()}
	matches := p.Matching(word, shownHints)
	for _, m := range matches {
		style := hint
		if len(matches) == 1 && word != "" {
			style = selected
		}
		lines = append(lines, style.Render("  "+m))
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return frame.Width(w - 2).Render(strings.Join(lines, "\n"))
}
