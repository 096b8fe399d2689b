package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "pomo/internal/modules/session/dto"
	"pomo/internal/ui/components"
	"pomo/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	Poll(ctx context.Context, noEmoji, notify bool) (sessiondto.PollOutput, error)
	Focus(ctx context.Context, duration string, oneShot, notify bool) (sessiondto.StatusOutput, error)
	Break(ctx context.Context, duration string, oneShot, notify bool) (sessiondto.StatusOutput, error)
	Toggle(ctx context.Context, duration string, oneShot, notify bool) (sessiondto.StatusOutput, error)
	Stop(ctx context.Context, notify bool) (sessiondto.StatusOutput, error)
	Duration(ctx context.Context, duration string) (sessiondto.StatusOutput, error)
}

// reloader refreshes cached settings so config edits reach a running TUI.
type reloader interface {
	Reload(ctx context.Context) error
}

type Options struct {
	// Notify sends alerts for session changes and completions.
	Notify         bool
	NoEmoji        bool
	TickInterval   time.Duration
	Settings       reloader
	ReloadInterval time.Duration
}

// paletteHints must stay in sync with executePalette.
var paletteHints = []string{
	"focus [duration] [--one-shot]",
	"break [duration] [--one-shot]",
	"toggle [duration]",
	"stop",
	"duration <duration>",
}

// ─── async messages ───────────────────────────────────────────────────────────

type tickMsg time.Time

type reloadTickMsg struct{}

type reloadedMsg struct{ err error }

type polledMsg struct {
	out sessiondto.PollOutput
	err error
}

type actionMsg struct {
	verb string
	out  sessiondto.StatusOutput
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Focus   key.Binding
	Break   key.Binding
	Toggle  key.Binding
	Stop    key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Focus:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus")),
		Break:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "break")),
		Toggle:  key.NewBinding(key.WithKeys("t", " "), key.WithHelp("t/space", "toggle")),
		Stop:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Break, k.Stop, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Break, k.Toggle, k.Stop},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the terminal timer. It polls the session engine on every tick and
// forwards key presses and palette commands as session intents.
type Model struct {
	session sessionPort
	opts    Options

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	bar      progress.Model

	current sessiondto.StatusOutput
	now     time.Time
	status  string
	width   int
	height  int
}

func NewModel(session sessionPort, opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.ReloadInterval <= 0 {
		opts.ReloadInterval = 600 * time.Second
	}
	bar := progress.New(progress.WithGradient(string(theme.Peach), string(theme.Red)), progress.WithoutPercentage())
	bar.Width = 40
	return Model{
		session: session,
		opts:    opts,
		keys:    defaultKeys(),
		help:    help.New(),
		palette: components.NewPalette(paletteHints),
		bar:     bar,
		current: sessiondto.StatusOutput{Type: "Idle"},
		now:     time.Now(),
		status:  "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.pollCmd(), m.tickCmd(), m.reloadTickCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 64))
		m.help.Width = m.width
		m.bar.Width = max(min(m.width-12, 60), 10)

	case tickMsg:
		m.now = time.Time(msg)
		return m, tea.Batch(m.pollCmd(), m.tickCmd())

	case reloadTickMsg:
		return m, tea.Batch(m.reloadCmd(), m.reloadTickCmd())

	case reloadedMsg:
		if msg.err != nil {
			m.status = "reload settings: " + msg.err.Error()
		}

	case polledMsg:
		if msg.err != nil {
			m.status = "poll: " + msg.err.Error()
			return m, nil
		}
		m.current = msg.out.Status
		switch {
		case msg.out.AutoStarted:
			m.status = "working hours: focus started"
		case msg.out.AutoStopped:
			m.status = "working hours: session stopped"
		case msg.out.OneShotReset:
			m.status = "one-shot session finished"
		case msg.out.Notified:
			m.status = "alert sent"
		}

	case actionMsg:
		if msg.err != nil {
			m.status = msg.verb + " failed: " + msg.err.Error()
			return m, nil
		}
		m.current = msg.out
		m.status = msg.verb
		return m, m.pollCmd()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open()
		case key.Matches(msg, m.keys.Focus):
			return m, m.startCmd("focus started", m.session.Focus, "", false)
		case key.Matches(msg, m.keys.Break):
			return m, m.startCmd("break started", m.session.Break, "", false)
		case key.Matches(msg, m.keys.Toggle):
			return m, m.startCmd("toggled", m.session.Toggle, "", false)
		case key.Matches(msg, m.keys.Stop):
			return m, m.stopCmd()
		}
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := theme.Title.Render("pomo")
	if m.opts.Notify {
		header += theme.Muted.Render("  alerts on")
	}
	statusBar := m.renderStatusBar()

	var content string
	switch {
	case m.showHelp:
		content = m.help.View(m.keys)
	case m.palette.Visible():
		content = m.palette.View()
	default:
		content = m.renderTimer()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", content, statusBar)
}

func (m Model) renderTimer() string {
	if m.current.Type == "" || m.current.Type == "Idle" {
		return theme.Pane.Render(theme.Session("Idle", false).Render("idle") + "\n\n" +
			theme.Muted.Render("f focus · b break · : command"))
	}
	overdue := !m.current.End.After(m.now)
	label := m.current.Label
	if label == "" {
		label = m.current.Remaining
	}
	var sb strings.Builder
	sb.WriteString(theme.Session(m.current.Type, overdue).Render(label) + "\n\n")
	detail := fmt.Sprintf("%s until %s", m.current.Type, m.current.End.Local().Format("15:04"))
	if m.current.OneShot {
		detail += " · one-shot"
	}
	sb.WriteString(theme.Muted.Render(detail) + "\n\n")
	sb.WriteString(m.bar.ViewAs(progressFraction(m.current, m.now)))
	return theme.Pane.Render(sb.String())
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("f/b/t/s  :command  ?:help  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + left + strings.Repeat(" ", gap) + right
}

// progressFraction is the elapsed share of the session, clamped to [0,1].
func progressFraction(out sessiondto.StatusOutput, now time.Time) float64 {
	total := out.End.Sub(out.Start)
	if total <= 0 {
		return 1
	}
	elapsed := now.Sub(out.Start)
	switch {
	case elapsed <= 0:
		return 0
	case elapsed >= total:
		return 1
	}
	return float64(elapsed) / float64(total)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	duration, oneShot := "", false
	for _, arg := range parts[1:] {
		if arg == "--one-shot" {
			oneShot = true
			continue
		}
		duration = arg
	}

	switch parts[0] {
	case "focus":
		return m, m.startCmd("focus started", m.session.Focus, duration, oneShot)
	case "break":
		return m, m.startCmd("break started", m.session.Break, duration, oneShot)
	case "toggle":
		return m, m.startCmd("toggled", m.session.Toggle, duration, oneShot)
	case "stop":
		return m, m.stopCmd()
	case "duration":
		if duration == "" {
			m.status = "usage: duration <duration>"
			return m, nil
		}
		return m, func() tea.Msg {
			out, err := m.session.Duration(context.Background(), duration)
			return actionMsg{verb: "duration changed", out: out, err: err}
		}
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── async commands ───────────────────────────────────────────────────────────

type startFunc func(ctx context.Context, duration string, oneShot, notify bool) (sessiondto.StatusOutput, error)

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.opts.TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) reloadTickCmd() tea.Cmd {
	if m.opts.Settings == nil {
		return nil
	}
	return tea.Tick(m.opts.ReloadInterval, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m Model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		return reloadedMsg{err: m.opts.Settings.Reload(context.Background())}
	}
}

func (m Model) pollCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Poll(context.Background(), m.opts.NoEmoji, m.opts.Notify)
		return polledMsg{out: out, err: err}
	}
}

func (m Model) startCmd(verb string, start startFunc, duration string, oneShot bool) tea.Cmd {
	return func() tea.Msg {
		out, err := start(context.Background(), duration, oneShot, m.opts.Notify)
		return actionMsg{verb: verb, out: out, err: err}
	}
}

func (m Model) stopCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Stop(context.Background(), m.opts.Notify)
		return actionMsg{verb: "stopped", out: out, err: err}
	}
}
