package status

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/xuexiangjys/xui/internal/metrics"
	"github.com/xuexiangjys/xui/internal/tui/styles"
	"github.com/xuexiangjys/xui/internal/tui/util"
)

const defaultMessageTTL = 4 * time.Second

type StatusCmp interface {
	util.Model
	ToggleFullHelp()
	ShowingFullHelp() bool
	SetKeyMap(keyMap help.KeyMap)
}

type statusCmp struct {
	info       util.InfoMsg
	width      int
	messageTTL time.Duration
	help       help.Model
	keyMap     help.KeyMap
	metrics    *metrics.Metrics
	seq        int
}

// clearMessageMsg clears the message with the given sequence number, so an
// older timer never clears a newer message.
type clearMessageMsg struct{ seq int }

func (m *statusCmp) clearMessageCmd(ttl time.Duration) tea.Cmd {
	seq := m.seq
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return clearMessageMsg{seq: seq}
	})
}

func (m *statusCmp) Init() tea.Cmd {
	return nil
}

func (m *statusCmp) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.SetWidth(msg.Width - 2)
		return m, nil
	case util.InfoMsg:
		m.info = msg
		m.seq++
		ttl := msg.TTL
		if ttl == 0 {
			ttl = m.messageTTL
		}
		return m, m.clearMessageCmd(ttl)
	case clearMessageMsg:
		if msg.seq == m.seq {
			m.info = util.InfoMsg{}
		}
	case util.ClearStatusMsg:
		m.info = util.InfoMsg{}
	}
	return m, nil
}

func (m *statusCmp) View() string {
	t := styles.CurrentTheme()
	var line string
	if m.info.Msg != "" {
		line = m.infoMsg()
	} else if m.keyMap != nil {
		line = m.help.View(m.keyMap)
	}

	summary := ""
	if m.metrics != nil && !m.help.ShowAll {
		summary = t.S().Subtle.Render(m.metrics.Summary())
	}
	avail := max(0, m.width-2-lipgloss.Width(summary)-1)
	// Full help spans several rows, each truncated on its own.
	rows := strings.Split(line, "\n")
	for i, row := range rows {
		rows[i] = ansi.Truncate(row, avail, "…")
	}
	line = strings.Join(rows, "\n")
	gap := max(1, m.width-2-lipgloss.Width(line)-lipgloss.Width(summary))

	return t.S().Base.Padding(0, 1, 1, 1).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, line, lipgloss.NewStyle().Width(gap).Render(""), summary),
	)
}

func (m *statusCmp) infoMsg() string {
	t := styles.CurrentTheme()
	var icon, text lipgloss.Style
	var mark string
	switch m.info.Type {
	case util.InfoTypeError:
		mark, icon = styles.ErrorIcon, t.S().Base.Foreground(t.Error)
	case util.InfoTypeWarn:
		mark, icon = styles.WarningIcon, t.S().Base.Foreground(t.Warning)
	case util.InfoTypeSuccess:
		mark, icon = styles.CheckIcon, t.S().Base.Foreground(t.Success)
	default:
		mark, icon = styles.InfoIcon, t.S().Base.Foreground(t.Info)
	}
	text = t.S().Base
	return icon.Render(mark) + " " + text.Render(m.info.Msg)
}

func (m *statusCmp) ToggleFullHelp() {
	m.help.ShowAll = !m.help.ShowAll
}

func (m *statusCmp) ShowingFullHelp() bool {
	return m.help.ShowAll
}

func (m *statusCmp) SetKeyMap(keyMap help.KeyMap) {
	m.keyMap = keyMap
}

func NewStatusCmp(metrics *metrics.Metrics) StatusCmp {
	t := styles.CurrentTheme()
	h := help.New()
	h.Styles = help.Styles{
		ShortKey:       t.S().Base.Foreground(t.FgMuted),
		ShortDesc:      t.S().Base.Foreground(t.FgSubtle),
		ShortSeparator: t.S().Base.Foreground(t.Border),
		Ellipsis:       t.S().Base.Foreground(t.Border),
		FullKey:        t.S().Base.Foreground(t.FgMuted),
		FullDesc:       t.S().Base.Foreground(t.FgSubtle),
		FullSeparator:  t.S().Base.Foreground(t.Border),
	}
	return &statusCmp{
		messageTTL: defaultMessageTTL,
		help:       h,
		metrics:    metrics,
	}
}
