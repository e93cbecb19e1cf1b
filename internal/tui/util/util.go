package util

import (
	"log/slog"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
)

type Model interface {
	Init() tea.Cmd
	Update(tea.Msg) (Model, tea.Cmd)
	View() string
}

// Sizeable is implemented by components laid out by their parent.
type Sizeable interface {
	SetSize(width, height int) tea.Cmd
	GetSize() (int, int)
}

// KeyMapHelp is implemented by components that contribute to the help bar.
type KeyMapHelp interface {
	Help() help.KeyMap
}

// Positional is implemented by components that need their screen origin,
// e.g. to resolve mouse clicks.
type Positional interface {
	SetPosition(x, y int) tea.Cmd
}

func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

func ReportError(err error) tea.Cmd {
	slog.Error("Error reported", "error", err)
	return CmdHandler(InfoMsg{
		Type: InfoTypeError,
		Msg:  err.Error(),
	})
}

// CopyToClipboard writes text through OSC 52 and the native clipboard, then
// reports what was copied.
func CopyToClipboard(text, what string) tea.Cmd {
	return tea.Sequence(
		// Terminals without OSC 52 still get the native clipboard.
		tea.SetClipboard(text),
		func() tea.Msg {
			if err := clipboard.WriteAll(text); err != nil {
				slog.Debug("Native clipboard unavailable", "error", err)
			}
			return nil
		},
		ReportInfo(what+" copied to clipboard"),
	)
}

type InfoType int

const (
	InfoTypeInfo InfoType = iota
	InfoTypeSuccess
	InfoTypeWarn
	InfoTypeError
)

func ReportInfo(info string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeInfo,
		Msg:  info,
	})
}

func ReportSuccess(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeSuccess,
		Msg:  msg,
	})
}

func ReportWarn(warn string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeWarn,
		Msg:  warn,
	})
}

type (
	InfoMsg struct {
		Type InfoType
		Msg  string
		TTL  time.Duration
	}
	ClearStatusMsg struct{}
)

// SimpleKeyMap adapts a flat list of bindings to [help.KeyMap], grouping the
// full help in columns of perColumn bindings.
type SimpleKeyMap struct {
	Bindings  []key.Binding
	PerColumn int
}

func (k SimpleKeyMap) ShortHelp() []key.Binding {
	return k.Bindings
}

func (k SimpleKeyMap) FullHelp() [][]key.Binding {
	per := k.PerColumn
	if per <= 0 {
		per = 4
	}
	var columns [][]key.Binding
	for i := 0; i < len(k.Bindings); i += per {
		columns = append(columns, k.Bindings[i:min(i+per, len(k.Bindings))])
	}
	return columns
}
