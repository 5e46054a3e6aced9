package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodx/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgProgressUpdate MsgKind = iota
	MsgCurateComplete
	MsgPersonalized
)

type curateComplete struct {
	result *tasks.CurateResult
	err    error
}

type personalized struct {
	result *tasks.PersonalizeResult
	err    error
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// curateCompleteMsg is the constructor for [MsgCurateComplete]
func curateCompleteMsg(result *tasks.CurateResult, err error) Msg {
	return Msg{kind: MsgCurateComplete, data: curateComplete{result, err}}
}

// personalizedMsg is the constructor for [MsgPersonalized]
func personalizedMsg(result *tasks.PersonalizeResult, err error) Msg {
	return Msg{kind: MsgPersonalized, data: personalized{result, err}}
}
