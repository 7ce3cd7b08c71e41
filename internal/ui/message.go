package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/comeback/internal/models"
	"github.com/desertthunder/comeback/internal/tasks"
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
	MsgFrame MsgKind = iota
	MsgProgressUpdate
	MsgReportLoaded
)

type reportResult struct {
	report *models.Report
	err    error
}

// frameMsg is the constructor for [MsgFrame]
func frameMsg(t time.Time) Msg {
	return Msg{kind: MsgFrame, data: t}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// reportLoadedMsg is the constructor for [MsgReportLoaded]
func reportLoadedMsg(report *models.Report, err error) Msg {
	return Msg{kind: MsgReportLoaded, data: reportResult{report: report, err: err}}
}
