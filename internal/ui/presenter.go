// Package ui defines the rendering surface the screens draw on, decoupled
// from any concrete frontend. View models carry everything a renderer needs;
// screens never format output themselves.
package ui

import (
	"context"

	"github.com/fieldday-games/bingohunt/internal/model"
)

// ToastLevel classifies a transient notification
type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastError   ToastLevel = "error"
	ToastSuccess ToastLevel = "success"
)

// Chrome is the process-wide header/bottom-bar visibility state, reset
// unconditionally at the top of every transition
type Chrome struct {
	Header    bool
	BottomBar bool
}

// DefaultChrome is the fully visible chrome restored on every transition
var DefaultChrome = Chrome{Header: true, BottomBar: true}

// BoardView renders the player's board and progress
type BoardView struct {
	PlayerName string
	Completed  int
	Total      int
	Cells      []model.Cell // ordered by position
}

// ConfirmView renders the scan confirmation prompt
type ConfirmView struct {
	TargetName      string
	TaskDescription string
}

// ResultKind classifies a terminal result card
type ResultKind string

const (
	ResultSuccess     ResultKind = "success"
	ResultWin         ResultKind = "win"
	ResultError       ResultKind = "error"
	ResultUnavailable ResultKind = "unavailable"
	ResultAllComplete ResultKind = "all_complete"
)

// ResultCard is a terminal card ending a workflow step
type ResultCard struct {
	Kind     ResultKind
	Title    string
	Message  string
	Confetti bool
	CanRetry bool // offers re-entering the scan for the same task
}

// ErrorCard is a terminal data-fetch error with a manual retry action
type ErrorCard struct {
	Title   string
	Message string
}

// GameOverView renders the end-of-game summary
type GameOverView struct {
	IsWinner bool
	Winners  []model.Winner
	SelfID   model.PlayerID
}

// Presenter is the rendering surface for all screens
type Presenter interface {
	ShowToast(level ToastLevel, message string)
	SetChrome(c Chrome)
	ShowLoading()
	ShowBoard(v BoardView)
	ShowScanPrompt(taskDescription string)
	ShowCameraError(message string)
	ShowConfirm(v ConfirmView)
	ShowResultCard(v ResultCard)
	ShowErrorCard(v ErrorCard)
	ShowWinnersOverlay(winners []model.Winner)
	ShowGameOver(v GameOverView)
	ShowSignupForm()
	ShowQRCode(id model.PlayerID)
}

// Input supplies user-entered lines to interactive screens
type Input interface {
	ReadLine(ctx context.Context) (string, error)
}
