package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fieldday-games/bingohunt/internal/api"
	"github.com/fieldday-games/bingohunt/internal/model"
	"github.com/fieldday-games/bingohunt/internal/route"
	"github.com/fieldday-games/bingohunt/internal/ui"
)

// confirmScreen resolves a scanned target plus a chosen task into a
// submitted, interpreted completion
type confirmScreen struct {
	api       api.Interface
	self      model.Identity
	pending   model.PendingScan
	presenter ui.Presenter
	input     ui.Input
	nav       *Navigator
	cfg       Config
	logger    *slog.Logger
}

func newConfirmScreen(
	apiClient api.Interface,
	self model.Identity,
	targetID model.PlayerID,
	taskID int,
	presenter ui.Presenter,
	input ui.Input,
	nav *Navigator,
	cfg Config,
	logger *slog.Logger,
) *confirmScreen {
	return &confirmScreen{
		api:       apiClient,
		self:      self,
		pending:   model.PendingScan{TargetID: targetID, TaskID: &taskID},
		presenter: presenter,
		input:     input,
		nav:       nav,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *confirmScreen) Run(ctx context.Context) {
	// Local validation first: no network round-trip for a scan that can
	// never succeed. The scanner rejects self-scans before navigating, but
	// confirm fragments are shareable and re-entrant.
	if err := s.pending.Validate(s.self.ID); err != nil {
		switch err {
		case model.ErrSelfScan:
			s.presenter.ShowToast(ui.ToastError, "You cannot scan your own code!")
		default:
			s.presenter.ShowToast(ui.ToastError, "Invalid player ID")
		}
		s.nav.Go(route.Board{})
		return
	}

	s.presenter.ShowLoading()

	target, board, err := s.fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.showTerminal(ctx, ui.ResultCard{
			Kind:    ui.ResultError,
			Title:   "Player not found",
			Message: err.Error(),
		})
		return
	}

	// Fully complete boards have nothing left to confirm
	if board.FullyComplete() {
		s.showTerminal(ctx, ui.ResultCard{
			Kind:    ui.ResultAllComplete,
			Title:   "All tasks completed",
			Message: "Your board is already full. Nice work!",
		})
		return
	}

	taskID := *s.pending.TaskID
	cell, ok := board.FindTask(taskID)
	if !ok || !cell.Selectable() {
		// Stale selection: the task was completed between choosing and
		// confirming. Recoverable by picking another task.
		s.showTerminal(ctx, ui.ResultCard{
			Kind:    ui.ResultUnavailable,
			Title:   "Task unavailable",
			Message: "That task is already completed or no longer available.",
		})
		return
	}

	s.presenter.ShowConfirm(ui.ConfirmView{
		TargetName:      target.Name,
		TaskDescription: cell.Description,
	})

	line, err := s.input.ReadLine(ctx)
	if err != nil {
		return
	}
	if answer := strings.ToLower(line); answer != "y" && answer != "yes" {
		s.nav.Go(route.Board{})
		return
	}

	s.submit(ctx, cell)
}

// submit sends exactly one request. Input is not consumed while the request
// is outstanding, so a second confirmation cannot be issued.
func (s *confirmScreen) submit(ctx context.Context, cell model.Cell) {
	result, err := s.api.SubmitScan(ctx, s.self.ID, s.pending.TargetID, cell.TaskID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.showFailure(ctx, cell.TaskID, err)
		return
	}

	s.logger.Info("scan submitted",
		slog.String("target", string(s.pending.TargetID)),
		slog.Int("task", cell.TaskID),
		slog.Int("new_wins", len(result.NewWins)),
		slog.Bool("game_active", result.GameActive),
	)

	if result.Won() {
		s.presenter.ShowResultCard(ui.ResultCard{
			Kind:     ui.ResultWin,
			Title:    "BINGO!",
			Message:  fmt.Sprintf("You completed a %s! Congratulations!", winLabel(result.NewWins, s.logger)),
			Confetti: true,
		})
	} else {
		s.presenter.ShowResultCard(ui.ResultCard{
			Kind:    ui.ResultSuccess,
			Title:   "Task Completed!",
			Message: "Nice work! Keep scanning to fill your board.",
		})
	}

	if !result.GameActive {
		// Let the player see their own result before the global summary
		select {
		case <-ctx.Done():
		case <-time.After(s.cfg.GameOverDelay):
			s.nav.Go(route.GameOver{})
		}
		return
	}

	if _, err := s.input.ReadLine(ctx); err != nil {
		return
	}
	s.nav.Go(route.Board{})
}

// showFailure renders a submission error with a retry path back into the
// scan step for the same task
func (s *confirmScreen) showFailure(ctx context.Context, taskID int, err error) {
	s.presenter.ShowResultCard(ui.ResultCard{
		Kind:     ui.ResultError,
		Title:    "Scan Failed",
		Message:  err.Error(),
		CanRetry: true,
	})

	line, readErr := s.input.ReadLine(ctx)
	if readErr != nil {
		return
	}
	if strings.ToLower(line) == "t" {
		s.nav.Go(route.Scan{TaskID: &taskID})
		return
	}
	s.nav.Go(route.Board{})
}

// showTerminal renders a card whose only exit is back to the board
func (s *confirmScreen) showTerminal(ctx context.Context, card ui.ResultCard) {
	s.presenter.ShowResultCard(card)
	if _, err := s.input.ReadLine(ctx); err != nil {
		return
	}
	s.nav.Go(route.Board{})
}

// fetch loads the target's profile and the local board concurrently
func (s *confirmScreen) fetch(ctx context.Context) (*model.Player, model.Board, error) {
	var (
		wg     sync.WaitGroup
		target *model.Player
		board  model.Board

		mu       sync.Mutex
		firstErr error
	)

	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil && err != nil {
			firstErr = err
		}
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		target, err = s.api.GetPlayer(ctx, s.pending.TargetID)
		record(err)
	}()
	go func() {
		defer wg.Done()
		var err error
		board, err = s.api.GetBoard(ctx, s.self.ID)
		record(err)
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, nil, firstErr
	}
	return target, board, nil
}

// winLabel joins the win-type labels for display. Unknown values are logged
// and shown raw rather than silently dropped.
func winLabel(wins []model.WinType, logger *slog.Logger) string {
	labels := make([]string, 0, len(wins))
	for _, w := range wins {
		if !w.Known() {
			logger.Warn("unknown win type from server", slog.String("win_type", string(w)))
		}
		labels = append(labels, w.Label())
	}
	return strings.Join(labels, ", ")
}
