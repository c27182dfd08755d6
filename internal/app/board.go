package app

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/fieldday-games/bingohunt/internal/api"
	"github.com/fieldday-games/bingohunt/internal/model"
	"github.com/fieldday-games/bingohunt/internal/poll"
	"github.com/fieldday-games/bingohunt/internal/route"
	"github.com/fieldday-games/bingohunt/internal/ui"
)

// boardScreen renders the player's board and keeps the game-end poll alive
type boardScreen struct {
	api       api.Interface
	self      model.Identity
	presenter ui.Presenter
	input     ui.Input
	nav       *Navigator
	cfg       Config
	logger    *slog.Logger

	mu      sync.Mutex
	watcher *poll.Watcher
}

var _ Stopper = (*boardScreen)(nil)

func newBoardScreen(
	apiClient api.Interface,
	self model.Identity,
	presenter ui.Presenter,
	input ui.Input,
	nav *Navigator,
	cfg Config,
	logger *slog.Logger,
) *boardScreen {
	return &boardScreen{
		api:       apiClient,
		self:      self,
		presenter: presenter,
		input:     input,
		nav:       nav,
		cfg:       cfg,
		logger:    logger,
	}
}

// Stop halts the game-end poll. Called by the router on every transition
// away from the board, on top of context cancellation.
func (s *boardScreen) Stop() {
	s.mu.Lock()
	w := s.watcher
	s.mu.Unlock()
	if w != nil {
		w.Stop()
	}
}

func (s *boardScreen) Run(ctx context.Context) {
	s.presenter.ShowLoading()

	board, status, player, err := s.fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.presenter.ShowErrorCard(ui.ErrorCard{
			Title:   "Failed to load board",
			Message: err.Error(),
		})
		// Manual retry only: any input re-enters the board
		if _, err := s.input.ReadLine(ctx); err != nil {
			return
		}
		s.nav.Go(route.Board{})
		return
	}

	// Game already over: no board is drawn
	if !status.Active {
		s.nav.Go(route.GameOver{})
		return
	}

	if err := board.Validate(); err != nil {
		s.logger.Warn("board snapshot rejected", slog.String("error", err.Error()))
		s.presenter.ShowErrorCard(ui.ErrorCard{
			Title:   "Failed to load board",
			Message: err.Error(),
		})
		if _, err := s.input.ReadLine(ctx); err != nil {
			return
		}
		s.nav.Go(route.Board{})
		return
	}

	completed, total := board.Progress()
	s.presenter.ShowBoard(ui.BoardView{
		PlayerName: player.Name,
		Completed:  completed,
		Total:      total,
		Cells:      board.Sorted(),
	})

	// The render above confirmed an active game, which seeds edge detection
	watcher := poll.NewWatcher(s.api, s.cfg.PollInterval, true, s.logger)
	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()
	watcher.Start(ctx)

	lines := readLines(ctx, s.input)

	for {
		select {
		case <-ctx.Done():
			return

		case <-watcher.Ended():
			watcher.Stop()
			s.onGameEnded(ctx, lines)
			return

		case line, ok := <-lines:
			if !ok {
				return
			}
			if s.handleInput(board, line) {
				return
			}
		}
	}
}

// handleInput processes one line of board input. Returns true when the
// screen navigated away.
func (s *boardScreen) handleInput(board model.Board, line string) bool {
	switch line {
	case "":
		// Refresh
		s.nav.Go(route.Board{})
		return true
	case "qr":
		s.presenter.ShowQRCode(s.self.ID)
		return false
	}

	taskID, err := strconv.Atoi(line)
	if err != nil {
		s.presenter.ShowToast(ui.ToastInfo, "Enter a task number, or qr to show your code")
		return false
	}

	cell, ok := board.FindTask(taskID)
	if !ok {
		s.presenter.ShowToast(ui.ToastError, "No such task on your board")
		return false
	}
	if !cell.Selectable() {
		// Completed and free cells are inert
		s.presenter.ShowToast(ui.ToastInfo, "That task is already completed")
		return false
	}

	s.nav.Go(route.Scan{TaskID: &taskID})
	return true
}

// onGameEnded surfaces the one-time winners overlay. Navigation to the
// summary happens only once the user dismisses it.
func (s *boardScreen) onGameEnded(ctx context.Context, lines <-chan string) {
	winners, err := s.api.GetWinners(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch winners", slog.String("error", err.Error()))
	}
	s.presenter.ShowWinnersOverlay(winners)

	select {
	case <-ctx.Done():
		return
	case <-lines:
		s.nav.Go(route.GameOver{})
	}
}

// fetch loads the board snapshot, game state and player profile concurrently
func (s *boardScreen) fetch(ctx context.Context) (model.Board, *model.GameStatus, *model.Player, error) {
	var (
		wg     sync.WaitGroup
		board  model.Board
		status *model.GameStatus
		player *model.Player

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

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		board, err = s.api.GetBoard(ctx, s.self.ID)
		record(err)
	}()
	go func() {
		defer wg.Done()
		var err error
		status, err = s.api.GetGameState(ctx)
		record(err)
	}()
	go func() {
		defer wg.Done()
		var err error
		player, err = s.api.GetPlayer(ctx, s.self.ID)
		record(err)
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, nil, nil, firstErr
	}
	return board, status, player, nil
}

// readLines pumps user input into a channel so screens can select over it
func readLines(ctx context.Context, input ui.Input) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for {
			line, err := input.ReadLine(ctx)
			if err != nil {
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}
