package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fieldday-games/bingohunt/internal/api"
	"github.com/fieldday-games/bingohunt/internal/model"
	"github.com/fieldday-games/bingohunt/internal/route"
	"github.com/fieldday-games/bingohunt/internal/ui"
)

// gameOverScreen shows the end-of-game summary and winners list
type gameOverScreen struct {
	api       api.Interface
	self      model.Identity
	presenter ui.Presenter
	input     ui.Input
	nav       *Navigator
	logger    *slog.Logger
}

func newGameOverScreen(
	apiClient api.Interface,
	self model.Identity,
	presenter ui.Presenter,
	input ui.Input,
	nav *Navigator,
	logger *slog.Logger,
) *gameOverScreen {
	return &gameOverScreen{
		api:       apiClient,
		self:      self,
		presenter: presenter,
		input:     input,
		nav:       nav,
		logger:    logger,
	}
}

func (s *gameOverScreen) Run(ctx context.Context) {
	s.presenter.ShowLoading()

	winners, status, err := s.fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.presenter.ShowErrorCard(ui.ErrorCard{
			Title:   "Error",
			Message: err.Error(),
		})
		if _, err := s.input.ReadLine(ctx); err != nil {
			return
		}
		s.nav.Go(route.Board{})
		return
	}

	// Still running: nothing to summarize yet
	if status.Active {
		s.nav.Go(route.Board{})
		return
	}

	isWinner := false
	for _, w := range winners {
		if w.PlayerID == s.self.ID {
			isWinner = true
			break
		}
	}

	s.presenter.ShowGameOver(ui.GameOverView{
		IsWinner: isWinner,
		Winners:  winners,
		SelfID:   s.self.ID,
	})

	if _, err := s.input.ReadLine(ctx); err != nil {
		return
	}
	s.nav.Go(route.Board{})
}

// fetch loads the winners collection and game state concurrently
func (s *gameOverScreen) fetch(ctx context.Context) ([]model.Winner, *model.GameStatus, error) {
	var (
		wg      sync.WaitGroup
		winners []model.Winner
		status  *model.GameStatus

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
		winners, err = s.api.GetWinners(ctx)
		record(err)
	}()
	go func() {
		defer wg.Done()
		var err error
		status, err = s.api.GetGameState(ctx)
		record(err)
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, nil, firstErr
	}
	return winners, status, nil
}
