package app

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/fieldday-games/bingohunt/internal/api"
	"github.com/fieldday-games/bingohunt/internal/identity"
	"github.com/fieldday-games/bingohunt/internal/model"
	"github.com/fieldday-games/bingohunt/internal/route"
	"github.com/fieldday-games/bingohunt/internal/ui"
)

// signupScreen registers the player and persists the local identity
type signupScreen struct {
	api       api.Interface
	ids       identity.Store
	presenter ui.Presenter
	input     ui.Input
	nav       *Navigator
	logger    *slog.Logger
}

func newSignupScreen(
	apiClient api.Interface,
	ids identity.Store,
	presenter ui.Presenter,
	input ui.Input,
	nav *Navigator,
	logger *slog.Logger,
) *signupScreen {
	return &signupScreen{
		api:       apiClient,
		ids:       ids,
		presenter: presenter,
		input:     input,
		nav:       nav,
		logger:    logger,
	}
}

func (s *signupScreen) Run(ctx context.Context) {
	s.presenter.ShowSignupForm()

	for {
		s.presenter.ShowToast(ui.ToastInfo, "Your name:")
		name, err := s.input.ReadLine(ctx)
		if err != nil {
			return
		}
		if strings.TrimSpace(name) == "" {
			s.presenter.ShowToast(ui.ToastError, "Name is required")
			continue
		}

		s.presenter.ShowToast(ui.ToastInfo, "Your phone number:")
		rawPhone, err := s.input.ReadLine(ctx)
		if err != nil {
			return
		}
		phone, ok := NormalizePhone(rawPhone)
		if !ok {
			s.presenter.ShowToast(ui.ToastError, "Phone number must be exactly 10 digits")
			continue
		}

		player, err := s.api.Register(ctx, strings.TrimSpace(name), phone)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.presenter.ShowToast(ui.ToastError, err.Error())
			continue
		}

		if err := s.ids.Set(model.Identity{ID: player.ID, Name: player.Name}); err != nil {
			s.logger.Error("failed to persist identity", slog.String("error", err.Error()))
			s.presenter.ShowToast(ui.ToastError, "Could not save your player identity")
			continue
		}

		s.logger.Info("player registered", slog.String("player_id", string(player.ID)))
		s.presenter.ShowQRCode(player.ID)
		s.presenter.ShowToast(ui.ToastSuccess, "Welcome, "+player.Name+"!")
		s.nav.Go(route.Board{})
		return
	}
}

// NormalizePhone strips formatting and requires exactly 10 digits
func NormalizePhone(raw string) (string, bool) {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() != 10 {
		return "", false
	}
	return digits.String(), true
}
