package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fieldday-games/bingohunt/internal/model"
	"github.com/fieldday-games/bingohunt/internal/route"
	"github.com/fieldday-games/bingohunt/internal/scan"
	"github.com/fieldday-games/bingohunt/internal/ui"
)

// scanScreen runs one decode session for a pre-selected task. Validation of
// the decoded identifier happens before any network traffic; task
// availability is re-validated later on the confirm screen.
type scanScreen struct {
	self       model.Identity
	taskID     int
	presenter  ui.Presenter
	input      ui.Input
	capability scan.Capability
	nav        *Navigator
	logger     *slog.Logger
}

func newScanScreen(
	self model.Identity,
	taskID int,
	presenter ui.Presenter,
	input ui.Input,
	capability scan.Capability,
	nav *Navigator,
	logger *slog.Logger,
) *scanScreen {
	return &scanScreen{
		self:       self,
		taskID:     taskID,
		presenter:  presenter,
		input:      input,
		capability: capability,
		nav:        nav,
		logger:     logger,
	}
}

func (s *scanScreen) Run(ctx context.Context) {
	s.presenter.ShowScanPrompt(fmt.Sprintf("task #%d", s.taskID))

	err := s.capability.Start(ctx, func(code string) {
		s.onDecode(code)
	})
	if err != nil {
		// Capability errors get their own full-screen state, distinct
		// from decode failures
		s.logger.Warn("scan capability failed", slog.String("error", err.Error()))
		s.presenter.ShowCameraError(err.Error())
		if _, err := s.input.ReadLine(ctx); err != nil {
			return
		}
		s.nav.Go(route.Board{})
	}
	// The session delivers at most one decode; the router owns stopping it
	// on the resulting transition.
}

// onDecode validates the decoded text before any navigation. Self-scan is
// rejected here, before the confirm screen or the network is ever touched.
func (s *scanScreen) onDecode(code string) {
	// Explicit stop so no further decodes are acted on
	s.capability.Stop()

	if code == "" {
		s.nav.Go(route.Board{})
		return
	}

	if !model.ValidPlayerID(code) {
		s.presenter.ShowToast(ui.ToastError, "Invalid code")
		s.nav.Go(route.Board{})
		return
	}

	if model.PlayerID(code) == s.self.ID {
		s.presenter.ShowToast(ui.ToastError, "You cannot scan your own code!")
		s.nav.Go(route.Board{})
		return
	}

	s.nav.Go(route.Confirm{
		TargetID: model.PlayerID(code),
		TaskID:   &s.taskID,
	})
}
