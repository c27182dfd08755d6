// Package app implements the client's navigation router and screens: the
// board with its background game-end poll, the scan and confirmation
// workflow, signup and the game-over summary.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fieldday-games/bingohunt/internal/api"
	"github.com/fieldday-games/bingohunt/internal/identity"
	"github.com/fieldday-games/bingohunt/internal/poll"
	"github.com/fieldday-games/bingohunt/internal/route"
	"github.com/fieldday-games/bingohunt/internal/scan"
	"github.com/fieldday-games/bingohunt/internal/ui"
)

// Stopper releases a screen-owned background resource. Stop must be safe
// to call at any time, including when nothing is running.
type Stopper interface {
	Stop()
}

// Config holds router timing knobs
type Config struct {
	// PollInterval is the board screen's game-state polling period
	PollInterval time.Duration

	// GameOverDelay is the pause between showing a scan result and the
	// automatic navigation to the game-over screen
	GameOverDelay time.Duration
}

// DefaultConfig returns the production timing configuration
func DefaultConfig() Config {
	return Config{
		PollInterval:  poll.DefaultInterval,
		GameOverDelay: 2 * time.Second,
	}
}

// screen is one activatable screen. Run executes until the screen is done
// or its context is cancelled.
type screen interface {
	Run(ctx context.Context)
}

// activeScreen tracks the resources of the currently active screen
type activeScreen struct {
	cancel   context.CancelFunc
	stoppers []Stopper
}

// Router maps routes to exactly one active screen, enforcing the identity
// gate and tearing down the previous screen's resources on every transition.
type Router struct {
	api        api.Interface
	ids        identity.Store
	presenter  ui.Presenter
	input      ui.Input
	capability scan.Capability
	nav        *Navigator
	cfg        Config
	logger     *slog.Logger

	mu     sync.Mutex
	active *activeScreen
}

// NewRouter creates a router
func NewRouter(
	apiClient api.Interface,
	ids identity.Store,
	presenter ui.Presenter,
	input ui.Input,
	capability scan.Capability,
	nav *Navigator,
	cfg Config,
	logger *slog.Logger,
) *Router {
	return &Router{
		api:        apiClient,
		ids:        ids,
		presenter:  presenter,
		input:      input,
		capability: capability,
		nav:        nav,
		cfg:        cfg,
		logger:     logger,
	}
}

// Run dispatches the initial fragment and then serves navigation events
// until the context is cancelled
func (r *Router) Run(ctx context.Context, initialFragment string) {
	r.Dispatch(ctx, initialFragment)

	for {
		select {
		case <-ctx.Done():
			r.teardown()
			return
		case fragment := <-r.nav.Fragments():
			r.Dispatch(ctx, fragment)
		}
	}
}

// Dispatch performs one transition: teardown, chrome reset, identity gate,
// parse, validate, activate. Dispatching the same fragment twice is safe.
func (r *Router) Dispatch(ctx context.Context, fragment string) {
	// 1. Stop the previous screen's poll and any scan session
	r.teardown()

	// 2. Restore default chrome before the gate and parser run
	r.presenter.SetChrome(ui.DefaultChrome)

	parsed := route.Parse(fragment)
	r.logger.Debug("navigating",
		slog.String("fragment", fragment),
		slog.String("route", parsed.Fragment()),
	)

	// 3. No identity forces the signup screen
	self, err := r.ids.Get()
	if err != nil {
		if _, ok := parsed.(route.Signup); !ok {
			r.presenter.SetChrome(ui.Chrome{})
			r.nav.Go(route.Signup{})
			return
		}
	}

	// 4-6. Validate the parsed route and activate the resolved screen
	switch rt := parsed.(type) {
	case route.Invalid:
		r.presenter.ShowToast(ui.ToastError, rt.Reason)
		r.nav.Go(route.Board{})

	case route.Signup:
		r.presenter.SetChrome(ui.Chrome{})
		r.activate(ctx, newSignupScreen(r.api, r.ids, r.presenter, r.input, r.nav, r.logger))

	case route.Board:
		r.activate(ctx, newBoardScreen(r.api, self, r.presenter, r.input, r.nav, r.cfg, r.logger))

	case route.Scan:
		if rt.TaskID == nil {
			r.presenter.ShowToast(ui.ToastInfo, "Select a task from the board first")
			r.nav.Go(route.Board{})
			return
		}
		r.presenter.SetChrome(ui.Chrome{})
		r.activate(ctx, newScanScreen(self, *rt.TaskID, r.presenter, r.input, r.capability, r.nav, r.logger))

	case route.Confirm:
		if rt.TaskID == nil {
			r.presenter.ShowToast(ui.ToastInfo, "Select a task from the board first")
			r.nav.Go(route.Board{})
			return
		}
		r.presenter.SetChrome(ui.Chrome{Header: true})
		r.activate(ctx, newConfirmScreen(r.api, self, rt.TargetID, *rt.TaskID, r.presenter, r.input, r.nav, r.cfg, r.logger))

	case route.GameOver:
		r.presenter.SetChrome(ui.Chrome{Header: true})
		r.activate(ctx, newGameOverScreen(r.api, self, r.presenter, r.input, r.nav, r.logger))
	}
}

// activate runs the screen in its own goroutine under a cancellable context
func (r *Router) activate(ctx context.Context, s screen) {
	screenCtx, cancel := context.WithCancel(ctx)

	act := &activeScreen{cancel: cancel}
	if stopper, ok := s.(Stopper); ok {
		act.stoppers = append(act.stoppers, stopper)
	}

	r.mu.Lock()
	r.active = act
	r.mu.Unlock()

	go s.Run(screenCtx)
}

// teardown cancels the active screen and stops every resource it owns.
// The scan capability is stopped unconditionally; stopping an idle session
// is a no-op.
func (r *Router) teardown() {
	r.mu.Lock()
	act := r.active
	r.active = nil
	r.mu.Unlock()

	if act != nil {
		act.cancel()
		for _, s := range act.stoppers {
			s.Stop()
		}
	}
	r.capability.Stop()
}
