package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldday-games/bingohunt/internal/ui"
)

func TestSignupRegistersAndPersistsIdentity(t *testing.T) {
	h := newHarness(t, false)
	h.start(t, "")

	require.Eventually(t, func() bool {
		return h.presenter.signupFormCount() > 0
	}, waitFor, tick)

	h.input.Type("Alice", "(555) 123-4567")

	require.Eventually(t, func() bool {
		return h.presenter.boardCount() > 0
	}, waitFor, tick)

	id, err := h.ids.Get()
	require.NoError(t, err)
	assert.Equal(t, selfID, id.ID)
	assert.Equal(t, "Alice", id.Name)

	require.Len(t, h.presenter.qrCodeList(), 1)
	assert.Equal(t, selfID, h.presenter.qrCodeList()[0])
	assert.True(t, h.presenter.hasToast(ui.ToastSuccess, "Welcome, Alice!"))
	assert.Equal(t, 1, h.api.registerCount())
}

func TestSignupRejectsEmptyName(t *testing.T) {
	h := newHarness(t, false)
	h.start(t, "")

	require.Eventually(t, func() bool {
		return h.presenter.signupFormCount() > 0
	}, waitFor, tick)

	h.input.Type("   ", "Alice", "5551234567")

	require.Eventually(t, func() bool {
		return h.presenter.boardCount() > 0
	}, waitFor, tick)
	assert.True(t, h.presenter.hasToast(ui.ToastError, "Name is required"))
	assert.Equal(t, 1, h.api.registerCount())
}

func TestSignupRejectsBadPhone(t *testing.T) {
	h := newHarness(t, false)
	h.start(t, "")

	require.Eventually(t, func() bool {
		return h.presenter.signupFormCount() > 0
	}, waitFor, tick)

	h.input.Type("Alice", "12345", "Alice", "555-123-4567")

	require.Eventually(t, func() bool {
		return h.presenter.boardCount() > 0
	}, waitFor, tick)
	assert.True(t, h.presenter.hasToast(ui.ToastError, "Phone number must be exactly 10 digits"))
	assert.Equal(t, 1, h.api.registerCount())
}

func TestSignupGateLiftsAfterRegistration(t *testing.T) {
	h := newHarness(t, false)
	h.start(t, "")

	require.Eventually(t, func() bool {
		return h.presenter.signupFormCount() > 0
	}, waitFor, tick)

	h.input.Type("Alice", "5551234567")

	require.Eventually(t, func() bool {
		return h.presenter.boardCount() > 0
	}, waitFor, tick)

	// Navigation now resolves normally instead of bouncing to signup
	forms := h.presenter.signupFormCount()
	h.nav.GoFragment("#gameover")

	// Active game bounces the summary back to the board
	require.Eventually(t, func() bool {
		return h.presenter.boardCount() > 1
	}, waitFor, tick)
	assert.Equal(t, forms, h.presenter.signupFormCount())
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{name: "bare digits", raw: "5551234567", want: "5551234567", valid: true},
		{name: "formatted", raw: "(555) 123-4567", want: "5551234567", valid: true},
		{name: "dotted", raw: "555.123.4567", want: "5551234567", valid: true},
		{name: "too short", raw: "555123", valid: false},
		{name: "too long", raw: "15551234567", valid: false},
		{name: "empty", raw: "", valid: false},
		{name: "letters only", raw: "call me", valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizePhone(tc.raw)
			require.Equal(t, tc.valid, ok)
			if tc.valid {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestNavigatorDropsWhenSaturated(t *testing.T) {
	nav := NewNavigator()
	for i := 0; i < 100; i++ {
		nav.GoFragment("#board")
	}

	// The channel is bounded; excess events are dropped, not blocked on
	count := 0
	for {
		select {
		case <-nav.Fragments():
			count++
		case <-time.After(10 * time.Millisecond):
			assert.Equal(t, 16, count)
			return
		}
	}
}
