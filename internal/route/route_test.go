package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldday-games/bingohunt/internal/model"
)

const targetID = "11111111-2222-3333-4444-555555555555"

func TestParseBasicScreens(t *testing.T) {
	assert.Equal(t, Signup{}, Parse("#signup"))
	assert.Equal(t, Board{}, Parse("#board"))
	assert.Equal(t, GameOver{}, Parse("#gameover"))
}

func TestParseDefaultsToBoard(t *testing.T) {
	assert.Equal(t, Board{}, Parse(""))
	assert.Equal(t, Board{}, Parse("#"))
	assert.Equal(t, Board{}, Parse("#nonsense"))
	assert.Equal(t, Board{}, Parse("#settings/42"))
}

func TestParseScan(t *testing.T) {
	assert.Equal(t, Scan{}, Parse("#scan"))

	r, ok := Parse("#scan/7").(Scan)
	require.True(t, ok)
	require.NotNil(t, r.TaskID)
	assert.Equal(t, 7, *r.TaskID)
}

func TestParseScanBadTask(t *testing.T) {
	r, ok := Parse("#scan/seven").(Invalid)
	require.True(t, ok)
	assert.Equal(t, "Invalid task", r.Reason)
}

func TestParseConfirm(t *testing.T) {
	r, ok := Parse("#confirm/" + targetID).(Confirm)
	require.True(t, ok)
	assert.Equal(t, model.PlayerID(targetID), r.TargetID)
	assert.Nil(t, r.TaskID)

	r, ok = Parse("#confirm/" + targetID + "/7").(Confirm)
	require.True(t, ok)
	require.NotNil(t, r.TaskID)
	assert.Equal(t, 7, *r.TaskID)
}

func TestParseConfirmRejectsMalformedTarget(t *testing.T) {
	for _, frag := range []string{
		"#confirm",
		"#confirm/",
		"#confirm/not-a-uuid",
		"#confirm/not-a-uuid/7",
		"#confirm/" + targetID[:35],
	} {
		_, ok := Parse(frag).(Invalid)
		assert.True(t, ok, "expected Invalid for %q", frag)
	}
}

func TestParseConfirmRejectsMalformedTask(t *testing.T) {
	r, ok := Parse("#confirm/" + targetID + "/x").(Invalid)
	require.True(t, ok)
	assert.Equal(t, "Invalid scan details", r.Reason)
}

func TestParseToleratesMissingHash(t *testing.T) {
	assert.Equal(t, Signup{}, Parse("signup"))
	assert.Equal(t, Board{}, Parse("board"))
}

func TestFragmentRoundTrip(t *testing.T) {
	taskID := 7
	routes := []Route{
		Signup{},
		Board{},
		GameOver{},
		Scan{},
		Scan{TaskID: &taskID},
		Confirm{TargetID: targetID},
		Confirm{TargetID: targetID, TaskID: &taskID},
	}

	for _, r := range routes {
		assert.Equal(t, r, Parse(r.Fragment()), "round trip for %q", r.Fragment())
	}
}

func TestInvalidRedirectsToBoard(t *testing.T) {
	assert.Equal(t, "#board", Invalid{Reason: "x"}.Fragment())
}
