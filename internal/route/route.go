// Package route parses URL-fragment-encoded routes into a closed set of
// screen variants. All structural validation happens here so the router's
// "validate then redirect" policy is a single exhaustive switch.
package route

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fieldday-games/bingohunt/internal/model"
)

// Route is one parsed navigation target
type Route interface {
	// Fragment renders the route back to its canonical fragment form
	Fragment() string
}

// Signup is the registration screen
type Signup struct{}

// Board is the player's board screen
type Board struct{}

// Scan is the QR scanning screen, optionally pre-bound to a task
type Scan struct {
	TaskID *int
}

// Confirm is the scan confirmation screen
type Confirm struct {
	TargetID model.PlayerID
	TaskID   *int
}

// GameOver is the end-of-game summary screen
type GameOver struct{}

// Invalid is a structurally malformed fragment. Reason is user-facing.
type Invalid struct {
	Reason string
}

func (Signup) Fragment() string   { return "#signup" }
func (Board) Fragment() string    { return "#board" }
func (GameOver) Fragment() string { return "#gameover" }

func (r Scan) Fragment() string {
	if r.TaskID != nil {
		return fmt.Sprintf("#scan/%d", *r.TaskID)
	}
	return "#scan"
}

func (r Confirm) Fragment() string {
	if r.TaskID != nil {
		return fmt.Sprintf("#confirm/%s/%d", r.TargetID, *r.TaskID)
	}
	return fmt.Sprintf("#confirm/%s", r.TargetID)
}

func (r Invalid) Fragment() string { return "#board" }

// Parse maps a fragment to a route. Unknown fragments resolve to the board;
// structurally malformed ones resolve to Invalid with a user-facing reason.
func Parse(fragment string) Route {
	frag := strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	frag = strings.Trim(frag, "/")

	parts := strings.Split(frag, "/")

	switch parts[0] {
	case "signup":
		return Signup{}

	case "gameover":
		return GameOver{}

	case "scan":
		if len(parts) < 2 {
			return Scan{}
		}
		taskID, err := strconv.Atoi(parts[1])
		if err != nil {
			return Invalid{Reason: "Invalid task"}
		}
		return Scan{TaskID: &taskID}

	case "confirm":
		if len(parts) < 2 || !model.ValidPlayerID(parts[1]) {
			return Invalid{Reason: "Invalid player ID"}
		}
		r := Confirm{TargetID: model.PlayerID(parts[1])}
		if len(parts) >= 3 {
			taskID, err := strconv.Atoi(parts[2])
			if err != nil {
				return Invalid{Reason: "Invalid scan details"}
			}
			r.TaskID = &taskID
		}
		return r

	default:
		// "", "board", and anything unknown all land on the board
		return Board{}
	}
}
