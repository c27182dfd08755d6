package model

import "time"

// GameStatus is the global game flag polled by the client. Active->inactive
// is the single transition the client must detect exactly once per session.
type GameStatus struct {
	Active      bool `json:"game_active"`
	MaxWinners  int  `json:"max_winners,omitempty"`
	WinnerCount int  `json:"winner_count,omitempty"`
}

// WinType is the shape of completion achieved on a board
type WinType string

const (
	WinRow    WinType = "row"
	WinColumn WinType = "column"
	WinFull   WinType = "full"
)

// winLabels maps win types to their user-facing labels
var winLabels = map[WinType]string{
	WinRow:    "Row",
	WinColumn: "Column",
	WinFull:   "Full Board",
}

// Known reports whether the win type is one of the closed set
func (w WinType) Known() bool {
	_, ok := winLabels[w]
	return ok
}

// Label returns the user-facing label for the win type. Unknown values are
// displayed raw rather than dropped.
func (w WinType) Label() string {
	if label, ok := winLabels[w]; ok {
		return label
	}
	return string(w)
}

// Winner is one entry in the winners collection fetched at game end
type Winner struct {
	ID         int       `json:"id"`
	PlayerID   PlayerID  `json:"player"`
	PlayerName string    `json:"player_name"`
	WinType    WinType   `json:"win_type"`
	WonAt      time.Time `json:"won_at,omitzero"`
}

// ScanRecord is a confirmed task completion
type ScanRecord struct {
	ID              int       `json:"id"`
	ScannerID       PlayerID  `json:"scanner"`
	TargetID        PlayerID  `json:"target"`
	TaskID          int       `json:"task"`
	ScannerName     string    `json:"scanner_name,omitempty"`
	TargetName      string    `json:"target_name,omitempty"`
	TaskDescription string    `json:"task_description,omitempty"`
	Timestamp       time.Time `json:"timestamp,omitzero"`
}

// ScanResult is the server's interpretation of a submitted scan
type ScanResult struct {
	Scan       ScanRecord `json:"scan"`
	NewWins    []WinType  `json:"new_wins"`
	GameActive bool       `json:"game_active"`
}

// Won reports whether the scan produced at least one new win
func (r ScanResult) Won() bool {
	return len(r.NewWins) > 0
}

// Task is one entry in the global task catalog
type Task struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}
