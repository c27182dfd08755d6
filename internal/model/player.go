package model

import (
	"time"

	"github.com/google/uuid"
)

// PlayerID uniquely identifies a player across the system.
// On the wire it is the canonical 36-character hyphenated hex token.
type PlayerID string

// ValidPlayerID reports whether s has the canonical identifier shape.
// uuid.Parse accepts several legacy encodings, so the length is pinned
// to the hyphenated form before parsing.
func ValidPlayerID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Player represents a registered game participant
type Player struct {
	ID        PlayerID  `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	QRCodeURL string    `json:"qr_code_url,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Identity is the locally persisted view of the player, set once at
// registration. Absence is a first-class state: it forces the signup screen.
type Identity struct {
	ID   PlayerID `json:"id"`
	Name string   `json:"name"`
}

// Valid reports whether the identity is present and well-formed
func (i Identity) Valid() bool {
	return ValidPlayerID(string(i.ID))
}
