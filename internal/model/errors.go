package model

import "errors"

// Common errors used across the application
var (
	// Identity errors
	ErrNoIdentity      = errors.New("no local player identity")
	ErrInvalidPlayerID = errors.New("invalid player id")

	// Scan errors
	ErrSelfScan        = errors.New("cannot scan your own code")
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskUnavailable = errors.New("task is already completed or no longer available")
	ErrDuplicateScan   = errors.New("task already completed")

	// Board errors
	ErrMalformedBoard = errors.New("malformed board snapshot")

	// Game errors
	ErrGameEnded      = errors.New("game has ended")
	ErrPlayerNotFound = errors.New("player not found")
)
