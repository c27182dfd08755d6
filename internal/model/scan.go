package model

// PendingScan is the ephemeral pairing of a scanned target with a chosen
// task. It lives only for the duration of the confirmation screen and is
// discarded on submit or cancellation.
type PendingScan struct {
	TargetID PlayerID
	TaskID   *int // nil until a task has been chosen
}

// Validate checks the invariants that can be verified without the network:
// the target must have the identifier shape and must not be the local player.
func (p PendingScan) Validate(self PlayerID) error {
	if !ValidPlayerID(string(p.TargetID)) {
		return ErrInvalidPlayerID
	}
	if p.TargetID == self {
		return ErrSelfScan
	}
	return nil
}

// HasTask reports whether a task has been chosen for this scan
func (p PendingScan) HasTask() bool {
	return p.TaskID != nil
}
