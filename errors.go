package blitzar

import "errors"

// Error kinds surfaced by the proving core. Callers match them with errors.Is;
// wrapped messages carry the offending sizes or states.
var (
	// ErrInvalidShape reports a midpoint or span length outside the fold
	// preconditions 0 < mid < n <= 2*mid.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrLengthMismatch reports inputs of unequal length where equality is
	// required.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrDegenerateRound reports a commit requested on a length-1 workspace.
	ErrDegenerateRound = errors.New("degenerate round")

	// ErrProtocolMisuse reports a driver call out of state-machine order.
	ErrProtocolMisuse = errors.New("protocol misuse")

	// ErrWrongMemorySpace reports a workspace handed to a driver of the other
	// residency.
	ErrWrongMemorySpace = errors.New("wrong memory space")

	// ErrResourceExhausted reports an allocation or stream-creation failure.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrCollaboratorFailure wraps errors surfaced by the group, transcript or
	// device collaborators.
	ErrCollaboratorFailure = errors.New("collaborator failure")
)
