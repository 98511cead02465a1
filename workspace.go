package blitzar

import (
	"fmt"

	"github.com/bwesterb/go-ristretto"
	"github.com/google/uuid"

	"github.com/blocketh-dot/blitzar/device"
)

// Residency records which memory space a workspace's vectors live in. It is a
// static property of the driver that produced the workspace; drivers reject
// workspaces of the other residency before touching any vector.
type Residency int

const (
	ResidencyHost Residency = iota
	ResidencyDevice
)

func (r Residency) String() string {
	if r == ResidencyDevice {
		return "device"
	}
	return "host"
}

// roundState tracks the per-workspace protocol state machine:
// RoundReady -> Committed -> RoundReady ... -> Final.
type roundState int

const (
	stateRoundReady roundState = iota
	stateCommitted
	stateFinal
	stateReleased
)

func (s roundState) String() string {
	switch s {
	case stateRoundReady:
		return "round-ready"
	case stateCommitted:
		return "committed"
	case stateFinal:
		return "final"
	default:
		return "released"
	}
}

// Workspace is the mutable state of one proof session: the current folded
// a, b and g vectors, the round index and a borrowed descriptor. It is owned
// by exactly one task; at most one driver operation may be in flight on it.
type Workspace struct {
	id         string
	descriptor *ProofDescriptor
	residency  Residency
	roundIndex int
	state      roundState

	aVec []*ristretto.Scalar
	bVec []*ristretto.Scalar
	gVec []*ristretto.Point

	// Device residency only: the workspace's slice of the device budget.
	reservation *device.Reservation
}

func newWorkspace(descriptor *ProofDescriptor, residency Residency) *Workspace {
	return &Workspace{
		id:         uuid.New().String(),
		descriptor: descriptor,
		residency:  residency,
		state:      stateRoundReady,
	}
}

func (ws *Workspace) ID() string {
	return ws.id
}

func (ws *Workspace) Residency() Residency {
	return ws.residency
}

func (ws *Workspace) RoundIndex() int {
	return ws.roundIndex
}

func (ws *Workspace) Length() int {
	return len(ws.gVec)
}

// FinalValues returns the fully folded a and b scalars. Only valid once every
// round has been folded.
func (ws *Workspace) FinalValues() (*ristretto.Scalar, *ristretto.Scalar, error) {
	if ws.state != stateFinal {
		return nil, nil, fmt.Errorf("%w: final values requested in state %s", ErrProtocolMisuse, ws.state)
	}
	return ws.aVec[0], ws.bVec[0], nil
}

func (ws *Workspace) requireResidency(want Residency) error {
	if ws.residency != want {
		return fmt.Errorf("%w: %s workspace passed to %s driver", ErrWrongMemorySpace, ws.residency, want)
	}
	return nil
}

func (ws *Workspace) requireState(want roundState) error {
	if ws.state != want {
		return fmt.Errorf("%w: workspace in state %s, operation requires %s", ErrProtocolMisuse, ws.state, want)
	}
	return nil
}

// truncate performs the logical post-fold shrink of all three vectors; backing
// storage is kept.
func (ws *Workspace) truncate(mid int) {
	ws.aVec = ws.aVec[:mid]
	ws.bVec = ws.bVec[:mid]
	ws.gVec = ws.gVec[:mid]
}
