package blitzar

import (
	"fmt"
	"strings"

	"github.com/bwesterb/go-ristretto"

	"github.com/blocketh-dot/blitzar/log"
)

// Backend selects which driver implementation carries a proof. It is a single
// configuration value fixed at initialization; one proof never mixes backends.
type Backend int

const (
	BackendHost Backend = iota
	BackendDevice
)

func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(s) {
	case "", "host", "cpu":
		return BackendHost, nil
	case "device", "gpu":
		return BackendDevice, nil
	default:
		return 0, fmt.Errorf("unknown backend %q", s)
	}
}

func (b Backend) String() string {
	if b == BackendDevice {
		return "device"
	}
	return "host"
}

// Driver is the uniform proving contract shared by the host and device
// backends. Calls on one workspace are strictly ordered: each must return
// before the next is issued. Distinct workspaces may progress concurrently.
type Driver interface {
	// MakeWorkspace allocates proving state for one proof session. The
	// descriptor is borrowed for the workspace's lifetime; aVec must match the
	// descriptor's vector length.
	MakeWorkspace(descriptor *ProofDescriptor, aVec []*ristretto.Scalar) (*Workspace, error)

	// CommitToFold writes the round's L and R commitments into the caller's
	// slots. It returns only once both are computed and compressed.
	CommitToFold(lValue, rValue *CompressedElement, ws *Workspace) error

	// Fold halves the workspace vectors under the challenge x.
	Fold(ws *Workspace, x *ristretto.Scalar) error

	// ComputeExpectedCommitment reconstructs the commitment implied by a
	// proof's round messages, challenges and final a value.
	ComputeExpectedCommitment(commit *CompressedElement, descriptor *ProofDescriptor,
		lVec, rVec []CompressedElement, xVec []*ristretto.Scalar, apValue *ristretto.Scalar) error

	// ReleaseWorkspace returns the workspace's resources. Outstanding device
	// work has already drained when it returns.
	ReleaseWorkspace(ws *Workspace) error
}

// NewDriver builds the driver for the configured backend. A nil logger
// disables logging.
func NewDriver(backend Backend, logger log.Logger) (Driver, error) {
	if logger == nil {
		logger = log.Nop()
	}
	switch backend {
	case BackendHost:
		return NewHostDriver(logger), nil
	case BackendDevice:
		return NewDeviceDriver(logger), nil
	default:
		return nil, fmt.Errorf("unknown backend %d", backend)
	}
}
