package blitzar

import (
	"fmt"

	"github.com/bwesterb/go-ristretto"
	"golang.org/x/sync/errgroup"

	"github.com/blocketh-dot/blitzar/device"
	"github.com/blocketh-dot/blitzar/log"
)

// Accounting sizes of one element in device memory.
const (
	deviceScalarBytes = 32
	devicePointBytes  = 128
)

// deviceDriver issues the expensive per-round work as asynchronous
// sub-operations against independent device streams. Sub-operations launched
// within one call may reorder freely; every call joins all of its
// sub-operations before returning.
type deviceDriver struct {
	log   log.Logger
	alloc *device.Allocator
	host  *hostDriver
}

func NewDeviceDriver(logger log.Logger) Driver {
	if logger == nil {
		logger = log.Nop()
	}
	return &deviceDriver{
		log:   logger.Named("device"),
		alloc: device.DefaultAllocator(),
		host:  &hostDriver{log: logger.Named("host")},
	}
}

func (d *deviceDriver) newStream() (*device.Stream, error) {
	stream, err := d.alloc.NewStream()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResourceExhausted, err)
	}
	return stream, nil
}

func (d *deviceDriver) MakeWorkspace(descriptor *ProofDescriptor, aVec []*ristretto.Scalar) (*Workspace, error) {
	if len(aVec) != len(descriptor.BVector) {
		return nil, fmt.Errorf("%w: a vector %d, descriptor %d", ErrLengthMismatch, len(aVec), len(descriptor.BVector))
	}

	n := int64(descriptor.Length())
	reservation, err := d.alloc.Reserve(2*n*deviceScalarBytes + n*devicePointBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResourceExhausted, err)
	}
	stream, err := d.newStream()
	if err != nil {
		reservation.Release()
		return nil, err
	}

	ws := newWorkspace(descriptor, ResidencyDevice)
	ws.reservation = reservation

	// Three independent upload copies on one stream; the future owns the
	// stream and completes once all of them are visible.
	stream.Submit(func() error {
		ws.aVec = copyScalars(aVec)
		return nil
	})
	stream.Submit(func() error {
		ws.bVec = copyScalars(descriptor.BVector)
		return nil
	})
	stream.Submit(func() error {
		ws.gVec = copyPoints(descriptor.GVector)
		return nil
	})

	fut := device.AwaitAndOwnStream(stream, ws)
	ws, err = fut.Await()
	if err != nil {
		reservation.Release()
		return nil, fmt.Errorf("%w: %v", ErrCollaboratorFailure, err)
	}
	d.log.Debugw("workspace uploaded", "id", ws.id, "n", descriptor.Length())
	return ws, nil
}

// commitToFoldPartial computes <u, gHalf> + <u, v>*q with the
// multiexponentiation on its own stream overlapped with the inner product.
func (d *deviceDriver) commitToFoldPartial(commit *CompressedElement, gHalf []*ristretto.Point,
	q *ristretto.Point, uVec, vVec []*ristretto.Scalar) error {
	stream, err := d.newStream()
	if err != nil {
		return err
	}

	var uCommit *ristretto.Point
	uCommitFut := stream.Submit(func() error {
		uCommit = multiscalarMul(uVec, gHalf[:len(uVec)])
		return nil
	})
	productFut := device.Go(func() (*ristretto.Scalar, error) {
		return innerProduct(uVec, vVec), nil
	})

	product, err := productFut.Await()
	if err == nil {
		_, err = uCommitFut.Await()
	}
	if closeErr := stream.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCollaboratorFailure, err)
	}

	var commitP ristretto.Point
	commitP.ScalarMult(q, product)
	commitP.Add(uCommit, &commitP)
	CompressPoint(commit, &commitP)
	return nil
}

func (d *deviceDriver) CommitToFold(lValue, rValue *CompressedElement, ws *Workspace) error {
	if err := ws.requireResidency(ResidencyDevice); err != nil {
		return err
	}
	mid := len(ws.gVec) / 2
	if mid == 0 {
		return fmt.Errorf("%w: commit on a length-%d workspace", ErrDegenerateRound, len(ws.gVec))
	}
	if err := ws.requireState(stateRoundReady); err != nil {
		return err
	}

	q := ws.descriptor.QValue
	var group errgroup.Group
	group.Go(func() error {
		return d.commitToFoldPartial(lValue, ws.gVec[mid:], q, ws.aVec[:mid], ws.bVec[mid:])
	})
	group.Go(func() error {
		return d.commitToFoldPartial(rValue, ws.gVec[:mid], q, ws.aVec[mid:], ws.bVec[:mid])
	})
	if err := group.Wait(); err != nil {
		return err
	}

	ws.state = stateCommitted
	return nil
}

func (d *deviceDriver) Fold(ws *Workspace, x *ristretto.Scalar) error {
	if err := ws.requireResidency(ResidencyDevice); err != nil {
		return err
	}
	if err := ws.requireState(stateCommitted); err != nil {
		return err
	}

	ws.roundIndex++
	var xInv ristretto.Scalar
	xInv.Inverse(x)
	mid := len(ws.gVec) / 2

	var group errgroup.Group
	group.Go(func() error {
		return d.foldOnStream(func() error { return foldScalars(ws.aVec, x, &xInv, mid) })
	})
	group.Go(func() error {
		return d.foldOnStream(func() error { return foldScalars(ws.bVec, &xInv, x, mid) })
	})
	if mid > 1 {
		// One pass of double-and-add over the joint bit schedule instead of
		// two scalar multiplications per slot.
		decomposition := decomposeGeneratorFold(&xInv, x)
		group.Go(func() error {
			return d.foldOnStream(func() error { return foldGeneratorsDecomposed(ws.gVec, decomposition, mid) })
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	ws.truncate(mid)

	if mid == 1 {
		ws.state = stateFinal
	} else {
		ws.state = stateRoundReady
	}
	d.log.Debugw("folded", "id", ws.id, "round", ws.roundIndex, "length", mid)
	return nil
}

// foldOnStream runs one fold kernel on its own stream and joins it.
func (d *deviceDriver) foldOnStream(kernel func() error) error {
	stream, err := d.newStream()
	if err != nil {
		return err
	}
	fut := stream.Submit(kernel)
	_, err = fut.Await()
	if closeErr := stream.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("%w: %v", ErrCollaboratorFailure, closeErr)
	}
	return err
}

func (d *deviceDriver) ComputeExpectedCommitment(commit *CompressedElement, descriptor *ProofDescriptor,
	lVec, rVec []CompressedElement, xVec []*ristretto.Scalar, apValue *ristretto.Scalar) error {
	// TODO: run the verification multiexponentiation on a device stream.
	return d.host.ComputeExpectedCommitment(commit, descriptor, lVec, rVec, xVec, apValue)
}

func (d *deviceDriver) ReleaseWorkspace(ws *Workspace) error {
	if err := ws.requireResidency(ResidencyDevice); err != nil {
		return err
	}
	if ws.reservation != nil {
		ws.reservation.Release()
	}
	ws.aVec, ws.bVec, ws.gVec = nil, nil, nil
	ws.state = stateReleased
	d.log.Debugw("workspace released", "id", ws.id)
	return nil
}
