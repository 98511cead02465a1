package blitzar

import (
	"fmt"
	"math/bits"

	"github.com/bwesterb/go-ristretto"

	"github.com/blocketh-dot/blitzar/log"
)

// hostDriver carries every proving operation synchronously in host memory.
type hostDriver struct {
	log log.Logger
}

func NewHostDriver(logger log.Logger) Driver {
	if logger == nil {
		logger = log.Nop()
	}
	return &hostDriver{log: logger.Named("host")}
}

func (d *hostDriver) MakeWorkspace(descriptor *ProofDescriptor, aVec []*ristretto.Scalar) (*Workspace, error) {
	if len(aVec) != len(descriptor.BVector) {
		return nil, fmt.Errorf("%w: a vector %d, descriptor %d", ErrLengthMismatch, len(aVec), len(descriptor.BVector))
	}
	ws := newWorkspace(descriptor, ResidencyHost)
	ws.aVec = copyScalars(aVec)
	ws.bVec = copyScalars(descriptor.BVector)
	ws.gVec = copyPoints(descriptor.GVector)
	d.log.Debugw("workspace created", "id", ws.id, "n", len(ws.gVec))
	return ws, nil
}

// commitToFoldPartial computes one of the two round commitments,
// <u, gHalf> + <u, v>*q, compressed into commit.
func commitToFoldPartial(commit *CompressedElement, gHalf []*ristretto.Point, q *ristretto.Point, uVec, vVec []*ristretto.Scalar) {
	product := innerProduct(uVec, vVec)
	commitP := multiscalarMul(uVec, gHalf[:len(uVec)])
	var t ristretto.Point
	t.ScalarMult(q, product)
	commitP.Add(commitP, &t)
	CompressPoint(commit, commitP)
}

func (d *hostDriver) CommitToFold(lValue, rValue *CompressedElement, ws *Workspace) error {
	if err := ws.requireResidency(ResidencyHost); err != nil {
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
	commitToFoldPartial(lValue, ws.gVec[mid:], q, ws.aVec[:mid], ws.bVec[mid:])
	commitToFoldPartial(rValue, ws.gVec[:mid], q, ws.aVec[mid:], ws.bVec[:mid])

	ws.state = stateCommitted
	return nil
}

func (d *hostDriver) Fold(ws *Workspace, x *ristretto.Scalar) error {
	if err := ws.requireResidency(ResidencyHost); err != nil {
		return err
	}
	if err := ws.requireState(stateCommitted); err != nil {
		return err
	}

	ws.roundIndex++
	var xInv ristretto.Scalar
	xInv.Inverse(x)
	mid := len(ws.gVec) / 2

	if err := foldScalars(ws.aVec, x, &xInv, mid); err != nil {
		return err
	}
	if err := foldScalars(ws.bVec, &xInv, x, mid); err != nil {
		return err
	}
	// The generators are not consulted again once a single element remains.
	if mid > 1 {
		if err := foldGeneratorsNaive(ws.gVec, &xInv, x, mid); err != nil {
			return err
		}
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

// foldChallengeProducts expands the round challenges into the per-generator
// coefficient vector s. Challenge j pairs with bit k-1-j of the index, so
// s[i] = prod x_j for set bits and x_j^-1 for clear bits. The whole vector is
// built from the all-inverse prefix with one multiplication per entry.
func foldChallengeProducts(xVec []*ristretto.Scalar, n int) []*ristretto.Scalar {
	k := len(xVec)
	xSq := make([]*ristretto.Scalar, k)
	var allProd ristretto.Scalar
	allProd.SetOne()
	for j := range xVec {
		var sq ristretto.Scalar
		sq.Mul(xVec[j], xVec[j])
		xSq[j] = &sq
		allProd.Mul(&allProd, xVec[j])
	}
	var allInv ristretto.Scalar
	allInv.Inverse(&allProd)

	s := make([]*ristretto.Scalar, n)
	s[0] = &allInv
	for i := 1; i < n; i++ {
		lz := bits.Len(uint(i)) - 1
		var si ristretto.Scalar
		si.Mul(s[i-(1<<lz)], xSq[k-1-lz])
		s[i] = &si
	}
	return s
}

func (d *hostDriver) ComputeExpectedCommitment(commit *CompressedElement, descriptor *ProofDescriptor,
	lVec, rVec []CompressedElement, xVec []*ristretto.Scalar, apValue *ristretto.Scalar) error {
	k := descriptor.Rounds()
	if len(xVec) != k || len(lVec) != k || len(rVec) != k {
		return fmt.Errorf("%w: %d rounds, %d challenges, %d/%d messages",
			ErrLengthMismatch, k, len(xVec), len(lVec), len(rVec))
	}

	n := descriptor.Length()
	s := foldChallengeProducts(xVec, n)

	// <ap*s, g> + ap*<s, b> * q
	apS := make([]*ristretto.Scalar, n)
	for i := range s {
		var t ristretto.Scalar
		t.Mul(apValue, s[i])
		apS[i] = &t
	}
	expected := multiscalarMul(apS, descriptor.GVector)
	var sb ristretto.Scalar
	sb.Mul(apValue, innerProduct(s, descriptor.BVector))
	var qTerm ristretto.Point
	qTerm.ScalarMult(descriptor.QValue, &sb)
	expected.Add(expected, &qTerm)

	// Each round added x_j^2*L_j + x_j^-2*R_j to the running commitment, so
	// reconstructing the original one removes every round term again.
	for j := 0; j < k; j++ {
		var l, r ristretto.Point
		if err := lVec[j].Decompress(&l); err != nil {
			return err
		}
		if err := rVec[j].Decompress(&r); err != nil {
			return err
		}
		var xSq, xSqInv ristretto.Scalar
		xSq.Mul(xVec[j], xVec[j])
		xSqInv.Inverse(&xSq)
		var t ristretto.Point
		t.ScalarMult(&l, &xSq)
		expected.Sub(expected, &t)
		t.ScalarMult(&r, &xSqInv)
		expected.Sub(expected, &t)
	}

	CompressPoint(commit, expected)
	return nil
}

func (d *hostDriver) ReleaseWorkspace(ws *Workspace) error {
	if err := ws.requireResidency(ResidencyHost); err != nil {
		return err
	}
	ws.aVec, ws.bVec, ws.gVec = nil, nil, nil
	ws.state = stateReleased
	return nil
}
