package blitzar

import (
	"fmt"

	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"
)

// InnerProductProof is the transcript of one argument: the per-round L and R
// commitments in round order and the fully folded a and b scalars.
type InnerProductProof struct {
	LVec []CompressedElement
	RVec []CompressedElement
	A, B *ristretto.Scalar
}

// Commitment computes C = <a, g> + <a, b>*q compressed, the value the
// verifier is handed alongside the proof.
func Commitment(descriptor *ProofDescriptor, aVec []*ristretto.Scalar) (*CompressedElement, error) {
	if len(aVec) != len(descriptor.BVector) {
		return nil, fmt.Errorf("%w: a vector %d, descriptor %d", ErrLengthMismatch, len(aVec), len(descriptor.BVector))
	}
	commitP := multiscalarMul(aVec, descriptor.GVector)
	var t ristretto.Point
	t.ScalarMult(descriptor.QValue, innerProduct(aVec, descriptor.BVector))
	commitP.Add(commitP, &t)
	var commit CompressedElement
	CompressPoint(&commit, commitP)
	return &commit, nil
}

// CreateInnerProductProof drives the driver through every round: commit,
// absorb (L, R) into the transcript, fold under the extracted challenge.
// Terminates once the workspace vectors reach length one.
func CreateInnerProductProof(drv Driver, transcript *merlin.Transcript,
	descriptor *ProofDescriptor, aVec []*ristretto.Scalar) (*InnerProductProof, error) {
	InnerproductDomainSep(uint64(descriptor.Length()), transcript)

	ws, err := drv.MakeWorkspace(descriptor, aVec)
	if err != nil {
		return nil, err
	}
	defer drv.ReleaseWorkspace(ws)

	rounds := descriptor.Rounds()
	lVec := make([]CompressedElement, rounds)
	rVec := make([]CompressedElement, rounds)
	for i := 0; i < rounds; i++ {
		if err := drv.CommitToFold(&lVec[i], &rVec[i], ws); err != nil {
			return nil, err
		}
		AppendCompressed("L", &lVec[i], transcript)
		AppendCompressed("R", &rVec[i], transcript)
		x := ChallengeScalar("x", transcript)
		if err := drv.Fold(ws, x); err != nil {
			return nil, err
		}
	}

	apValue, bpValue, err := ws.FinalValues()
	if err != nil {
		return nil, err
	}
	var a, b ristretto.Scalar
	a.Add(&a, apValue)
	b.Add(&b, bpValue)
	return &InnerProductProof{
		LVec: lVec,
		RVec: rVec,
		A:    &a,
		B:    &b,
	}, nil
}

// VerifyInnerProductProof regenerates the challenges from the transcript,
// reconstructs the expected commitment and compares it against commit. The
// returned bool is the protocol verdict; the error reports operational
// failures only.
func VerifyInnerProductProof(drv Driver, transcript *merlin.Transcript, descriptor *ProofDescriptor,
	commit *CompressedElement, proof *InnerProductProof) (bool, error) {
	rounds := descriptor.Rounds()
	if len(proof.LVec) != rounds || len(proof.RVec) != rounds {
		return false, fmt.Errorf("%w: %d rounds, %d/%d messages",
			ErrLengthMismatch, rounds, len(proof.LVec), len(proof.RVec))
	}
	if proof.A == nil || proof.B == nil {
		return false, fmt.Errorf("%w: missing final values", ErrLengthMismatch)
	}

	InnerproductDomainSep(uint64(descriptor.Length()), transcript)
	xVec := make([]*ristretto.Scalar, rounds)
	for i := 0; i < rounds; i++ {
		AppendCompressed("L", &proof.LVec[i], transcript)
		AppendCompressed("R", &proof.RVec[i], transcript)
		xVec[i] = ChallengeScalar("x", transcript)
	}

	var expected CompressedElement
	if err := drv.ComputeExpectedCommitment(&expected, descriptor, proof.LVec, proof.RVec, xVec, proof.A); err != nil {
		return false, err
	}
	if expected != *commit {
		return false, nil
	}

	// The expected commitment binds a' only; the serialized b' must match the
	// challenge-folded b vector.
	bpValue, err := foldedBValue(descriptor, xVec)
	if err != nil {
		return false, err
	}
	return proof.B.Equals(bpValue), nil
}

// foldedBValue folds the descriptor's b vector through the whole challenge
// schedule, yielding the b scalar an honest prover ends with.
func foldedBValue(descriptor *ProofDescriptor, xVec []*ristretto.Scalar) (*ristretto.Scalar, error) {
	bVec := copyScalars(descriptor.BVector)
	for _, x := range xVec {
		var xInv ristretto.Scalar
		xInv.Inverse(x)
		mid := len(bVec) / 2
		if err := foldScalars(bVec, &xInv, x, mid); err != nil {
			return nil, err
		}
		bVec = bVec[:mid]
	}
	return bVec[0], nil
}
