package blitzar

import (
	"fmt"
	"math/bits"

	"github.com/bwesterb/go-ristretto"
)

// ProofDescriptor holds the immutable public inputs of one proof: the b vector,
// the generator vector and the shared auxiliary generator q. A descriptor may
// back any number of concurrent workspaces and must outlive all of them.
type ProofDescriptor struct {
	BVector []*ristretto.Scalar
	GVector []*ristretto.Point
	QValue  *ristretto.Point
}

func NewProofDescriptor(bVec []*ristretto.Scalar, gVec []*ristretto.Point, q *ristretto.Point) (*ProofDescriptor, error) {
	if len(bVec) != len(gVec) {
		return nil, fmt.Errorf("%w: b vector %d, g vector %d", ErrLengthMismatch, len(bVec), len(gVec))
	}
	n := len(gVec)
	if n < 2 || bits.OnesCount(uint(n)) != 1 {
		return nil, fmt.Errorf("%w: vector length %d must be a power of two >= 2", ErrInvalidShape, n)
	}
	return &ProofDescriptor{
		BVector: bVec,
		GVector: gVec,
		QValue:  q,
	}, nil
}

func (d *ProofDescriptor) Length() int {
	return len(d.GVector)
}

// Rounds is the number of fold rounds, log2 of the vector length.
func (d *ProofDescriptor) Rounds() int {
	return bits.TrailingZeros(uint(len(d.GVector)))
}
