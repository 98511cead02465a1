package blitzar

import (
	"github.com/bwesterb/go-ristretto"
)

// maxScalarBits is the bit length of the Curve25519 scalar field order.
const maxScalarBits = 253

// decomposeGeneratorFold jointly encodes the two fold multipliers as a per-bit
// additive schedule: entry j holds bit j of mLow in its low bit and bit j of
// mHigh in its second bit. Trailing zero entries are trimmed so the
// double-and-add walk starts at the highest set bit.
func decomposeGeneratorFold(mLow, mHigh *ristretto.Scalar) []uint8 {
	lowBytes := mLow.Bytes()
	highBytes := mHigh.Bytes()
	decomposition := make([]uint8, maxScalarBits)
	top := -1
	for j := 0; j < maxScalarBits; j++ {
		d := (lowBytes[j/8] >> (j % 8)) & 1
		d |= ((highBytes[j/8] >> (j % 8)) & 1) << 1
		decomposition[j] = d
		if d != 0 {
			top = j
		}
	}
	return decomposition[:top+1]
}

// foldGeneratorsDecomposed reduces generators[0..n) in place to
// generators[0..mid) using a shared double-and-add walk over the decomposition
// schedule. Each index performs one pass over the schedule instead of two full
// scalar multiplications; the result is bit-exact with foldGeneratorsNaive.
func foldGeneratorsDecomposed(generators []*ristretto.Point, decomposition []uint8, mid int) error {
	n := len(generators)
	if err := checkFoldShape(n, mid); err != nil {
		return err
	}
	m := n - mid
	for i := 0; i < mid; i++ {
		acc := new(ristretto.Point).SetZero()
		for j := len(decomposition) - 1; j >= 0; j-- {
			acc.Add(acc, acc)
			d := decomposition[j]
			if d&1 != 0 {
				acc.Add(acc, generators[i])
			}
			if d&2 != 0 && i < m {
				acc.Add(acc, generators[mid+i])
			}
		}
		generators[i] = acc
	}
	return nil
}

// foldGeneratorsNaive is the defining form of the generator fold:
//
//	generators[i] = mLow*generators[i] + mHigh*generators[mid+i]   for i < n-mid
//	generators[i] = mLow*generators[i]                             for the odd tail
func foldGeneratorsNaive(generators []*ristretto.Point, mLow, mHigh *ristretto.Scalar, mid int) error {
	n := len(generators)
	if err := checkFoldShape(n, mid); err != nil {
		return err
	}
	m := n - mid
	for i := 0; i < m; i++ {
		var lo, hi ristretto.Point
		lo.ScalarMult(generators[i], mLow)
		hi.ScalarMult(generators[mid+i], mHigh)
		generators[i].Add(&lo, &hi)
	}
	for i := m; i < mid; i++ {
		var t ristretto.Point
		t.ScalarMult(generators[i], mLow)
		generators[i] = &t
	}
	return nil
}
