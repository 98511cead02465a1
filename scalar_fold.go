package blitzar

import (
	"fmt"

	"github.com/bwesterb/go-ristretto"
)

func checkFoldShape(n, mid int) error {
	if mid <= 0 || mid >= n || n > 2*mid {
		return fmt.Errorf("%w: fold of %d elements about midpoint %d", ErrInvalidShape, n, mid)
	}
	return nil
}

// foldScalars reduces scalars[0..n) in place to scalars[0..mid):
//
//	scalars[i] = mLow*scalars[i] + mHigh*scalars[mid+i]   for i < n-mid
//	scalars[i] = mLow*scalars[i]                          for the odd tail
//
// The slice itself is not shrunk; the caller truncates to mid.
func foldScalars(scalars []*ristretto.Scalar, mLow, mHigh *ristretto.Scalar, mid int) error {
	n := len(scalars)
	if err := checkFoldShape(n, mid); err != nil {
		return err
	}
	m := n - mid
	foldScalarsCase1(scalars, mLow, mHigh, mid, m)
	if m != mid {
		foldScalarsCase2(scalars, mLow, mid, m)
	}
	return nil
}

// Both halves contribute.
func foldScalarsCase1(scalars []*ristretto.Scalar, mLow, mHigh *ristretto.Scalar, mid, m int) {
	for i := 0; i < m; i++ {
		var t ristretto.Scalar
		t.Mul(mLow, scalars[i])
		mulAdd(scalars[i], mHigh, scalars[mid+i], &t)
	}
}

// The high half is shorter; the tail only scales.
func foldScalarsCase2(scalars []*ristretto.Scalar, mLow *ristretto.Scalar, mid, m int) {
	for i := m; i < mid; i++ {
		scalars[i].Mul(mLow, scalars[i])
	}
}
