package blitzar

import (
	"testing"

	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldScalarsEven(t *testing.T) {
	assert := assert.New(t)

	s := []*ristretto.Scalar{
		uint64ToScalar(1), uint64ToScalar(2), uint64ToScalar(3), uint64ToScalar(4),
	}
	mLow := uint64ToScalar(10)
	mHigh := uint64ToScalar(100)
	require.NoError(t, foldScalars(s, mLow, mHigh, 2))

	// 10*1 + 100*3 and 10*2 + 100*4
	assert.True(s[0].Equals(uint64ToScalar(310)))
	assert.True(s[1].Equals(uint64ToScalar(420)))
}

func TestFoldScalarsOddTail(t *testing.T) {
	assert := assert.New(t)

	// n=3, mid=2: index 1 has no high partner and only scales.
	s := []*ristretto.Scalar{
		uint64ToScalar(1), uint64ToScalar(2), uint64ToScalar(3),
	}
	mLow := uint64ToScalar(10)
	mHigh := uint64ToScalar(100)
	require.NoError(t, foldScalars(s, mLow, mHigh, 2))

	assert.True(s[0].Equals(uint64ToScalar(310)))
	assert.True(s[1].Equals(uint64ToScalar(20)))
}

func TestFoldScalarsShapeErrors(t *testing.T) {
	assert := assert.New(t)

	s := []*ristretto.Scalar{
		uint64ToScalar(1), uint64ToScalar(2), uint64ToScalar(3), uint64ToScalar(4),
	}
	one := uint64ToScalar(1)

	assert.ErrorIs(foldScalars(s, one, one, 0), ErrInvalidShape)
	assert.ErrorIs(foldScalars(s, one, one, 4), ErrInvalidShape)
	assert.ErrorIs(foldScalars(s, one, one, 5), ErrInvalidShape)
	// n=4 > 2*mid=2
	assert.ErrorIs(foldScalars(s, one, one, 1), ErrInvalidShape)
}

// Folding is linear in the multiplier pair: folding with (m1+m2) pairs equals
// the sum of folding with each.
func TestFoldScalarsLinearity(t *testing.T) {
	assert := assert.New(t)

	base := make([]*ristretto.Scalar, 8)
	for i := range base {
		var s ristretto.Scalar
		base[i] = s.Rand()
	}
	var mLow1, mHigh1, mLow2, mHigh2 ristretto.Scalar
	mLow1.Rand()
	mHigh1.Rand()
	mLow2.Rand()
	mHigh2.Rand()

	fold := func(mLow, mHigh *ristretto.Scalar) []*ristretto.Scalar {
		s := copyScalars(base)
		if err := foldScalars(s, mLow, mHigh, 4); err != nil {
			t.Fatal(err)
		}
		return s[:4]
	}

	var mLowSum, mHighSum ristretto.Scalar
	mLowSum.Add(&mLow1, &mLow2)
	mHighSum.Add(&mHigh1, &mHigh2)

	f1 := fold(&mLow1, &mHigh1)
	f2 := fold(&mLow2, &mHigh2)
	fSum := fold(&mLowSum, &mHighSum)
	for i := 0; i < 4; i++ {
		var sum ristretto.Scalar
		sum.Add(f1[i], f2[i])
		assert.True(fSum[i].Equals(&sum))
	}
}

// Folding under the challenge schedule (x, x^-1) yields x*s[i] + x^-1*s[mid+i]
// for every entry of an even-length vector.
func TestFoldScalarsInverseSchedule(t *testing.T) {
	assert := assert.New(t)

	orig := make([]*ristretto.Scalar, 4)
	for i := range orig {
		var s ristretto.Scalar
		orig[i] = s.Rand()
	}
	x := uint64ToScalar(5)
	var xInv ristretto.Scalar
	xInv.Inverse(x)

	s := copyScalars(orig)
	require.NoError(t, foldScalars(s, x, &xInv, 2))
	// Each folded entry is x*orig[i] + x^-1*orig[2+i].
	for i := 0; i < 2; i++ {
		var want ristretto.Scalar
		want.Mul(x, orig[i])
		mulAdd(&want, &xInv, orig[2+i], &want)
		assert.True(s[i].Equals(&want))
	}
}
