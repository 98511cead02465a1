package blitzar

import (
	"testing"

	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomPoints(n int) []*ristretto.Point {
	out := make([]*ristretto.Point, n)
	for i := range out {
		var p ristretto.Point
		out[i] = p.Rand()
	}
	return out
}

func TestDecomposeGeneratorFold(t *testing.T) {
	assert := assert.New(t)

	// 5 = 101b in the low bits, 6 = 110b in the high bits.
	d := decomposeGeneratorFold(uint64ToScalar(5), uint64ToScalar(6))
	require.Len(t, d, 3)
	assert.Equal(uint8(1), d[0])
	assert.Equal(uint8(2), d[1])
	assert.Equal(uint8(3), d[2])

	d = decomposeGeneratorFold(uint64ToScalar(1), uint64ToScalar(0))
	require.Len(t, d, 1)
	assert.Equal(uint8(1), d[0])
}

func TestFoldGeneratorsDecomposedMatchesNaive(t *testing.T) {
	assert := assert.New(t)

	base := randomPoints(8)
	var x, xInv ristretto.Scalar
	x.Rand()
	xInv.Inverse(&x)

	naive := copyPoints(base)
	require.NoError(t, foldGeneratorsNaive(naive, &xInv, &x, 4))

	decomposed := copyPoints(base)
	decomposition := decomposeGeneratorFold(&xInv, &x)
	require.NoError(t, foldGeneratorsDecomposed(decomposed, decomposition, 4))

	for i := 0; i < 4; i++ {
		assert.True(naive[i].Equals(decomposed[i]), "index %d", i)
		// Bit-exact: the compressed encodings agree too.
		var c1, c2 CompressedElement
		CompressPoint(&c1, naive[i])
		CompressPoint(&c2, decomposed[i])
		assert.Equal(c1, c2)
	}
}

func TestFoldGeneratorsOddTail(t *testing.T) {
	assert := assert.New(t)

	base := randomPoints(3)
	x := uint64ToScalar(7)
	var xInv ristretto.Scalar
	xInv.Inverse(x)

	naive := copyPoints(base)
	require.NoError(t, foldGeneratorsNaive(naive, &xInv, x, 2))
	// Tail slot only scales by the low multiplier.
	var want ristretto.Point
	want.ScalarMult(base[1], &xInv)
	assert.True(naive[1].Equals(&want))

	decomposed := copyPoints(base)
	decomposition := decomposeGeneratorFold(&xInv, x)
	require.NoError(t, foldGeneratorsDecomposed(decomposed, decomposition, 2))
	for i := 0; i < 2; i++ {
		assert.True(naive[i].Equals(decomposed[i]))
	}
}

func TestFoldGeneratorsDefinition(t *testing.T) {
	assert := assert.New(t)

	base := randomPoints(2)
	x := uint64ToScalar(5)
	var xInv ristretto.Scalar
	xInv.Inverse(x)

	g := copyPoints(base)
	require.NoError(t, foldGeneratorsNaive(g, &xInv, x, 1))

	var lo, hi, want ristretto.Point
	lo.ScalarMult(base[0], &xInv)
	hi.ScalarMult(base[1], x)
	want.Add(&lo, &hi)
	assert.True(g[0].Equals(&want))
}

func TestFoldGeneratorsShapeErrors(t *testing.T) {
	assert := assert.New(t)

	g := randomPoints(4)
	one := uint64ToScalar(1)
	assert.ErrorIs(foldGeneratorsNaive(g, one, one, 0), ErrInvalidShape)
	assert.ErrorIs(foldGeneratorsNaive(g, one, one, 4), ErrInvalidShape)
	assert.ErrorIs(foldGeneratorsDecomposed(g, decomposeGeneratorFold(one, one), 1), ErrInvalidShape)
}
