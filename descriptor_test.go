package blitzar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProofDescriptor(t *testing.T) {
	assert := assert.New(t)

	gVec, q := NewProofGens(8, []byte("descriptor"))
	bVec := scalarRange(t, 8)

	descriptor, err := NewProofDescriptor(bVec, gVec, q)
	require.NoError(t, err)
	assert.Equal(8, descriptor.Length())
	assert.Equal(3, descriptor.Rounds())

	_, err = NewProofDescriptor(bVec[:4], gVec, q)
	assert.ErrorIs(err, ErrLengthMismatch)

	_, err = NewProofDescriptor(bVec[:6], gVec[:6], q)
	assert.ErrorIs(err, ErrInvalidShape)

	_, err = NewProofDescriptor(bVec[:1], gVec[:1], q)
	assert.ErrorIs(err, ErrInvalidShape)
}
