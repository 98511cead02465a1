package device

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamOrdering(t *testing.T) {
	assert := assert.New(t)

	alloc := NewAllocator(1<<20, 4)
	stream, err := alloc.NewStream()
	require.NoError(t, err)

	var order []int
	for i := 0; i < 16; i++ {
		i := i
		stream.Submit(func() error {
			order = append(order, i)
			return nil
		})
	}
	require.NoError(t, stream.Synchronize())
	require.Len(t, order, 16)
	for i, got := range order {
		assert.Equal(i, got)
	}
	require.NoError(t, stream.Close())
}

func TestStreamFailureAggregation(t *testing.T) {
	assert := assert.New(t)

	alloc := NewAllocator(1<<20, 4)
	stream, err := alloc.NewStream()
	require.NoError(t, err)

	errBoom := errors.New("boom")
	fut := stream.Submit(func() error { return errBoom })
	_, err = fut.Await()
	assert.ErrorIs(err, errBoom)

	// A second failure joins the first on close.
	stream.Submit(func() error { return errors.New("again") })
	closeErr := stream.Close()
	require.Error(t, closeErr)
	assert.ErrorIs(closeErr, errBoom)

	// Closed streams reject further work.
	fut = stream.Submit(func() error { return nil })
	_, err = fut.Await()
	assert.ErrorIs(err, errStreamClosed)
}

func TestStreamCloseDrains(t *testing.T) {
	alloc := NewAllocator(1<<20, 4)
	stream, err := alloc.NewStream()
	require.NoError(t, err)

	var ran int32
	for i := 0; i < 8; i++ {
		stream.Submit(func() error {
			atomic.AddInt32(&ran, 1)
			return nil
		})
	}
	require.NoError(t, stream.Close())
	assert.Equal(t, int32(8), atomic.LoadInt32(&ran))
}

func TestStreamPoolExhaustion(t *testing.T) {
	assert := assert.New(t)

	alloc := NewAllocator(1<<20, 2)
	s1, err := alloc.NewStream()
	require.NoError(t, err)
	s2, err := alloc.NewStream()
	require.NoError(t, err)

	_, err = alloc.NewStream()
	assert.ErrorIs(err, ErrNoStreams)

	// Closing returns the slot.
	require.NoError(t, s1.Close())
	s3, err := alloc.NewStream()
	require.NoError(t, err)
	require.NoError(t, s2.Close())
	require.NoError(t, s3.Close())
}

func TestAllocatorBudget(t *testing.T) {
	assert := assert.New(t)

	alloc := NewAllocator(1024, 4)
	r1, err := alloc.Reserve(512)
	require.NoError(t, err)
	assert.Equal(int64(512), alloc.InUse())

	_, err = alloc.Reserve(1024)
	assert.ErrorIs(err, ErrOutOfMemory)

	r2, err := alloc.Reserve(512)
	require.NoError(t, err)

	r1.Release()
	r1.Release() // releasing twice is harmless
	assert.Equal(int64(512), alloc.InUse())
	r2.Release()
	assert.Equal(int64(0), alloc.InUse())
}

func TestFutureGo(t *testing.T) {
	assert := assert.New(t)

	fut := Go(func() (int, error) { return 42, nil })
	val, err := fut.Await()
	require.NoError(t, err)
	assert.Equal(42, val)

	errBad := errors.New("bad")
	futErr := Go(func() (int, error) { return 0, errBad })
	_, err = futErr.Await()
	assert.ErrorIs(err, errBad)
}

func TestAwaitAndOwnStream(t *testing.T) {
	assert := assert.New(t)

	alloc := NewAllocator(1<<20, 1)
	stream, err := alloc.NewStream()
	require.NoError(t, err)

	var ran bool
	stream.Submit(func() error {
		ran = true
		return nil
	})

	fut := AwaitAndOwnStream(stream, "payload")
	val, err := fut.Await()
	require.NoError(t, err)
	assert.Equal("payload", val)
	assert.True(ran)

	// The stream slot was released with the future.
	s2, err := alloc.NewStream()
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestAwaitAndOwnStreamSurfacesFailures(t *testing.T) {
	alloc := NewAllocator(1<<20, 1)
	stream, err := alloc.NewStream()
	require.NoError(t, err)

	errCopy := errors.New("copy failed")
	stream.Submit(func() error { return errCopy })

	fut := AwaitAndOwnStream(stream, "payload")
	_, err = fut.Await()
	assert.ErrorIs(t, err, errCopy)
}
