// Package device provides the accelerator runtime collaborators consumed by the
// device proving backend: a byte-budget allocator, ordered work streams, and
// single-consumer futures. Work submitted to distinct streams runs in parallel;
// work on one stream runs in submission order.
package device

type outcome[T any] struct {
	val T
	err error
}

// Future is a single-consumer completion handle. Await must be called exactly
// once; it blocks until the producing work finishes and returns its result.
type Future[T any] struct {
	ch chan outcome[T]
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{ch: make(chan outcome[T], 1)}
}

func (f *Future[T]) complete(val T, err error) {
	f.ch <- outcome[T]{val: val, err: err}
}

func (f *Future[T]) Await() (T, error) {
	o := <-f.ch
	return o.val, o.err
}

// Go runs fn on its own goroutine and returns its future. Used for work that
// does not need stream ordering, such as host-side reductions overlapped with
// stream kernels.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		f.complete(fn())
	}()
	return f
}

// AwaitAndOwnStream ties a stream's lifetime to a value's completion handle:
// the returned future synchronizes the stream, releases it, and only then
// yields the value. The caller must not touch the stream again.
func AwaitAndOwnStream[T any](s *Stream, val T) *Future[T] {
	f := newFuture[T]()
	go func() {
		if err := s.Close(); err != nil {
			var zero T
			f.complete(zero, err)
			return
		}
		f.complete(val, nil)
	}()
	return f
}
