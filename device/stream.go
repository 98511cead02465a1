package device

import (
	"errors"
	"sync"

	"github.com/hashicorp/go-multierror"
)

var errStreamClosed = errors.New("stream closed")

// Stream executes submitted work asynchronously in submission order. It models
// one accelerator command queue: independent streams make independent progress.
type Stream struct {
	// sendMu serializes submissions against Close so nothing is enqueued on a
	// closed queue. The worker never takes it.
	sendMu sync.Mutex
	closed bool
	tasks  chan *task
	done   chan struct{}

	alloc *Allocator

	failMu   sync.Mutex
	failures *multierror.Error
}

type task struct {
	fn  func() error
	fut *Future[struct{}]
}

const streamQueueDepth = 64

func newStream() *Stream {
	s := &Stream{
		tasks: make(chan *task, streamQueueDepth),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Stream) run() {
	for t := range s.tasks {
		err := t.fn()
		if err != nil {
			s.failMu.Lock()
			s.failures = multierror.Append(s.failures, err)
			s.failMu.Unlock()
		}
		t.fut.complete(struct{}{}, err)
	}
	close(s.done)
}

// Submit enqueues fn and returns its completion handle. Submissions to one
// stream complete in order.
func (s *Stream) Submit(fn func() error) *Future[struct{}] {
	fut := newFuture[struct{}]()
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.closed {
		fut.complete(struct{}{}, errStreamClosed)
		return fut
	}
	s.tasks <- &task{fn: fn, fut: fut}
	return fut
}

// Synchronize blocks until all previously submitted work has completed and
// reports any error it produced.
func (s *Stream) Synchronize() error {
	fut := s.Submit(func() error { return nil })
	if _, err := fut.Await(); err != nil && !errors.Is(err, errStreamClosed) {
		return err
	}
	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.failures.ErrorOrNil()
}

// Close drains outstanding work, stops the stream and aggregates every failure
// seen over its lifetime. A closed stream rejects further submissions.
func (s *Stream) Close() error {
	s.sendMu.Lock()
	first := !s.closed
	if first {
		s.closed = true
		close(s.tasks)
	}
	s.sendMu.Unlock()

	<-s.done
	if first && s.alloc != nil {
		s.alloc.releaseStream()
	}

	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.failures.ErrorOrNil()
}
