// Package sequencer wraps a *clob.Pool behind a single supervised
// goroutine so every public pool operation is serialized the way spec §5
// requires ("a pool is exclusively owned for the duration of any mutating
// call"). Concurrent callers submit closures and block for the result;
// the pool itself is never touched from more than one goroutine.
//
// Grounded on the teacher's internal/worker.go WorkerPool and
// internal/net/server.go's tomb.WithContext lifecycle, collapsed from an
// N-worker pool to exactly one worker: the teacher fans connection
// handling out across many goroutines because handling one TCP client
// has no cross-client ordering requirement, but matching engine mutations
// do, so this sequencer keeps the tomb-supervised-goroutine shape and
// drops the pool-of-workers part of it.
package sequencer

import (
	"errors"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"clob/internal/clob"
)

const taskChanSize = 256

// ErrStopped is returned by Submit once the sequencer has been stopped.
var ErrStopped = errors.New("sequencer: stopped")

// task is one unit of serialized work: run against the pool, send the
// result back on reply.
type task struct {
	fn    func(*clob.Pool) (any, error)
	reply chan result
}

type result struct {
	value any
	err   error
}

// Sequencer runs a single goroutine, supervised by a tomb.Tomb, that owns
// pool exclusively and drains a task queue in submission order.
type Sequencer struct {
	pool  *clob.Pool
	tasks chan task
	t     tomb.Tomb
}

// New starts a sequencer owning pool. The caller must call Stop when
// done to release the worker goroutine.
func New(pool *clob.Pool) *Sequencer {
	s := &Sequencer{
		pool:  pool,
		tasks: make(chan task, taskChanSize),
	}
	s.t.Go(s.run)
	return s
}

func (s *Sequencer) run() error {
	log.Info().Msg("sequencer starting")
	for {
		select {
		case <-s.t.Dying():
			return nil
		case tk := <-s.tasks:
			value, err := tk.fn(s.pool)
			tk.reply <- result{value: value, err: err}
		}
	}
}

// Submit enqueues fn to run against the pool on the sequencer's single
// goroutine and blocks for its result. Safe to call from any number of
// concurrent goroutines; fn itself never runs concurrently with any other
// submitted fn.
func (s *Sequencer) Submit(fn func(*clob.Pool) (any, error)) (any, error) {
	reply := make(chan result, 1)
	select {
	case <-s.t.Dying():
		return nil, ErrStopped
	default:
	}
	select {
	case <-s.t.Dying():
		return nil, ErrStopped
	case s.tasks <- task{fn: fn, reply: reply}:
	}
	r := <-reply
	return r.value, r.err
}

// Stop signals the worker goroutine to exit and waits for it.
func (s *Sequencer) Stop() error {
	s.t.Kill(nil)
	return s.t.Wait()
}
