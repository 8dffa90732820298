// core/design/session.go
// Progressive two-phase delivery: each submitted request yields at most two
// updates — a quick-mode preview, then the exhaustive result that supersedes
// it. A generation counter guards against stale completions: when a newer
// request lands, the older one is cancelled and anything it still produces
// is dropped, never merged (last-writer-wins).
package design

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Phase labels an Update within a request's lifecycle.
type Phase string

const (
	PhasePreview Phase = "preview"
	PhaseFinal   Phase = "final"
)

// Update is one delivery from a progressive design request.
type Update struct {
	RequestID  string
	Generation uint64
	Phase      Phase
	Result     Result
	Err        error
}

// Session serializes progressive design requests for one consumer (one UI
// surface). Concurrent sessions share nothing.
type Session struct {
	eng    *Engine
	gen    atomic.Uint64
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSession wraps an engine in a progressive-delivery session.
func NewSession(eng *Engine) *Session { return &Session{eng: eng} }

// Submit starts a new request, superseding any in-flight one. The returned
// channel delivers at most a preview and a final update, then closes. The
// channel is buffered, so a consumer that ignores the preview loses nothing.
func (s *Session) Submit(ctx context.Context, template string, spec Spec, opts Options) <-chan Update {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	cctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	gen := s.gen.Add(1)
	s.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan Update, 2)

	go func() {
		defer close(ch)
		emit := func(phase Phase, res Result, err error) {
			if s.gen.Load() != gen {
				return // superseded; drop the stale completion
			}
			select {
			case ch <- Update{RequestID: id, Generation: gen, Phase: phase, Result: res, Err: err}:
			case <-cctx.Done():
			}
		}

		quick := opts
		quick.Exhaustive = false
		if res, err := s.eng.Design(cctx, template, spec, quick); err == nil {
			emit(PhasePreview, res, nil)
		}
		if cctx.Err() != nil {
			return
		}

		full := opts
		full.Exhaustive = true
		res, err := s.eng.Design(cctx, template, spec, full)
		if cctx.Err() != nil {
			return
		}
		emit(PhaseFinal, res, err)
	}()
	return ch
}

// Cancel aborts the in-flight request, if any.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
