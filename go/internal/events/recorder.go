package events

import (
	"context"
	"sync"
)

// Recorder keeps published events in memory
type Recorder struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// FailWith makes every later Publish return err
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
