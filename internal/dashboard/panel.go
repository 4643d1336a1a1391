package dashboard

import (
	"context"
	"sync"
)

type PanelState int

const (
	StateIdle PanelState = iota
	StateLoading
	StateError
	StateSuccess
)

func (s PanelState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateSuccess:
		return "success"
	default:
		return "idle"
	}
}

type Loader[T any] func(ctx context.Context) (T, error)

// Panel holds the loading/error/success state of one widget. Loads are
// not serialised: when two overlap, whichever finishes last wins.
type Panel[T any] struct {
	mu          sync.Mutex
	state       PanelState
	value       T
	errText     string
	fallbackErr string
	last        Loader[T]
}

// NewPanel takes the message shown when a load fails without one.
func NewPanel[T any](fallbackErr string) *Panel[T] {
	return &Panel[T]{fallbackErr: fallbackErr}
}

func (p *Panel[T]) Load(ctx context.Context, load Loader[T]) error {
	p.mu.Lock()
	p.state = StateLoading
	p.errText = ""
	p.last = load
	p.mu.Unlock()

	value, err := load(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = StateError
		p.errText = err.Error()
		if p.errText == "" {
			p.errText = p.fallbackErr
		}
		return err
	}
	p.state = StateSuccess
	p.value = value
	return nil
}

// Retry runs the most recent loader again, once.
func (p *Panel[T]) Retry(ctx context.Context) error {
	p.mu.Lock()
	last := p.last
	p.mu.Unlock()

	if last == nil {
		return nil
	}
	return p.Load(ctx, last)
}

func (p *Panel[T]) State() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Panel[T]) Value() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

func (p *Panel[T]) ErrorText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errText
}

func (p *Panel[T]) CanRetry() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == StateError && p.last != nil
}
