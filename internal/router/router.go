package router

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/skilltrack/internal/input"
	"github.com/dshills/skilltrack/internal/tracker"
)

// ErrQueueFull indicates an event was dropped because the dispatch queue
// was at capacity.
var ErrQueueFull = errors.New("input event queue full")

// defaultQueueSize buffers bursts from adapters without blocking them.
const defaultQueueSize = 256

// Adapter is an input event source managed by the router. Implementations
// deliver events from their own goroutines through the callback installed
// with SetEventCallback.
type Adapter interface {
	Start() error
	Stop() error
	Running() bool
	SetEventCallback(fn func(input.Event))
}

// Options configures a Router.
type Options struct {
	// Engine routes events to bindings. Required.
	Engine *tracker.Engine
	// Adapters are started and stopped with the router.
	Adapters []Adapter
	// OnEvent observes every dispatched event.
	OnEvent func(input.Event)
	// OnTriggered receives the skill ids fired by one event.
	OnTriggered func(input.Event, []string)
	// OnError receives adapter and dispatch failures.
	OnError func(error)
	// QueueSize overrides the dispatch queue capacity.
	QueueSize int
}

// Router owns the adapter lifecycle and the serialized dispatch worker.
type Router struct {
	mu        sync.Mutex
	engine    *tracker.Engine
	adapters  []Adapter
	onEvent   func(input.Event)
	onTrigger func(input.Event, []string)
	onError   func(error)
	queueSize int

	queue     chan input.Event
	done      chan struct{}
	running   bool
	accepting bool
}

// New creates a stopped router. Every adapter's event callback is pointed
// at Route.
func New(opts Options) *Router {
	r := &Router{
		engine:    opts.Engine,
		adapters:  opts.Adapters,
		onEvent:   opts.OnEvent,
		onTrigger: opts.OnTriggered,
		onError:   opts.OnError,
		queueSize: opts.QueueSize,
	}
	if r.engine == nil {
		r.engine = tracker.NewEngine()
	}
	if r.queueSize <= 0 {
		r.queueSize = defaultQueueSize
	}
	for _, adapter := range r.adapters {
		adapter.SetEventCallback(r.Route)
	}
	return r
}

// Engine returns the tracker engine events are dispatched through.
func (r *Router) Engine() *tracker.Engine { return r.engine }

// Running reports whether the router is accepting and dispatching events.
func (r *Router) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// SetBindings replaces the engine's binding collection.
func (r *Router) SetBindings(bindings []*tracker.Binding) {
	r.engine.SetBindings(bindings)
}

// Start launches the dispatch worker and all adapters. Starting a running
// router is a no-op. If any adapter fails to start, the ones already
// started are stopped and the router is left stopped.
func (r *Router) Start() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.queue = make(chan input.Event, r.queueSize)
	r.done = make(chan struct{})
	r.running = true
	r.accepting = true
	queue, done := r.queue, r.done
	r.mu.Unlock()

	go r.runWorker(queue, done)

	var started []Adapter
	for _, adapter := range r.adapters {
		if err := adapter.Start(); err != nil {
			for i := len(started) - 1; i >= 0; i-- {
				if stopErr := started[i].Stop(); stopErr != nil {
					r.reportError(stopErr)
				}
			}
			r.shutdownWorker()
			return fmt.Errorf("start adapter: %w", err)
		}
		started = append(started, adapter)
	}
	return nil
}

// Stop stops all adapters (in reverse start order), drains the queue, and
// waits for the worker to exit. Stopping a stopped router is a no-op.
// The first adapter stop failure is returned after shutdown completes.
func (r *Router) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.accepting = false
	r.mu.Unlock()

	var firstErr error
	for i := len(r.adapters) - 1; i >= 0; i-- {
		if err := r.adapters[i].Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("stop adapter: %w", err)
		}
	}

	r.shutdownWorker()
	return firstErr
}

// Route enqueues one event for serialized dispatch. Events arriving while
// the router is stopped are discarded; a full queue drops the event and
// reports ErrQueueFull.
func (r *Router) Route(ev input.Event) {
	r.mu.Lock()
	if !r.accepting {
		r.mu.Unlock()
		return
	}
	var dropErr error
	select {
	case r.queue <- ev:
	default:
		dropErr = fmt.Errorf("%w: dropped %s", ErrQueueFull, ev)
	}
	r.mu.Unlock()

	if dropErr != nil {
		r.reportError(dropErr)
	}
}

func (r *Router) runWorker(queue <-chan input.Event, done chan<- struct{}) {
	defer close(done)
	for ev := range queue {
		r.dispatch(ev)
	}
}

// dispatch runs one event through the engine and the observer callbacks.
// Callback panics are contained and surfaced through OnError.
func (r *Router) dispatch(ev input.Event) {
	defer func() {
		if rec := recover(); rec != nil {
			r.reportError(fmt.Errorf("dispatch %s: panic: %v", ev, rec))
		}
	}()

	triggered := r.engine.Dispatch(ev)
	if r.onEvent != nil {
		r.onEvent(ev)
	}
	if len(triggered) > 0 && r.onTrigger != nil {
		r.onTrigger(ev, triggered)
	}
}

// shutdownWorker closes the queue so the worker drains remaining events
// and exits, then waits for it.
func (r *Router) shutdownWorker() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.accepting = false
	queue, done := r.queue, r.done
	r.queue = nil
	r.done = nil
	close(queue)
	r.mu.Unlock()

	<-done
}

// reportError invokes the error callback. Callbacks are set once at
// construction, so no lock is needed here.
func (r *Router) reportError(err error) {
	if r.onError != nil {
		r.onError(err)
	}
}
