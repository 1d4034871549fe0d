package analysis

import (
	"context"
	"sync"
	"time"

	"radar-sim/internal/logging"
	"radar-sim/internal/target"
)

// DefaultDebounce is the quiet period after a target count change
// before an assessment is requested.
const DefaultDebounce = 2 * time.Second

// Coordinator schedules assessments and keeps the latest result.
// Only the most recent request may publish its answer.
type Coordinator struct {
	mu       sync.Mutex
	ctx      context.Context
	svc      Service
	source   func() []target.Target
	debounce time.Duration
	timeout  time.Duration
	timer    *time.Timer
	gen      uint64
	text     string
	busy     bool
	onUpdate []func(text string, busy bool)
}

// NewCoordinator returns a coordinator reading targets from source.
// ctx bounds every request and carries the logger.
func NewCoordinator(ctx context.Context, svc Service, source func() []target.Target, debounce, timeout time.Duration) *Coordinator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Coordinator{
		ctx:      ctx,
		svc:      svc,
		source:   source,
		debounce: debounce,
		timeout:  timeout,
		text:     StatusInitializing,
	}
}

// OnUpdate registers fn to be called whenever the text or busy flag
// changes. fn runs outside the coordinator lock.
func (c *Coordinator) OnUpdate(fn func(text string, busy bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = append(c.onUpdate, fn)
}

// TargetsChanged restarts the debounce timer. Its signature matches
// the simulator's change hook.
func (c *Coordinator) TargetsChanged(int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.Request)
}

// Request starts an assessment immediately, superseding any in flight.
func (c *Coordinator) Request() {
	targets := c.source()

	c.mu.Lock()
	c.gen++
	gen := c.gen
	if len(targets) == 0 {
		c.text = StatusNoSignals
		c.busy = false
		c.unlockAndPublish()
		return
	}
	c.busy = true
	c.unlockAndPublish()

	go c.run(gen, BuildPrompt(targets))
}

// Result returns the latest text and whether a request is in flight.
func (c *Coordinator) Result() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, c.busy
}

// Stop cancels a pending debounce timer.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Coordinator) run(gen uint64, prompt string) {
	ctx := c.ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	log := logging.FromContext(ctx)

	text, err := c.svc.Analyze(ctx, prompt)
	switch {
	case err != nil:
		log.Error("analysis failed", "generation", gen, "err", err)
		text = StatusFailed
	case text == "":
		text = StatusEmpty
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		log.Debug("discarding stale analysis", "generation", gen)
		return
	}
	c.text = text
	c.busy = false
	c.unlockAndPublish()
}

// unlockAndPublish releases c.mu, which the caller holds, then notifies listeners.
func (c *Coordinator) unlockAndPublish() {
	text, busy, fns := c.text, c.busy, c.onUpdate
	c.mu.Unlock()
	for _, fn := range fns {
		fn(text, busy)
	}
}
