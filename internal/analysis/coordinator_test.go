package analysis

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"radar-sim/internal/target"
)

type fakeService struct {
	calls atomic.Int32
	fn    func(ctx context.Context, prompt string) (string, error)
}

func (f *fakeService) Analyze(ctx context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	return f.fn(ctx, prompt)
}

func someTargets() []target.Target {
	return []target.Target{{ID: "t1", Type: target.TypeUAV, ThreatLevel: target.ThreatHigh}}
}

func waitFor(t *testing.T, c *Coordinator, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if text, busy := c.Result(); text == want && !busy {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	text, busy := c.Result()
	t.Fatalf("result = %q busy=%v, want %q", text, busy, want)
}

func TestCoordinatorInitialStatus(t *testing.T) {
	c := NewCoordinator(context.Background(), &fakeService{}, someTargets, time.Second, time.Second)
	if text, busy := c.Result(); text != StatusInitializing || busy {
		t.Fatalf("initial result = %q busy=%v", text, busy)
	}
}

func TestCoordinatorNoTargets(t *testing.T) {
	svc := &fakeService{fn: func(context.Context, string) (string, error) { return "x", nil }}
	c := NewCoordinator(context.Background(), svc, func() []target.Target { return nil }, time.Second, time.Second)
	c.Request()
	if text, busy := c.Result(); text != StatusNoSignals || busy {
		t.Fatalf("result = %q busy=%v", text, busy)
	}
	if svc.calls.Load() != 0 {
		t.Fatalf("service called without targets")
	}
}

func TestCoordinatorFallbacks(t *testing.T) {
	cases := []struct {
		name string
		text string
		err  error
		want string
	}{
		{"ok", "All quiet.", nil, "All quiet."},
		{"empty", "", nil, StatusEmpty},
		{"error", "", errors.New("boom"), StatusFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeService{fn: func(context.Context, string) (string, error) { return tc.text, tc.err }}
			c := NewCoordinator(context.Background(), svc, someTargets, time.Second, time.Second)
			c.Request()
			waitFor(t, c, tc.want)
		})
	}
}

func TestCoordinatorDiscardsStale(t *testing.T) {
	release := make(chan struct{})
	var n atomic.Int32
	svc := &fakeService{fn: func(ctx context.Context, prompt string) (string, error) {
		if n.Add(1) == 1 {
			<-release
			return "stale", nil
		}
		return "fresh", nil
	}}
	c := NewCoordinator(context.Background(), svc, someTargets, time.Second, time.Second)
	c.Request()
	for svc.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	c.Request()
	waitFor(t, c, "fresh")
	close(release)
	time.Sleep(20 * time.Millisecond)
	if text, _ := c.Result(); text != "fresh" {
		t.Fatalf("stale result overwrote newer one: %q", text)
	}
}

func TestCoordinatorDebounce(t *testing.T) {
	svc := &fakeService{fn: func(context.Context, string) (string, error) { return "done", nil }}
	c := NewCoordinator(context.Background(), svc, someTargets, 60*time.Millisecond, time.Second)
	defer c.Stop()

	var mu sync.Mutex
	var updates []bool
	c.OnUpdate(func(_ string, busy bool) {
		mu.Lock()
		updates = append(updates, busy)
		mu.Unlock()
	})

	for i := 0; i < 5; i++ {
		c.TargetsChanged(i)
		time.Sleep(5 * time.Millisecond)
	}
	if svc.calls.Load() != 0 {
		t.Fatalf("service called before debounce elapsed")
	}
	waitFor(t, c, "done")
	if got := svc.calls.Load(); got != 1 {
		t.Fatalf("expected a single debounced call, got %d", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(updates) != 2 || !updates[0] || updates[1] {
		t.Fatalf("unexpected busy transitions %v", updates)
	}
}

func TestCoordinatorTimeout(t *testing.T) {
	svc := &fakeService{fn: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	c := NewCoordinator(context.Background(), svc, someTargets, time.Second, 10*time.Millisecond)
	c.Request()
	waitFor(t, c, StatusFailed)
}
