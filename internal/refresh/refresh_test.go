package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tahmidriaz/scrubdash/internal/hub"
	"github.com/tahmidriaz/scrubdash/internal/model"
)

type stubSource struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
}

func (s *stubSource) Fetch(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.text, s.err
}

func (s *stubSource) Describe() string { return "stub" }

func (s *stubSource) set(text string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text, s.err = text, err
}

func (s *stubSource) fetchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testConfig() Config {
	return Config{
		Interval:     time.Minute,
		FetchTimeout: time.Second,
		TotalWorkers: 20,
	}
}

// fixedNow pins the reference date to the document's day.
func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
}

func TestOnceGoodCycle(t *testing.T) {
	src := &stubSource{text: "Name,Timestamp\n" +
		"Alice,2024-03-15 08:00:00\n" +
		"Bob,2024-03-15 08:05:00\n" +
		"Alice,2024-03-14 09:00:00\n"}

	r := New(src, nil, testConfig())
	r.now = fixedNow

	snap := r.Once(context.Background())

	if snap.State != model.StateOK {
		t.Fatalf("expected ok state, got %q (%s)", snap.State, snap.Error)
	}
	if snap.Today != "2024-03-15" {
		t.Errorf("expected today 2024-03-15, got %q", snap.Today)
	}
	if snap.TodayCount != 2 {
		t.Errorf("expected 2 distinct workers, got %d", snap.TodayCount)
	}
	if snap.LastWorker != "Bob" || snap.LastTimestamp != "2024-03-15 08:05:00" {
		t.Errorf("unexpected last event: %s at %s", snap.LastWorker, snap.LastTimestamp)
	}
	if snap.Percent != 10 || snap.Tier != "low" {
		t.Errorf("expected 10%% low, got %d%% %s", snap.Percent, snap.Tier)
	}
	if len(snap.TodayEvents) != 2 || snap.TodayEvents[0].WorkerName != "Bob" {
		t.Errorf("today events not sorted most recent first: %+v", snap.TodayEvents)
	}
}

func TestOnceRetrievalFailure(t *testing.T) {
	src := &stubSource{err: errors.New("document unreachable")}

	r := New(src, nil, testConfig())
	r.now = fixedNow

	snap := r.Once(context.Background())

	if snap.State != model.StateWaiting {
		t.Fatalf("expected waiting state, got %q", snap.State)
	}
	if snap.Error == "" {
		t.Error("expected the failure reason to be surfaced")
	}
	if snap.LastWorker != model.NoWorker || snap.LastTimestamp != model.NoActivity {
		t.Errorf("expected sentinels before any good cycle, got %q / %q", snap.LastWorker, snap.LastTimestamp)
	}
	if snap.TodayCount != 0 || snap.Percent != 0 {
		t.Errorf("expected zeroed stats, got count=%d percent=%d", snap.TodayCount, snap.Percent)
	}
}

func TestOnceFailureKeepsLastGood(t *testing.T) {
	src := &stubSource{text: "Name,Timestamp\nAlice,2024-03-15 08:00:00\n"}

	r := New(src, nil, testConfig())
	r.now = fixedNow

	good := r.Once(context.Background())
	if good.State != model.StateOK || good.TodayCount != 1 {
		t.Fatalf("setup cycle failed: %+v", good)
	}

	src.set("", errors.New("collector restarting"))
	degraded := r.Once(context.Background())

	if degraded.State != model.StateWaiting {
		t.Fatalf("expected waiting state, got %q", degraded.State)
	}
	if degraded.TodayCount != 1 || degraded.LastWorker != "Alice" {
		t.Errorf("expected last good stats to be carried, got %+v", degraded.DailyStats)
	}
	if degraded.Percent != good.Percent || degraded.Tier != good.Tier {
		t.Errorf("expected last good compliance carried, got %d%% %s", degraded.Percent, degraded.Tier)
	}
}

func TestOnceSchemaFailure(t *testing.T) {
	src := &stubSource{text: "X,Y\nAlice,2024-03-15 08:00:00\n"}

	r := New(src, nil, testConfig())
	r.now = fixedNow

	snap := r.Once(context.Background())

	if snap.State != model.StateWaiting {
		t.Fatalf("expected waiting state for a bad header, got %q", snap.State)
	}
	if snap.TodayCount != 0 {
		t.Errorf("expected no events processed, got count %d", snap.TodayCount)
	}
}

func TestCyclesAreIndependent(t *testing.T) {
	// A failed cycle must not block the next one from recovering.
	src := &stubSource{err: errors.New("not there yet")}

	r := New(src, nil, testConfig())
	r.now = fixedNow

	if snap := r.Once(context.Background()); snap.State != model.StateWaiting {
		t.Fatalf("expected waiting, got %q", snap.State)
	}

	src.set("Name,Timestamp\nBob,2024-03-15 09:00:00\n", nil)

	snap := r.Once(context.Background())
	if snap.State != model.StateOK || snap.TodayCount != 1 {
		t.Errorf("expected recovery on the next cycle, got %+v", snap)
	}
}

func TestRunPublishesToHub(t *testing.T) {
	src := &stubSource{text: "Name,Timestamp\nAlice,2024-03-15 08:00:00\n"}

	h := hub.New()
	r := New(src, h, Config{
		Interval:     20 * time.Millisecond,
		FetchTimeout: time.Second,
		TotalWorkers: 20,
	})
	r.now = fixedNow

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	time.Sleep(100 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond) // let an in-flight cycle finish

	snap, ok := h.Latest()
	if !ok {
		t.Fatal("expected a published snapshot")
	}
	if snap.State != model.StateOK || snap.TodayCount != 1 {
		t.Errorf("unexpected published snapshot: %+v", snap)
	}
	if calls := src.fetchCalls(); calls < 2 {
		t.Errorf("expected the interval to drive repeat cycles, got %d calls", calls)
	}
}
