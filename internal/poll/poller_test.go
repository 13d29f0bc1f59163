package poll

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestPollerFetchesImmediately(t *testing.T) {
	p := New("test", time.Hour, func(context.Context) (int, error) {
		return 42, nil
	})
	p.Start(context.Background())
	defer p.Stop()

	select {
	case snap := <-p.Updates():
		if snap.Value != 42 || snap.Err != nil {
			t.Errorf("got %+v", snap)
		}
		if snap.Seq != 1 {
			t.Errorf("first cycle seq = %d", snap.Seq)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot before the first period elapsed")
	}
}

func TestPollerFixedPeriod(t *testing.T) {
	var calls atomic.Int32
	p := New("test", 30*time.Millisecond, func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	})
	p.Start(context.Background())
	defer p.Stop()

	deadline := time.After(500 * time.Millisecond)
	for calls.Load() < 4 {
		select {
		case <-p.Updates():
		case <-deadline:
			t.Fatalf("only %d cycles ran", calls.Load())
		}
	}
}

func TestPollerResetOnError(t *testing.T) {
	var calls atomic.Int32
	p := New("test", 25*time.Millisecond, func(context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			return []string{"a", "b"}, nil
		}
		return []string{"stale"}, errors.New("backend down")
	})
	p.Start(context.Background())
	defer p.Stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-p.Updates():
			if snap.Err == nil {
				continue
			}
			// Errors reset the value; the previous good list must not
			// leak through.
			if snap.Value != nil {
				t.Errorf("error snapshot carried value %v", snap.Value)
			}
			return
		case <-deadline:
			t.Fatal("never saw an error snapshot")
		}
	}
}

// A slow response from an old cycle must not overwrite a newer one.
func TestPollerDiscardsStaleCycle(t *testing.T) {
	p := New[int]("test", time.Hour, nil)

	if !p.publish(Snapshot[int]{Seq: 1}) {
		t.Fatal("first cycle rejected")
	}
	if !p.publish(Snapshot[int]{Seq: 3}) {
		t.Fatal("newer cycle rejected")
	}
	if p.publish(Snapshot[int]{Seq: 2}) {
		t.Error("stale cycle accepted after a newer one landed")
	}
	if p.publish(Snapshot[int]{Seq: 3}) {
		t.Error("duplicate cycle accepted")
	}
}

func TestPollerLatestSnapshotWins(t *testing.T) {
	p := New[int]("test", time.Hour, nil)
	p.publish(Snapshot[int]{Seq: 1, Value: 1})
	p.publish(Snapshot[int]{Seq: 2, Value: 2})

	snap := <-p.Updates()
	if snap.Seq != 2 {
		t.Errorf("got seq %d, want the displacing snapshot", snap.Seq)
	}
}

// Two in-flight cycles can complete out of order. Whichever sequence is
// checked, the stale completion must neither displace the newer
// snapshot nor slip into the channel after it was consumed.
func TestPollerStaleCompletionCannotOvertakeNewer(t *testing.T) {
	p := New[int]("test", time.Hour, nil)

	p.publish(Snapshot[int]{Seq: 2, Value: 2})
	if p.publish(Snapshot[int]{Seq: 1, Value: 1}) {
		t.Error("stale completion published over a newer undelivered snapshot")
	}
	snap := <-p.Updates()
	if snap.Seq != 2 {
		t.Fatalf("delivered snapshot seq = %d, want 2", snap.Seq)
	}

	// Same race with the newer snapshot already consumed.
	if p.publish(Snapshot[int]{Seq: 1, Value: 1}) {
		t.Error("stale completion published into a drained channel")
	}
	select {
	case snap := <-p.Updates():
		t.Errorf("stale snapshot delivered: %+v", snap)
	default:
	}
}

func TestPollerStop(t *testing.T) {
	p := New("test", 10*time.Millisecond, func(context.Context) (int, error) {
		return 0, nil
	})
	p.Start(context.Background())
	p.Stop()

	// Drain whatever was already in flight, then confirm silence.
	time.Sleep(50 * time.Millisecond)
	for {
		select {
		case <-p.Updates():
			continue
		default:
		}
		break
	}
	select {
	case snap := <-p.Updates():
		t.Errorf("snapshot after Stop: %+v", snap)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPollerRefresh(t *testing.T) {
	var calls atomic.Int32
	p := New("test", time.Hour, func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	})
	p.Start(context.Background())
	defer p.Stop()

	<-p.Updates()
	p.Refresh()

	select {
	case snap := <-p.Updates():
		if snap.Seq != 2 {
			t.Errorf("refresh snapshot seq = %d", snap.Seq)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not trigger a cycle")
	}
}
