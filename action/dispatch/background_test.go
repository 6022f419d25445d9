package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
	statex "github.com/tanpawarit/cafe-action-server/action/state"
)

type blockingRecorder struct {
	release chan struct{}

	mu   sync.Mutex
	invs []contractx.Invocation
}

func (b *blockingRecorder) Record(ctx context.Context, inv contractx.Invocation) error {
	<-b.release
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invs = append(b.invs, inv)
	return nil
}

func (b *blockingRecorder) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.invs)
}

func TestBackgroundDoesNotDelayDispatch(t *testing.T) {
	t.Parallel()

	slow := &blockingRecorder{release: make(chan struct{})}
	bg := NewBackground(slow, 4)

	reg := New(WithRecorder(bg))
	if err := reg.Register("action_hello", echo("hi", contractx.OutcomeOK)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	done := make(chan contractx.Reply, 1)
	go func() {
		out, _ := reg.Dispatch(context.Background(), "action_hello", statex.NewTracker("u1", nil, ""))
		done <- out
	}()

	select {
	case out := <-done:
		if out.Text != "hi" {
			t.Fatalf("unexpected reply: %#v", out)
		}
	case <-time.After(time.Second):
		t.Fatal("dispatch waited on the recorder")
	}

	close(slow.release)
	bg.Close()
	if slow.count() != 1 {
		t.Fatalf("expected one recorded invocation after close, got %d", slow.count())
	}
}

func TestBackgroundQueueFullAndClosed(t *testing.T) {
	t.Parallel()

	slow := &blockingRecorder{release: make(chan struct{})}
	bg := NewBackground(slow, 1)
	inv := contractx.Invocation{Action: "action_hello"}

	// The worker may already hold the first item, so fill until rejected.
	var err error
	for i := 0; i < 3 && err == nil; i++ {
		err = bg.Record(context.Background(), inv)
	}
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}

	close(slow.release)
	bg.Close()
	if err := bg.Record(context.Background(), inv); !errors.Is(err, ErrRecorderClosed) {
		t.Fatalf("expected ErrRecorderClosed, got %v", err)
	}
	bg.Close()
}
