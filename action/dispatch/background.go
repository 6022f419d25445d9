package dispatch

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	contractx "github.com/tanpawarit/cafe-action-server/action/contract"
)

var (
	ErrQueueFull      = errors.New("recorder queue full")
	ErrRecorderClosed = errors.New("recorder closed")
)

type queued struct {
	ctx context.Context
	inv contractx.Invocation
}

// Background hands invocations to a slower Recorder from a single worker so
// the reply never waits on it. When the queue is full the invocation is
// dropped and ErrQueueFull is returned.
type Background struct {
	next  contractx.Recorder
	queue chan queued
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

var _ contractx.Recorder = (*Background)(nil)

func NewBackground(next contractx.Recorder, size int) *Background {
	if next == nil {
		panic("dispatch.NewBackground: nil recorder")
	}
	if size <= 0 {
		size = 256
	}
	b := &Background{
		next:  next,
		queue: make(chan queued, size),
		done:  make(chan struct{}),
	}
	go b.loop()
	return b
}

func (b *Background) Record(ctx context.Context, inv contractx.Invocation) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrRecorderClosed
	}

	select {
	case b.queue <- queued{ctx: context.WithoutCancel(ctx), inv: inv}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting invocations and waits for the queued ones to drain.
func (b *Background) Close() {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.queue)
	}
	b.mu.Unlock()
	<-b.done
}

func (b *Background) loop() {
	defer close(b.done)
	for item := range b.queue {
		if err := b.next.Record(item.ctx, item.inv); err != nil {
			zerolog.Ctx(item.ctx).Warn().Err(err).Str("action", item.inv.Action).Msg("record invocation")
		}
	}
}
