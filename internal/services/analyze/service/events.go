package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"codemix/internal/platform/logger"
	"codemix/internal/services/analyze/domain"
)

// publisher batches events in the background so the decision path never
// waits on the sink. A full buffer drops the event.
type publisher struct {
	sink    domain.EventSink
	ch      chan domain.Event
	batch   int
	every   time.Duration
	timeout time.Duration
	log     *logger.Logger

	mu      sync.RWMutex
	closed  bool
	done    chan struct{}
	dropped atomic.Int64
}

func newPublisher(sink domain.EventSink, buffer, batch int, every time.Duration) *publisher {
	p := &publisher{
		sink:    sink,
		ch:      make(chan domain.Event, max(1, buffer)),
		batch:   max(1, batch),
		every:   every,
		timeout: 5 * time.Second,
		log:     logger.Named("analyze-events"),
		done:    make(chan struct{}),
	}
	if p.every <= 0 {
		p.every = time.Second
	}
	go p.run()
	return p
}

func (p *publisher) publish(e domain.Event) {
	if p == nil {
		return
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.dropped.Add(1)
		return
	}
	select {
	case p.ch <- e:
	default:
		p.dropped.Add(1)
	}
}

func (p *publisher) droppedCount() int64 {
	if p == nil {
		return 0
	}
	return p.dropped.Load()
}

func (p *publisher) run() {
	defer close(p.done)
	ticker := time.NewTicker(p.every)
	defer ticker.Stop()

	buf := make([]domain.Event, 0, p.batch)
	for {
		select {
		case e, ok := <-p.ch:
			if !ok {
				p.flush(buf)
				return
			}
			buf = append(buf, e)
			if len(buf) >= p.batch {
				p.flush(buf)
				buf = buf[:0]
			}
		case <-ticker.C:
			if len(buf) > 0 {
				p.flush(buf)
				buf = buf[:0]
			}
		}
	}
}

func (p *publisher) flush(buf []domain.Event) {
	if len(buf) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.sink.Write(ctx, buf); err != nil {
		p.dropped.Add(int64(len(buf)))
		p.log.Warn().Err(err).Int("events", len(buf)).Msg("event batch lost")
		return
	}
	p.log.Debug().Int("events", len(buf)).Msg("event batch written")
}

// close drains the buffer and waits for the last write or ctx
func (p *publisher) close(ctx context.Context) error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
