package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Outbox decouples state transitions from best-effort delivery: producers
// enqueue a rendered message and return immediately; a background consumer
// attempts delivery and logs failures. Enqueue never blocks and never
// propagates delivery errors back to the caller, so a cancellation can
// never be held up by the gateway.
type Outbox struct {
	gateway Gateway
	logger  *zap.Logger
	timeout time.Duration

	queue chan *Message
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewOutbox creates an outbox with the given buffer size and starts its
// consumer goroutine.
func NewOutbox(gateway Gateway, logger *zap.Logger, buffer int) *Outbox {
	if buffer < 1 {
		buffer = 64
	}
	o := &Outbox{
		gateway: gateway,
		logger:  logger,
		timeout: 30 * time.Second,
		queue:   make(chan *Message, buffer),
	}

	o.wg.Add(1)
	go o.consume()

	return o
}

// Enqueue submits a message for asynchronous delivery. A full or closed
// outbox drops the message with a logged warning; the caller's state
// transition has already committed and must not be affected.
func (o *Outbox) Enqueue(msg *Message) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		o.logger.Warn("outbox closed, dropping notification",
			zap.String("kind", string(msg.Kind)),
			zap.String("to", msg.ToAddress),
		)
		return
	}

	select {
	case o.queue <- msg:
	default:
		o.logger.Warn("outbox full, dropping notification",
			zap.String("kind", string(msg.Kind)),
			zap.String("to", msg.ToAddress),
		)
	}
}

func (o *Outbox) consume() {
	defer o.wg.Done()

	for msg := range o.queue {
		ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
		err := o.gateway.Send(ctx, msg)
		cancel()

		if err != nil {
			o.logger.Error("notification delivery failed",
				zap.String("kind", string(msg.Kind)),
				zap.String("to", msg.ToAddress),
				zap.Error(err),
			)
			continue
		}

		o.logger.Info("notification delivered",
			zap.String("kind", string(msg.Kind)),
			zap.String("to", msg.ToAddress),
		)
	}
}

// Close stops accepting messages, drains the queue, and waits for the
// consumer to finish.
func (o *Outbox) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	o.mu.Unlock()

	close(o.queue)
	o.wg.Wait()
}
