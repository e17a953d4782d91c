package mailer

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrQueueFull is returned by Enqueue when no queue slot is free.
	ErrQueueFull = errors.New("mail queue full")
	// ErrStopped is returned by Enqueue after Stop was called.
	ErrStopped = errors.New("mail dispatcher stopped")
)

const sendTimeout = 30 * time.Second

// Dispatcher sends queued messages on a fixed pool of workers.
type Dispatcher struct {
	log    *zap.SugaredLogger
	sender Sender
	queue  chan Message

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher starts workers that drain a queue of size queueSize.
func NewDispatcher(log *zap.SugaredLogger, sender Sender, workers, queueSize int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	d := &Dispatcher{
		log:    log.Named("mailer.dispatcher"),
		sender: sender,
		queue:  make(chan Message, queueSize),
	}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.work(i)
	}
	return d
}

// Enqueue schedules msg without blocking.
func (d *Dispatcher) Enqueue(msg Message) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrStopped
	}
	select {
	case d.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes intake and waits for queued messages to be sent or ctx to end.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.log.Infow("mail dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.log.Warnw("mail dispatcher stop timed out", "pending", len(d.queue))
		return ctx.Err()
	}
}

func (d *Dispatcher) work(id int) {
	defer d.wg.Done()
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.sender.Send(ctx, msg); err != nil {
			d.log.Errorw("failed to send mail", "worker", id, "to", msg.To, "subject", msg.Subject, "error", err)
		}
		cancel()
	}
}
