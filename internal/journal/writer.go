// Package journal writes chat turns to the interaction store off the
// request path.
package journal

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/storage"
)

var (
	// ErrQueueFull is returned when the writer is too far behind to accept
	// another turn. The turn is dropped.
	ErrQueueFull = errors.New("journal queue full")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("journal writer closed")
)

// Saver persists one interaction. Implemented by storage.Store.
type Saver interface {
	SaveInteraction(ctx context.Context, i storage.Interaction) error
}

// Writer queues interactions and saves them from a single goroutine.
type Writer struct {
	store   Saver
	queue   chan storage.Interaction
	timeout time.Duration
	logger  *slog.Logger

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	running   atomic.Bool
	done      chan struct{}
}

// NewWriter creates a Writer holding at most size pending turns.
// If size is <= 0, it defaults to 256.
func NewWriter(store Saver, size int, logger *slog.Logger) *Writer {
	if size <= 0 {
		size = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		store:   store,
		queue:   make(chan storage.Interaction, size),
		timeout: 5 * time.Second,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// SaveInteraction enqueues i without blocking. ctx is not used; the write
// happens later under the writer's own timeout.
func (w *Writer) SaveInteraction(_ context.Context, i storage.Interaction) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrClosed
	}
	select {
	case w.queue <- i:
		pendingTurns.Inc()
		return nil
	default:
		droppedTotal.Inc()
		return ErrQueueFull
	}
}

// Start runs the writer in a new goroutine. Close called any time after
// Start waits for the queue to be flushed, even if the goroutine has not
// been scheduled yet.
func (w *Writer) Start(ctx context.Context) {
	w.running.Store(true)
	go w.Run(ctx)
}

// Run saves queued turns until ctx is cancelled or Close is called. Turns
// already queued at that point are still written. Prefer Start when Close
// may follow immediately.
func (w *Writer) Run(ctx context.Context) {
	w.running.Store(true)
	defer close(w.done)
	for {
		select {
		case i, ok := <-w.queue:
			if !ok {
				return
			}
			w.write(i)
		case <-ctx.Done():
			w.drain()
			return
		}
	}
}

// Close stops accepting turns and waits for Run to flush the queue.
func (w *Writer) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.queue)
		w.mu.Unlock()
	})
	if w.running.Load() {
		<-w.done
	}
	return nil
}

func (w *Writer) drain() {
	for {
		select {
		case i, ok := <-w.queue:
			if !ok {
				return
			}
			w.write(i)
		default:
			return
		}
	}
}

func (w *Writer) write(i storage.Interaction) {
	pendingTurns.Dec()
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if err := w.store.SaveInteraction(ctx, i); err != nil {
		failedTotal.Inc()
		w.logger.Warn("journal write failed", "id", i.ID, "session", i.SessionID, "error", err)
		return
	}
	writtenTotal.Inc()
}
