package hardware

import (
	"log/slog"
	"sync"
)

// queueDepth bounds the send queue. A stalled link delays at most this
// many commands; newer commands are dropped rather than blocking the
// producing loop.
const queueDepth = 64

// QueuedCommander frames commands and hands them to a dedicated sender
// goroutine over a bounded channel. Producers never block on the link.
//
// It also tracks the device's absolute elevation so offset commands can
// be expressed as absolute sets, and skips consecutive identical
// elevation values since the device treats them as no-ops anyway.
type QueuedCommander struct {
	link Link
	log  *slog.Logger

	send chan []byte
	done chan struct{}

	mu        sync.Mutex
	closed    bool
	elevation float64
	hasSent   bool
	dropped   uint64
}

// NewQueuedCommander starts the sender goroutine. Close releases it.
func NewQueuedCommander(link Link, logger *slog.Logger) *QueuedCommander {
	if logger == nil {
		logger = slog.Default()
	}
	q := &QueuedCommander{
		link: link,
		log:  logger,
		send: make(chan []byte, queueDepth),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *QueuedCommander) run() {
	defer close(q.done)
	for pkt := range q.send {
		if err := q.link.Send(pkt); err != nil {
			// Fire-and-forget: surface the failure in the log and move
			// on to the next command.
			q.log.Warn("hardware send failed", "err", err)
		}
	}
}

// enqueue queues a framed packet, dropping it when the queue is full.
// The lock is held across the channel send so Close cannot close the
// channel mid-enqueue; the send itself never blocks.
func (q *QueuedCommander) enqueue(pkt []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	q.enqueueLocked(pkt)
	return nil
}

func (q *QueuedCommander) enqueueLocked(pkt []byte) {
	select {
	case q.send <- pkt:
	default:
		q.dropped++
		q.log.Warn("hardware queue full, command dropped", "dropped_total", q.dropped)
	}
}

// SendElevation queues an absolute elevation set. Consecutive identical
// values are skipped. The state update and the enqueue share one
// critical section so wire order always matches the tracked elevation
// even with concurrent senders.
func (q *QueuedCommander) SendElevation(value float64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	if q.hasSent && q.elevation == value {
		return nil
	}
	q.elevation = value
	q.hasSent = true
	q.enqueueLocked(elevationPacket(value))
	return nil
}

// AddElevationOffset queues an elevation set at current + delta.
func (q *QueuedCommander) AddElevationOffset(delta float64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	q.elevation += delta
	q.hasSent = true
	q.enqueueLocked(elevationPacket(q.elevation))
	return nil
}

// SendVibration queues a vibration pulse.
func (q *QueuedCommander) SendVibration(amplitude, frequencyHz, durationMS float64) error {
	return q.enqueue(vibrationPacket(amplitude, frequencyHz, durationMS))
}

// SetMaxElevationSpeed queues the device speed limit command.
func (q *QueuedCommander) SetMaxElevationSpeed(unitsPerSecond float64) error {
	return q.enqueue(elevationSpeedPacket(unitsPerSecond))
}

// Elevation returns the last queued absolute elevation.
func (q *QueuedCommander) Elevation() float64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.elevation
}

// Dropped returns how many commands were discarded on queue overflow.
func (q *QueuedCommander) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Close stops the sender and closes the link. Queued commands may be
// discarded; none are guaranteed to reach the device after Close.
func (q *QueuedCommander) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.closed = true
	q.mu.Unlock()

	close(q.send)
	<-q.done
	return q.link.Close()
}

var _ Commander = (*QueuedCommander)(nil)
