package notification

import (
	"sync"

	"github.com/ttnguyen-dev/bankcore/internal/logger"
	"github.com/ttnguyen-dev/bankcore/internal/metrics"
)

// Sink delivers one message over a single channel (log line, Telegram, ...).
type Sink interface {
	Name() string
	Send(message string) error
}

// Dispatcher fans published messages out to every registered sink from a
// fixed worker pool. Publish never blocks and never fails the caller: a full
// queue drops the message, a failing sink is logged and skipped.
type Dispatcher struct {
	sinks    []Sink
	queue    chan string
	shutdown chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

func NewDispatcher(workers, queueSize int, sinks ...Sink) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}

	d := &Dispatcher{
		sinks:    sinks,
		queue:    make(chan string, queueSize),
		shutdown: make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

func (d *Dispatcher) Publish(message string) {
	select {
	case <-d.shutdown:
		logger.Warn("notification dispatcher rejecting publish after shutdown", nil)
		return
	default:
	}

	select {
	case d.queue <- message:
	default:
		metrics.NotificationDropped()
		logger.Warn("notification dispatcher queue full, message dropped", logger.Fields{
			"queueSize": cap(d.queue),
		})
	}
}

// Close drains queued messages and stops the workers. The queue channel is
// never closed, so a racing Publish cannot panic; it is shed instead.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.shutdown)
	})
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case message := <-d.queue:
			d.deliver(message)
		case <-d.shutdown:
			for {
				select {
				case message := <-d.queue:
					d.deliver(message)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(message string) {
	for _, sink := range d.sinks {
		if err := sink.Send(message); err != nil {
			logger.Error("notification sink delivery failed", err, logger.Fields{
				"sink": sink.Name(),
			})
		}
	}
}
