package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const defaultPublishTimeout = 10 * time.Second

// Dispatcher пул воркеров, доставляющих уведомления в фоне.
// Ошибки доставки логируются и никогда не возвращаются в бизнес-операцию
type Dispatcher struct {
	size    int
	jobs    chan Request
	sink    Sink
	logger  Logger
	metrics Metrics
	timeout time.Duration
	now     func() time.Time
	wg      sync.WaitGroup
}

// NewDispatcher создает пул из workers воркеров с очередью на buffer заданий
func NewDispatcher(sink Sink, workers, buffer int, logger Logger, metrics Metrics) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Dispatcher{
		size:    workers,
		jobs:    make(chan Request, buffer),
		sink:    sink,
		logger:  logger,
		metrics: metrics,
		timeout: defaultPublishTimeout,
		now:     time.Now,
	}
}

// Start запускает воркеры; они завершаются при отмене ctx
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.size; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Wait ждет завершения всех воркеров после отмены контекста Start
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	d.logger.Info("Notifier worker %d started", id)
	for {
		select {
		case req := <-d.jobs:
			sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
			if _, err := d.Send(sendCtx, req); err != nil {
				d.logger.Error("Notifier worker %d: %v", id, err)
			}
			cancel()
		case <-ctx.Done():
			d.logger.Info("Notifier worker %d shutting down", id)
			return
		}
	}
}

// Dispatch ставит уведомление в очередь, не блокируя вызывающего.
// Если очередь заполнена, уведомление отбрасывается и возвращается false
func (d *Dispatcher) Dispatch(req Request) bool {
	select {
	case d.jobs <- req:
		return true
	default:
		reservationID := int64(0)
		if req.Reservation != nil {
			reservationID = req.Reservation.ID
		}
		d.logger.Warn("Notifier: queue is full, dropping %s notification for reservation id=%d", req.Type, reservationID)
		d.observe(string(req.Type), fmt.Errorf("queue full"))
		return false
	}
}

// Send синхронно готовит и доставляет уведомление
func (d *Dispatcher) Send(ctx context.Context, req Request) (*Message, error) {
	msg, err := Render(req, d.now())
	if err != nil {
		d.observe(string(req.Type), err)
		return nil, err
	}

	if err := d.sink.Publish(ctx, msg); err != nil {
		d.observe(msg.Type, err)
		return nil, fmt.Errorf("%w: message id=%s reservation id=%d: %v", ErrPublish, msg.ID, msg.ReservationID, err)
	}

	d.observe(msg.Type, nil)
	d.logger.Info("Notifier: %s notification id=%s sent for reservation id=%d", msg.Type, msg.ID, msg.ReservationID)
	return msg, nil
}

func (d *Dispatcher) observe(kind string, err error) {
	if d.metrics != nil {
		d.metrics.ObserveNotification(kind, err)
	}
}
