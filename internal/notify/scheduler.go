package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/logger"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/worker"
)

// Notification is a message to be delivered to the user at a point in time
type Notification struct {
	ID          string
	Title       string
	Body        string
	TriggerTime time.Time
	Data        map[string]string
}

// Notifier delivers a notification. Delivery is fire-and-forget; an error is
// logged by the worker pool and the notification is not retried.
type Notifier interface {
	Deliver(ctx context.Context, n Notification) error
}

// Scheduler arms one timer per pending notification and hands delivery off to
// the worker pool when the timer fires.
type Scheduler struct {
	pool     *worker.Pool
	notifier Notifier

	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
}

// NewScheduler creates a scheduler that delivers through notifier on pool
func NewScheduler(pool *worker.Pool, notifier Notifier) *Scheduler {
	return &Scheduler{
		pool:     pool,
		notifier: notifier,
		pending:  make(map[string]*time.Timer),
	}
}

// ScheduleAt schedules a notification for triggerTime. It returns nil when
// triggerTime is not strictly in the future or the scheduler is stopped;
// otherwise it returns the id of the pending notification.
func (s *Scheduler) ScheduleAt(title, body string, triggerTime time.Time, data map[string]string) *string {
	delay := time.Until(triggerTime)
	if delay <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}

	id := uuid.New().String()
	n := Notification{
		ID:          id,
		Title:       title,
		Body:        body,
		TriggerTime: triggerTime,
		Data:        data,
	}

	s.pending[id] = time.AfterFunc(delay, func() {
		s.fire(n)
	})

	logger.Debug(LogMsgNotificationScheduled, "id", id, "trigger_time", triggerTime)
	return &id
}

func (s *Scheduler) fire(n Notification) {
	s.mu.Lock()
	_, ok := s.pending[n.ID]
	delete(s.pending, n.ID)
	s.mu.Unlock()
	if !ok {
		return
	}

	enqueued := s.pool.Enqueue(worker.JobFunc(func(ctx context.Context) error {
		return s.notifier.Deliver(ctx, n)
	}))
	if !enqueued {
		logger.Warn(LogMsgNotificationDropped, "id", n.ID)
	}
}

// Cancel stops a pending notification. Unknown or already-fired ids are a no-op.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.pending[id]; ok {
		timer.Stop()
		delete(s.pending, id)
	}
}

// CancelAll stops every pending notification
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.pending {
		timer.Stop()
		delete(s.pending, id)
	}
}

// Stop cancels all pending notifications and rejects further scheduling
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.pending {
		timer.Stop()
		delete(s.pending, id)
	}
	s.stopped = true
}

// PendingCount reports the number of armed notifications
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
