package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/worker"
)

type recordingNotifier struct {
	mu        sync.Mutex
	delivered []Notification
}

func (r *recordingNotifier) Deliver(ctx context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delivered = append(r.delivered, n)
	return nil
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.delivered)
}

func newTestScheduler(t *testing.T) (*Scheduler, *recordingNotifier) {
	t.Helper()
	pool := worker.NewPool(1, 10)
	pool.Start()
	t.Cleanup(pool.Stop)

	notifier := &recordingNotifier{}
	s := NewScheduler(pool, notifier)
	t.Cleanup(s.Stop)
	return s, notifier
}

func TestScheduleAt_PastTriggerReturnsNil(t *testing.T) {
	s, notifier := newTestScheduler(t)

	id := s.ScheduleAt("Water the beds", "Morning watering due", time.Now().Add(-time.Hour), nil)

	assert.Nil(t, id)
	assert.Equal(t, 0, s.PendingCount())
	assert.Equal(t, 0, notifier.count())
}

func TestScheduleAt_NowReturnsNil(t *testing.T) {
	s, _ := newTestScheduler(t)

	id := s.ScheduleAt("Water the beds", "Morning watering due", time.Now(), nil)

	assert.Nil(t, id)
}

func TestScheduleAt_DeliversAtTrigger(t *testing.T) {
	s, notifier := newTestScheduler(t)

	id := s.ScheduleAt("Oil change", "Tractor maintenance due",
		time.Now().Add(20*time.Millisecond), map[string]string{"equipment_id": "eq-1"})
	require.NotNil(t, id)
	assert.NotEmpty(t, *id)

	require.Eventually(t, func() bool {
		return notifier.count() == 1
	}, time.Second, 10*time.Millisecond)

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Equal(t, "Oil change", notifier.delivered[0].Title)
	assert.Equal(t, "eq-1", notifier.delivered[0].Data["equipment_id"])
	assert.Equal(t, 0, s.PendingCount())
}

func TestCancel_PreventsDelivery(t *testing.T) {
	s, notifier := newTestScheduler(t)

	id := s.ScheduleAt("Oil change", "Tractor maintenance due", time.Now().Add(30*time.Millisecond), nil)
	require.NotNil(t, id)

	s.Cancel(*id)
	assert.Equal(t, 0, s.PendingCount())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, notifier.count())
}

func TestCancel_UnknownIDIsNoop(t *testing.T) {
	s, _ := newTestScheduler(t)
	s.Cancel("no-such-id")
}

func TestCancelAll(t *testing.T) {
	s, notifier := newTestScheduler(t)

	for i := 0; i < 3; i++ {
		id := s.ScheduleAt("t", "b", time.Now().Add(30*time.Millisecond), nil)
		require.NotNil(t, id)
	}
	assert.Equal(t, 3, s.PendingCount())

	s.CancelAll()
	assert.Equal(t, 0, s.PendingCount())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, notifier.count())
}

func TestStop_RejectsFurtherScheduling(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	s := NewScheduler(pool, &recordingNotifier{})
	s.Stop()

	id := s.ScheduleAt("t", "b", time.Now().Add(time.Hour), nil)
	assert.Nil(t, id)
}
