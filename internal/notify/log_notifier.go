package notify

import (
	"context"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/logger"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/metrics"
)

// LogNotifier writes deliveries to the structured log. It stands in for a
// push gateway; the scheduler and worker pool treat it like any other
// Notifier.
type LogNotifier struct{}

// Deliver implements Notifier
func (LogNotifier) Deliver(ctx context.Context, n Notification) error {
	logger.FromContext(ctx).Info("Notification delivered",
		"id", n.ID,
		"title", n.Title,
		"trigger_time", n.TriggerTime)
	metrics.NotificationsSent.Inc()
	return nil
}
