package notify

// ============================================================================
// Log Messages - Notification Scheduler
// ============================================================================

// Log messages for notification scheduling
const (
	LogMsgNotificationScheduled = "Notification scheduled"
	LogMsgNotificationDropped   = "Notification dropped, worker queue unavailable"
)
