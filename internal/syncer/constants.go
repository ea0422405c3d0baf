package syncer

// Log Messages
const (
	LogMsgSyncDropped = "Inventory sync dropped, worker queue full or stopped"
)
