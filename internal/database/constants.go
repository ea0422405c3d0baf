package database

import "time"

// Connection Pool Constants
const (
	// MinConnections keeps a single warm connection for the device's user
	MinConnections = 1

	// PingTimeout bounds the startup connectivity check
	PingTimeout = 5 * time.Second
)

// Error Messages - Remote Store
const (
	ErrMsgBadConnString    = "bad remote store connection string"
	ErrMsgPoolOpenFailed   = "failed to open remote store pool"
	ErrMsgStoreUnreachable = "remote store unreachable"
)

// Log Messages
const (
	LogMsgRemoteStoreConnected = "Connected to remote farm store"
)
