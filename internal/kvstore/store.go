package kvstore

import "context"

// Store is durable, namespaced, string-keyed storage. One value holds the
// serialized form of an entire collection or record, mirroring on-device
// persistent storage. Reads of a missing key yield ok=false, never an error.
type Store interface {
	Get(ctx context.Context, namespace, key string) (value string, ok bool, err error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
	Close() error
}
