package shared

import "context"

// KeyValueStore is a durable string key-value medium scoped to one shopper profile.
// It plays the role a browser's localStorage plays for a single browser profile.
type KeyValueStore interface {
	// Get returns the value stored under key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// ProfileStorage hands out KeyValueStores, one per shopper profile.
type ProfileStorage interface {
	// Profile returns the store for profileID. It never fails; backend
	// failures surface on the returned store's operations.
	Profile(profileID string) KeyValueStore

	// Ping reports whether the backend is reachable
	Ping(ctx context.Context) error

	// Close releases backend resources
	Close() error
}
