package repository

// SnapshotRepo is the flat key/value store persisted per client.
type SnapshotRepo interface {
	// Get returns NotFoundError when the key has never been set or was removed.
	Get(clientID, key string) (string, error)
	Set(clientID, key, value string) error
	Remove(clientID, key string) error
}
