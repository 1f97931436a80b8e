package ports

// Store is single key string store surviving the panel restart
type Store interface {
	// Get returns value and true, or false if the key does not exist
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete must not fail when key does not exist
	Delete(key string) error
}
