package ports

import "context"

// ElementCache caches raw map-provider responses keyed by query string,
// so repeated fetches of the same area skip the network.
type ElementCache interface {
	// Get returns the cached payload for key, or ok=false on a miss.
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)
	// Put stores a payload under key, replacing any previous value.
	Put(ctx context.Context, key string, payload []byte) error
}
