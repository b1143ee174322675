package kv

import "context"

// Store is the persistent key-value capability shared by the repository
// cache and the theme preference.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
