// Package storage provides the client's key-value persistence layer.
// Values are opaque strings; callers store JSON documents under well
// known keys and reload them on startup.
package storage

import "context"

// Store is a string key-value store. Get reports whether the key was
// present so an empty value can be told apart from a missing one.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
