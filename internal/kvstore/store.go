// Package kvstore is the key-value persistence boundary used for the cart
// ledger and UI preferences, the server-side analogue of browser local storage.
package kvstore

import (
	"context"
)

// Store persists string values under string keys.
// Get reports ok=false when the key has never been written.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type namespaced struct {
	store  Store
	prefix string
}

// Namespaced prefixes every key before delegating to store. Empty keys are
// rejected before the prefix is applied.
func Namespaced(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	return &namespaced{store: store, prefix: prefix}
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	return n.store.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return n.store.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return n.store.Delete(ctx, n.prefix+key)
}
