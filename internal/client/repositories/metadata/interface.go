// Package metadata is a small key/value store in the local sqlite database.
// The session gate keeps its fixed set of keys here.
package metadata

import "context"

// Repository reads and writes byte values by string key. Get on an absent
// key returns (nil, nil). The *Many methods run in a single transaction so a
// group of keys is never half written or half removed.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context) (map[string][]byte, error)
	SetMany(ctx context.Context, values map[string][]byte) error
	DeleteMany(ctx context.Context, keys []string) error
}
