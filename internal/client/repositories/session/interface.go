// Package session persists the authenticated session between client runs in
// a local key/value table. Video rows are never stored here.
package session

import "context"

// Repository is a string key/value store. Get returns "" with ok=false for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
