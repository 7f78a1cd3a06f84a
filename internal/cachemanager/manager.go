// Package cachemanager memoizes derived values keyed by string.
package cachemanager

import "time"

const (
	DefaultExpiration      = 5 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// Manager stores values of type V.
type Manager[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Delete(keys ...string)
	Flush()
	Stats() Stats
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits   uint64
	Misses uint64
	Items  int
}
