// Package cache stores diff results so that comparing the same pair of
// documents twice does not repeat the alignment.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for several servers
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// All backends implement [Cache]. A miss is reported as (nil, false, nil);
// an error means the backend itself failed. Callers treat cache errors as
// misses and carry on.
//
// # Keys
//
// A [Keyer] derives keys from the content digests of the inputs and the
// options that influence the output, so a key never needs invalidating:
// different inputs give different keys.
//
// # Retries
//
// Remote backends mark transient failures with [Retryable]; writes go
// through [RetryWithBackoff].
package cache

import (
	"context"
	"time"
)

// Default lifetimes of cached entries.
const (
	TTLDiff     = 7 * 24 * time.Hour
	TTLDecorate = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
