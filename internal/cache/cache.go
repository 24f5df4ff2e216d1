// Package cache stores rendered gap reports keyed by their inputs.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

const keyPrefix = "skill-gap:report:"

// Cache is a byte store for rendered reports.
type Cache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Key derives the cache key of a gap report from everything that shapes it.
func Key(source, target, strategy string, detailed bool) string {
	h := sha256.New()
	for _, part := range []string{source, target, strategy, strconv.FormatBool(detailed)} {
		// length prefixes keep ("ab", "c") and ("a", "bc") apart
		h.Write([]byte(strconv.Itoa(len(part))))
		h.Write([]byte{':'})
		h.Write([]byte(part))
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte) error         { return nil }
func (Nop) Close() error                                      { return nil }
