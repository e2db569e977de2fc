package cache

import "time"

// Reader is the minimal cache API for read-path handlers.
type Reader interface {
	Has(key string) bool
	Get(key string) ([]byte, bool)
}

// Writer is the cache API for populating entries after a recompute.
// SetTTL with a zero ttl expires on arrival; a negative ttl never expires.
type Writer interface {
	Set(key string, value []byte)
	SetTTL(key string, value []byte, ttl time.Duration)
}

// Deleter is the cache API the invalidation dispatcher depends on.
type Deleter interface {
	Del(keys ...string) int
}

// ResponseCache is the cache contract the application container exposes.
type ResponseCache interface {
	Reader
	Writer
	Deleter
}
