package controller

import (
	"encoding/json"

	"github.com/bassista/go_mart/internal/cache"
)

// cachedJSON implements the cache-aside read path: return the serialized
// payload stored under key, or compute the value, cache its serialization and
// return it. The cache stays content-agnostic; marshaling happens here.
func cachedJSON[T any](store cache.ResponseCache, key string, compute func() (T, error)) ([]byte, error) {
	if payload, ok := store.Get(key); ok {
		return payload, nil
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	store.Set(key, payload)
	return payload, nil
}
