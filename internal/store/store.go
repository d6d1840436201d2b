package store

import (
	"encoding/json"
	"log"
)

// Well-known keys. Each key is an independently persisted blob; there are no
// transactional guarantees across keys.
const (
	KeyUsers            = "users"
	KeyVerifiedExamples = "verifiedExamples"
	KeySessionLimit     = "sessionLimit"
	KeyCurrentSession   = "currentSession"
)

// Store is a local, synchronous key-value blob store. Get returns a nil slice
// for absent keys. Implementations must be safe for concurrent use.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// GetJSON decodes the blob stored under key into v and reports whether a value
// was present. A corrupt blob is treated the same as an absent one: decoding
// must never take the application down at startup.
func GetJSON(s Store, key string, v any) (bool, error) {
	data, err := s.Get(key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("discarding malformed blob %q: %v", key, err)
		return false, nil
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, data)
}
