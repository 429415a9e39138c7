package cache

import "time"

// entry wraps cached data with its expiry. The file backend stores it as
// JSON, the MongoDB backend as a BSON document keyed by the cache key.
type entry struct {
	Key       string    `json:"-" bson:"_id"`
	Data      []byte    `json:"data" bson:"data"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at,omitempty"`
}

func newEntry(key string, data []byte, ttl time.Duration, now time.Time) entry {
	e := entry{Key: key, Data: data}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	return e
}

// expired reports whether e has a deadline before now.
func (e entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}
