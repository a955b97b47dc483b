package ratelimit

// Limiter decides whether one more request is admitted for a key.
// Keys are client addresses here, but the limiter does not care.
type Limiter interface {
	Allow(key string) bool
}
