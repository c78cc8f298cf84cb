package auth

import "time"

// NewTestJWTService creates a JWT service with a raw (not base64) key, a
// custom lifetime, and an injectable clock. Only for tests; skips the
// key-length requirement so short readable secrets can be used.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     0,
	}
}
