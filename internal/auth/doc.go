// Package auth holds the security primitives of the catalog API: bcrypt
// hashing of user passwords, per-client request rate limiting and the
// response security headers.
//
// # Passwords
//
// Passwords are 8 to 64 characters and are stored only as bcrypt hashes:
//
//	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
//	hash, err := hasher.Hash(plaintext)
//
// # Rate limiting
//
// RateLimiter keeps one token bucket per client IP and evicts idle buckets
// in the background:
//
//	limiter := auth.NewRateLimiter(auth.RateLimitConfig{RequestsPerSecond: 20, Burst: 40})
//	defer limiter.Stop()
//	router.Use(limiter.Middleware())
package auth
