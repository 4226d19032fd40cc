// Package cache provides search result cache implementations.
//
// Implementations:
//   - redis: Redis with TTL, shared between replicas
//   - memory: In-process cache with expiry and a cleanup janitor
package cache
