package worker

import (
	"context"
	"runtime"

	"github.com/spec-kit/credential-service/internal/auth"
)

// HashPool bounds the number of concurrent bcrypt computations so that
// CPU-bound hashing cannot monopolize every request goroutine.
type HashPool struct {
	slots chan struct{}
	cost  int
}

// NewHashPool creates a pool with up to workers concurrent hashes. A
// non-positive worker count defaults to GOMAXPROCS.
func NewHashPool(workers, bcryptCost int) *HashPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &HashPool{
		slots: make(chan struct{}, workers),
		cost:  bcryptCost,
	}
}

// Hash runs auth.HashPassword on a pool slot, waiting for one if all are
// busy. The wait respects ctx cancellation.
func (p *HashPool) Hash(ctx context.Context, password string) (string, error) {
	select {
	case p.slots <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-p.slots }()

	return auth.HashPassword(password, p.cost)
}

// Verify runs auth.VerifyPassword on a pool slot, same discipline as Hash.
func (p *HashPool) Verify(ctx context.Context, hashed, plain string) (bool, error) {
	select {
	case p.slots <- struct{}{}:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	defer func() { <-p.slots }()

	return auth.VerifyPassword(hashed, plain), nil
}
