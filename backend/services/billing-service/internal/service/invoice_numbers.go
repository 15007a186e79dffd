package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// ErrNumberExhausted is returned when no free invoice number was found within the retry budget.
var ErrNumberExhausted = errors.New("billing: could not allocate invoice number")

const maxNumberAttempts = 16

// NumberReserver records an invoice number as taken. Reserve reports false when the number is
// already held.
type NumberReserver interface {
	Reserve(ctx context.Context, number string, ttl time.Duration) (bool, error)
}

// NumberAllocator hands out invoice numbers of the form PREFIX-NNNNN.
type NumberAllocator struct {
	prefix   string
	ttl      time.Duration
	reserver NumberReserver
	draw     func() int
}

// NewNumberAllocator returns an allocator drawing five digit suffixes.
func NewNumberAllocator(prefix string, ttl time.Duration, reserver NumberReserver) *NumberAllocator {
	return &NumberAllocator{
		prefix:   prefix,
		ttl:      ttl,
		reserver: reserver,
		draw:     func() int { return rand.IntN(90000) + 10000 },
	}
}

// Next reserves and returns an unused number.
func (a *NumberAllocator) Next(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number := fmt.Sprintf("%s-%05d", a.prefix, a.draw())
		ok, err := a.reserver.Reserve(ctx, number, a.ttl)
		if err != nil {
			return "", fmt.Errorf("reserve invoice number: %w", err)
		}
		if ok {
			return number, nil
		}
	}
	return "", ErrNumberExhausted
}

// MemoryReserver keeps reservations in process memory. It is used when Redis is not configured.
type MemoryReserver struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemoryReserver returns an empty reserver.
func NewMemoryReserver() *MemoryReserver {
	return &MemoryReserver{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Reserve implements NumberReserver.
func (m *MemoryReserver) Reserve(_ context.Context, number string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if exp, ok := m.expires[number]; ok && (exp.IsZero() || now.Before(exp)) {
		return false, nil
	}

	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}
	m.expires[number] = exp
	return true, nil
}
