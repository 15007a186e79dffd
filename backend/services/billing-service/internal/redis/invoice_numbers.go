package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the subset of the redis client the store needs.
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// InvoiceNumberStore reserves invoice numbers in Redis so that concurrent billing instances
// never hand out the same number while it is held.
type InvoiceNumberStore struct {
	client Client
	now       func() time.Time
}

// NewInvoiceNumberStore returns a redis-backed store.
func NewInvoiceNumberStore(client Client) *InvoiceNumberStore {
	return &InvoiceNumberStore{client: client, now: time.Now}
}

func (s *InvoiceNumberStore) key(number string) string {
	return fmt.Sprintf("invoices:number:%s", number)
}

// Reserve claims number with SETNX. A zero ttl keeps the reservation forever.
func (s *InvoiceNumberStore) Reserve(ctx context.Context, number string, ttl time.Duration) (bool, error) {
	issuedAt := s.now().UTC().Format(time.RFC3339)
	return s.client.SetNX(ctx, s.key(number), issuedAt, ttl).Result()
}
