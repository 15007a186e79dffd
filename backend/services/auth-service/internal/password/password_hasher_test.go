package password

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("admin123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if err := h.Compare(hash, "admin123"); err != nil {
		t.Fatalf("Compare matching password: %v", err)
	}
	if err := h.Compare(hash, "admin124"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("Compare wrong password: err=%v want ErrMismatch", err)
	}
	if err := h.Compare("not-a-hash", "admin123"); err == nil || errors.Is(err, ErrMismatch) {
		t.Fatalf("Compare malformed hash: err=%v", err)
	}
	if _, err := h.Hash(""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("Hash empty: err=%v want ErrEmptyPassword", err)
	}
}

func TestNewBcryptHasher_CostOutOfRange(t *testing.T) {
	t.Parallel()

	for _, cost := range []int{0, -1, bcrypt.MaxCost + 1} {
		if got, want := NewBcryptHasher(cost).cost, bcrypt.DefaultCost; got != want {
			t.Fatalf("cost(%d)=%d want %d", cost, got, want)
		}
	}
}
