// Package joincode allocates the short codes players use to find a session
package joincode

//go:generate mockgen -package=mocks -destination=mocks/mock_store.go cheat-server/pkg/joincode Store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cheat-server/internal/rng"
)

// Alphabet is the set of characters a code is drawn from
// I and O are left out so codes cannot be confused with 1 and 0
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"

// Length is the number of characters in a code
const Length = 4

// maxAttempts is how many random codes are tried before giving up
const maxAttempts = 32

// ErrExhausted is returned when no free code could be found
var ErrExhausted = errors.New("could not allocate a join code")

// Store records which codes belong to live sessions
type Store interface {
	// Reserve claims the code, returning false if it is already taken
	Reserve(ctx context.Context, code string) (bool, error)

	// Release frees the code for reuse
	Release(ctx context.Context, code string) error
}

// Allocator hands out codes that are unique among live sessions
type Allocator struct {
	store Store
	rng   rng.Generator
}

// NewAllocator returns an allocator backed by store
func NewAllocator(store Store, gen rng.Generator) *Allocator {
	return &Allocator{
		store: store,
		rng:   gen,
	}
}

// Allocate reserves and returns a new code
func (a *Allocator) Allocate(ctx context.Context) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code := a.random()

		ok, err := a.store.Reserve(ctx, code)
		if err != nil {
			return "", fmt.Errorf("could not reserve join code: %w", err)
		}

		if ok {
			return code, nil
		}
	}

	return "", ErrExhausted
}

// Release returns a code to the pool
func (a *Allocator) Release(ctx context.Context, code string) error {
	return a.store.Release(ctx, code)
}

func (a *Allocator) random() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = Alphabet[a.rng.Intn(len(Alphabet))]
	}

	return string(b)
}

// Normalize upper-cases a code typed by a player and reports whether it could be valid
func Normalize(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != Length {
		return "", false
	}

	for _, c := range code {
		if !strings.ContainsRune(Alphabet, c) {
			return "", false
		}
	}

	return code, true
}
