package adapter

import (
	"context"
	"sync"

	"github.com/keepmind9/symbot/internal/symphony"
)

// Resolver turns any of the three alternate user keys into the canonical
// platform user record. Lookups are single-shot: a miss or transient
// failure propagates to the caller unretried. Resolved records are
// cached for the lifetime of the adapter run, under every key at once,
// so resolving by email later satisfies a lookup by id for free.
type Resolver struct {
	api API

	mu         sync.Mutex
	byEmail    map[string]*symphony.User
	byUsername map[string]*symphony.User
	byID       map[int64]*symphony.User
}

func newResolver(api API) *Resolver {
	return &Resolver{
		api:        api,
		byEmail:    make(map[string]*symphony.User),
		byUsername: make(map[string]*symphony.User),
		byID:       make(map[int64]*symphony.User),
	}
}

// ByEmail resolves a user by email address
func (r *Resolver) ByEmail(ctx context.Context, email string) (*symphony.User, error) {
	r.mu.Lock()
	u, ok := r.byEmail[email]
	r.mu.Unlock()
	if ok {
		return u, nil
	}

	u, err := r.api.LookupUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	r.remember(u)
	return u, nil
}

// ByUsername resolves a user by login name
func (r *Resolver) ByUsername(ctx context.Context, username string) (*symphony.User, error) {
	r.mu.Lock()
	u, ok := r.byUsername[username]
	r.mu.Unlock()
	if ok {
		return u, nil
	}

	u, err := r.api.LookupUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	r.remember(u)
	return u, nil
}

// ByID resolves a user by numeric id
func (r *Resolver) ByID(ctx context.Context, id int64) (*symphony.User, error) {
	r.mu.Lock()
	u, ok := r.byID[id]
	r.mu.Unlock()
	if ok {
		return u, nil
	}

	u, err := r.api.LookupUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.remember(u)
	return u, nil
}

// remember caches a resolved record under all of its alternate keys
func (r *Resolver) remember(u *symphony.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.EmailAddress != "" {
		r.byEmail[u.EmailAddress] = u
	}
	if u.Username != "" {
		r.byUsername[u.Username] = u
	}
	if u.ID != 0 {
		r.byID[u.ID] = u
	}
}
