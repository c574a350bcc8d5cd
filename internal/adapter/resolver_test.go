package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepmind9/symbot/internal/symphony"
)

func TestResolver_EachKeyResolvesTheSameIdentity(t *testing.T) {
	api := newMockAPI()
	api.users = []*symphony.User{johndoe}
	ctx := context.Background()

	byEmail, err := newResolver(api).ByEmail(ctx, "john.doe@symphony.com")
	require.NoError(t, err)
	byUsername, err := newResolver(api).ByUsername(ctx, "johndoe")
	require.NoError(t, err)
	byID, err := newResolver(api).ByID(ctx, johndoe.ID)
	require.NoError(t, err)

	assert.Equal(t, byEmail, byUsername)
	assert.Equal(t, byEmail, byID)
}

func TestResolver_CachesAcrossAlternateKeys(t *testing.T) {
	api := newMockAPI()
	api.users = []*symphony.User{johndoe}
	r := newResolver(api)
	ctx := context.Background()

	_, err := r.ByUsername(ctx, "johndoe")
	require.NoError(t, err)

	// Email and id hits are served from the cache seeded by the first
	// lookup
	_, err = r.ByEmail(ctx, "john.doe@symphony.com")
	require.NoError(t, err)
	_, err = r.ByID(ctx, johndoe.ID)
	require.NoError(t, err)

	_, _, lookups, _ := api.counts()
	assert.Equal(t, 1, lookups)
}

func TestResolver_MissIsNotCached(t *testing.T) {
	api := newMockAPI()
	r := newResolver(api)
	ctx := context.Background()

	_, err := r.ByEmail(ctx, "ghost@symphony.com")
	assert.True(t, symphony.IsNotFound(err))

	// The user appears later; the next lookup must hit the directory
	api.mu.Lock()
	api.users = []*symphony.User{{ID: 5, EmailAddress: "ghost@symphony.com", Username: "ghost"}}
	api.mu.Unlock()

	u, err := r.ByEmail(ctx, "ghost@symphony.com")
	require.NoError(t, err)
	assert.Equal(t, int64(5), u.ID)

	_, _, lookups, _ := api.counts()
	assert.Equal(t, 2, lookups)
}
