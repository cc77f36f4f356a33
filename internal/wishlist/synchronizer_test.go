package wishlist

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/session"
	"github.com/example/storefront/internal/store/mocks"
)

func newTestWishlist(t *testing.T) (*Synchronizer, *mocks.MockResourceStore, *session.Manager) {
	t.Helper()
	sessions := session.NewManager(afero.NewMemMapFs(), "session.json")
	resources := mocks.NewMockResourceStore()
	sync := NewSynchronizer(resources, sessions)
	return sync, resources, sessions
}

func loginTestUser(sessions *session.Manager) session.User {
	u := session.User{ID: "user-1", Name: "Asha", Email: "asha@example.com", Password: "secret123"}
	sessions.Login(context.Background(), u)
	return u
}

var widget = catalog.Product{
	ID:          "1",
	Name:        "Widget",
	Price:       100,
	Image:       "widget.png",
	Description: "A widget",
}

// ============================================
// Add Tests
// ============================================

func TestSynchronizer_Add_FirstTime(t *testing.T) {
	sync, resources, sessions := newTestWishlist(t)
	user := loginTestUser(sessions)
	ctx := context.Background()

	added, err := sync.Add(ctx, widget)

	require.NoError(t, err)
	assert.True(t, added)
	require.Len(t, resources.CreateCalls, 1)
	body := resources.CreateCalls[0].Body
	assert.Equal(t, "wishlist", resources.CreateCalls[0].Collection)
	assert.Equal(t, user.ID, body["userId"])
	assert.Equal(t, widget.ID, body["productId"])
	// No quantity field on wishlist entries
	assert.NotContains(t, body, "quantity")

	assert.True(t, sync.Contains(widget.ID))
	assert.Equal(t, 1, sync.Count())
}

func TestSynchronizer_Add_AlreadyPresent(t *testing.T) {
	sync, resources, sessions := newTestWishlist(t)
	loginTestUser(sessions)
	ctx := context.Background()

	added, err := sync.Add(ctx, widget)
	require.NoError(t, err)
	require.True(t, added)

	added, err = sync.Add(ctx, widget)

	// A repeat add is a no-op, not an error
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, resources.CreateCalls, 1)
	assert.Equal(t, 1, sync.Count())
	assert.Len(t, resources.Records("wishlist"), 1)
}

func TestSynchronizer_Add_Anonymous(t *testing.T) {
	sync, resources, _ := newTestWishlist(t)

	added, err := sync.Add(context.Background(), widget)

	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, added)
	assert.Empty(t, resources.CreateCalls)
}

func TestSynchronizer_Add_PropagatesWriteFailure(t *testing.T) {
	sync, resources, sessions := newTestWishlist(t)
	loginTestUser(sessions)
	resources.CreateErr = errors.New("connection refused")

	added, err := sync.Add(context.Background(), widget)

	require.Error(t, err)
	assert.False(t, added)
	assert.False(t, sync.Contains(widget.ID))
}

// ============================================
// Remove Tests
// ============================================

func TestSynchronizer_Remove(t *testing.T) {
	sync, resources, sessions := newTestWishlist(t)
	loginTestUser(sessions)
	ctx := context.Background()

	_, err := sync.Add(ctx, widget)
	require.NoError(t, err)

	sync.Remove(ctx, widget.ID)

	assert.False(t, sync.Contains(widget.ID))
	assert.Equal(t, 0, sync.Count())
	assert.Empty(t, resources.Records("wishlist"))
}

func TestSynchronizer_Remove_AbsentProduct_NoOp(t *testing.T) {
	sync, resources, sessions := newTestWishlist(t)
	loginTestUser(sessions)

	sync.Remove(context.Background(), "missing")

	assert.Empty(t, resources.DeleteCalls)
}

func TestSynchronizer_Remove_SwallowsFailure(t *testing.T) {
	sync, resources, sessions := newTestWishlist(t)
	loginTestUser(sessions)
	ctx := context.Background()

	_, err := sync.Add(ctx, widget)
	require.NoError(t, err)
	resources.DeleteErr = errors.New("connection refused")

	sync.Remove(ctx, widget.ID)

	assert.True(t, sync.Contains(widget.ID))
}

// ============================================
// Refresh Tests
// ============================================

func TestSynchronizer_Refresh_FiltersToCurrentUser(t *testing.T) {
	sync, resources, sessions := newTestWishlist(t)
	resources.Seed("wishlist",
		map[string]any{"userId": "user-1", "productId": "1", "name": "Widget", "price": 100},
		map[string]any{"userId": "user-2", "productId": "1", "name": "Widget", "price": 100},
	)
	loginTestUser(sessions)

	entries := sync.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "user-1", entries[0].UserID)
}

func TestSynchronizer_Refresh_FetchFailure_ResetsCache(t *testing.T) {
	sync, resources, sessions := newTestWishlist(t)
	loginTestUser(sessions)
	ctx := context.Background()

	_, err := sync.Add(ctx, widget)
	require.NoError(t, err)

	resources.ListErr = errors.New("connection refused")
	sync.Refresh(ctx)

	assert.Equal(t, 0, sync.Count())
}

// ============================================
// Session Lifecycle Tests
// ============================================

func TestSynchronizer_LogoutEmptiesCache_LoginRestores(t *testing.T) {
	sync, _, sessions := newTestWishlist(t)
	user := loginTestUser(sessions)
	ctx := context.Background()

	_, err := sync.Add(ctx, widget)
	require.NoError(t, err)

	sessions.Logout(ctx)
	assert.Equal(t, 0, sync.Count())
	assert.False(t, sync.Contains(widget.ID))

	sessions.Login(ctx, user)
	assert.Equal(t, 1, sync.Count())
	assert.True(t, sync.Contains(widget.ID))
}
