package mockstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *store.Client {
	t.Helper()
	srv := httptest.NewServer(New().Handler())
	t.Cleanup(srv.Close)
	return store.NewClient(srv.URL)
}

func TestServer_CreateAssignsID(t *testing.T) {
	client := newTestStore(t)
	ctx := context.Background()

	var created map[string]any
	err := client.Create(ctx, "products", map[string]any{"name": "Widget", "price": 100}, &created)

	require.NoError(t, err)
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "Widget", created["name"])
}

func TestServer_ListRoundTrip(t *testing.T) {
	client := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, client.Create(ctx, "cart", map[string]any{"userId": "u1", "productId": "1", "quantity": 1}, nil))
	require.NoError(t, client.Create(ctx, "cart", map[string]any{"userId": "u2", "productId": "1", "quantity": 3}, nil))

	var all []map[string]any
	require.NoError(t, client.List(ctx, "cart", &all))
	assert.Len(t, all, 2)
}

func TestServer_ListWhereFilters(t *testing.T) {
	client := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, client.Create(ctx, "cart", map[string]any{"userId": "u1", "productId": "1", "quantity": 1}, nil))
	require.NoError(t, client.Create(ctx, "cart", map[string]any{"userId": "u2", "productId": "1", "quantity": 3}, nil))

	var mine []map[string]any
	require.NoError(t, client.ListWhere(ctx, "cart", url.Values{"userId": {"u1"}}, &mine))

	require.Len(t, mine, 1)
	assert.Equal(t, "u1", mine[0]["userId"])
}

func TestServer_Patch(t *testing.T) {
	client := newTestStore(t)
	ctx := context.Background()

	var created map[string]any
	require.NoError(t, client.Create(ctx, "cart", map[string]any{"userId": "u1", "productId": "1", "quantity": 1}, &created))
	id := created["id"].(string)

	require.NoError(t, client.Patch(ctx, "cart", id, map[string]any{"quantity": 5}))

	var all []map[string]any
	require.NoError(t, client.List(ctx, "cart", &all))
	require.Len(t, all, 1)
	assert.Equal(t, float64(5), all[0]["quantity"])
	// Other fields survive a partial update
	assert.Equal(t, "u1", all[0]["userId"])
}

func TestServer_PatchCannotChangeID(t *testing.T) {
	client := newTestStore(t)
	ctx := context.Background()

	var created map[string]any
	require.NoError(t, client.Create(ctx, "cart", map[string]any{"quantity": 1}, &created))
	id := created["id"].(string)

	require.NoError(t, client.Patch(ctx, "cart", id, map[string]any{"id": "hijacked", "quantity": 2}))

	var all []map[string]any
	require.NoError(t, client.List(ctx, "cart", &all))
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0]["id"])
}

func TestServer_Delete(t *testing.T) {
	client := newTestStore(t)
	ctx := context.Background()

	var created map[string]any
	require.NoError(t, client.Create(ctx, "cart", map[string]any{"quantity": 1}, &created))

	require.NoError(t, client.Delete(ctx, "cart", created["id"].(string)))

	var all []map[string]any
	require.NoError(t, client.List(ctx, "cart", &all))
	assert.Empty(t, all)
}

func TestServer_UnknownCollection(t *testing.T) {
	client := newTestStore(t)
	ctx := context.Background()

	var out []map[string]any
	err := client.List(ctx, "gadgets", &out)

	var statusErr *store.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestServer_MissingRecord(t *testing.T) {
	client := newTestStore(t)
	ctx := context.Background()

	err := client.Delete(ctx, "cart", "missing")

	var statusErr *store.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestServer_LoadSeed(t *testing.T) {
	seed := `{
		"products": [
			{"id": "1", "name": "Widget", "price": 100},
			{"name": "Gadget", "price": 250}
		],
		"users": [
			{"id": "u1", "name": "Asha", "email": "asha@example.com", "password": "secret123"}
		]
	}`
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	srv := New()
	require.NoError(t, srv.LoadSeed(path))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	client := store.NewClient(ts.URL)
	ctx := context.Background()

	var products []map[string]any
	require.NoError(t, client.List(ctx, "products", &products))
	require.Len(t, products, 2)
	assert.Equal(t, "1", products[0]["id"])
	// Records without ids get one assigned
	assert.NotEmpty(t, products[1]["id"])

	var users []map[string]any
	require.NoError(t, client.List(ctx, "users", &users))
	assert.Len(t, users, 1)
}

func TestServer_LoadSeed_UnknownCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"gadgets": []}`), 0o600))

	err := New().LoadSeed(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown collection")
}
