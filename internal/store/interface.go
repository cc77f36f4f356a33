package store

import (
	"context"
	"net/url"
)

// Collection names on the remote resource store.
const (
	CollectionUsers    = "users"
	CollectionProducts = "products"
	CollectionCart     = "cart"
	CollectionWishlist = "wishlist"
	CollectionOrders   = "orders"
)

// ResourceStore is the generic resource-per-collection CRUD surface of the
// remote store. The store trusts whatever userId/productId fields are
// embedded in the payload; there is no authentication header.
type ResourceStore interface {
	// List fetches every record in a collection and decodes the JSON array
	// into out (a pointer to a slice).
	List(ctx context.Context, collection string, out any) error
	// ListWhere is List with equality filters passed as query parameters,
	// for stores that support server-side filtering.
	ListWhere(ctx context.Context, collection string, filter url.Values, out any) error
	// Create posts a new record. The created record, including the
	// store-assigned id, is decoded into out when out is non-nil.
	Create(ctx context.Context, collection string, body any, out any) error
	// Patch partially updates the record with the given id. Only the fields
	// present in fields are changed.
	Patch(ctx context.Context, collection, id string, fields any) error
	// Delete removes the record with the given id.
	Delete(ctx context.Context, collection, id string) error
}
