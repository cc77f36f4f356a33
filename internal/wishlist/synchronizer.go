package wishlist

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/session"
	"github.com/example/storefront/internal/store"
)

// ErrNotAuthenticated is returned when a mutation is attempted with no
// active session.
var ErrNotAuthenticated = errors.New("please log in to add items to wishlist")

// Entry is one wishlist record: a cart line without the quantity. At most
// one entry exists per (userId, productId) pair.
type Entry struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// Synchronizer maintains the local cache of the current user's wishlist
// entries with the same refresh-after-write discipline as the cart.
type Synchronizer struct {
	store    store.ResourceStore
	sessions *session.Manager

	mu      sync.RWMutex
	entries []Entry
}

// NewSynchronizer creates a wishlist Synchronizer subscribed to session
// changes.
func NewSynchronizer(rs store.ResourceStore, sm *session.Manager) *Synchronizer {
	s := &Synchronizer{store: rs, sessions: sm}
	sm.Subscribe(s)
	return s
}

// SessionChanged implements session.Listener.
func (s *Synchronizer) SessionChanged(ctx context.Context, u *session.User) {
	if u == nil {
		s.replace(nil)
		return
	}
	s.Refresh(ctx)
}

// Refresh rebuilds the cache from the remote store, filtered to the current
// user. Failures are logged and reset the cache to empty.
func (s *Synchronizer) Refresh(ctx context.Context) {
	userID := s.sessions.UserID()
	if userID == "" {
		s.replace(nil)
		return
	}

	var all []Entry
	if err := s.store.List(ctx, store.CollectionWishlist, &all); err != nil {
		log.Printf("[Wishlist] Failed to fetch wishlist items: %v", err)
		s.replace(nil)
		return
	}

	mine := make([]Entry, 0, len(all))
	for _, e := range all {
		if e.UserID == userID {
			mine = append(mine, e)
		}
	}
	s.replace(mine)
}

// Add puts the product on the wishlist. It reports whether the product was
// newly added: false means it was already present, which is a no-op, not an
// error. Write failures are propagated.
func (s *Synchronizer) Add(ctx context.Context, p catalog.Product) (bool, error) {
	user, ok := s.sessions.Current()
	if !ok {
		return false, ErrNotAuthenticated
	}

	if s.Contains(p.ID) {
		return false, nil
	}

	entry := Entry{
		UserID:      user.ID,
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
	}
	if err := s.store.Create(ctx, store.CollectionWishlist, entry, nil); err != nil {
		return false, err
	}

	s.Refresh(ctx)
	return true, nil
}

// Remove deletes the entry for the product, if present. Best-effort:
// failures are logged, not propagated.
func (s *Synchronizer) Remove(ctx context.Context, productID string) {
	entry, ok := s.find(productID)
	if !ok {
		return
	}
	if err := s.store.Delete(ctx, store.CollectionWishlist, entry.ID); err != nil {
		log.Printf("[Wishlist] Failed to remove item %s: %v", productID, err)
		return
	}
	s.Refresh(ctx)
}

// Contains reports whether the product is on the cached wishlist.
func (s *Synchronizer) Contains(productID string) bool {
	_, ok := s.find(productID)
	return ok
}

// Count returns the number of cached entries.
func (s *Synchronizer) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns a copy of the cached entries.
func (s *Synchronizer) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Synchronizer) find(productID string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ProductID == productID {
			return e, true
		}
	}
	return Entry{}, false
}

func (s *Synchronizer) replace(entries []Entry) {
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}
