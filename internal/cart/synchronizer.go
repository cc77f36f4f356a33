package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/session"
	"github.com/example/storefront/internal/store"
)

// ErrNotAuthenticated is returned when a mutation is attempted with no
// active session. The message is shown to the user as-is.
var ErrNotAuthenticated = errors.New("please log in to add items to cart")

// Line is one cart line item: one product held by one user. At most one
// line exists per (userId, productId) pair.
type Line struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
}

// Synchronizer maintains the local cache of the current user's cart lines,
// mirrored against the remote store. The store is the source of truth: every
// mutation issues its remote write and then rebuilds the cache with a full
// refresh, never an incremental patch.
type Synchronizer struct {
	store    store.ResourceStore
	sessions *session.Manager

	mu    sync.RWMutex
	lines []Line
}

// NewSynchronizer creates a cart Synchronizer and subscribes it to session
// changes: login reloads the cache, logout empties it.
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

// Refresh fetches all cart lines from the remote store, filters them to the
// current user, and replaces the local cache. On failure the cache is reset
// to empty and the error is logged, not propagated.
func (s *Synchronizer) Refresh(ctx context.Context) {
	userID := s.sessions.UserID()
	if userID == "" {
		s.replace(nil)
		return
	}

	var all []Line
	if err := s.store.List(ctx, store.CollectionCart, &all); err != nil {
		log.Printf("[Cart] Failed to fetch cart items: %v", err)
		s.replace(nil)
		return
	}

	mine := make([]Line, 0, len(all))
	for _, l := range all {
		if l.UserID == userID {
			mine = append(mine, l)
		}
	}
	s.replace(mine)
}

// Add puts one unit of the product in the cart. If a line for the product
// already exists its quantity is incremented by one, otherwise a new line is
// created. The write error is propagated so the caller knows the add did
// not happen.
func (s *Synchronizer) Add(ctx context.Context, p catalog.Product) error {
	user, ok := s.sessions.Current()
	if !ok {
		return ErrNotAuthenticated
	}

	if existing, ok := s.find(p.ID); ok {
		err := s.store.Patch(ctx, store.CollectionCart, existing.ID, map[string]any{
			"quantity": existing.Quantity + 1,
		})
		if err != nil {
			return err
		}
	} else {
		line := Line{
			UserID:      user.ID,
			ProductID:   p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Image:       p.Image,
			Description: p.Description,
			Quantity:    1,
		}
		if err := s.store.Create(ctx, store.CollectionCart, line, nil); err != nil {
			return err
		}
	}

	s.Refresh(ctx)
	return nil
}

// Remove deletes the line for the product, if present. Best-effort: failures
// are logged, not propagated.
func (s *Synchronizer) Remove(ctx context.Context, productID string) {
	line, ok := s.find(productID)
	if !ok {
		return
	}
	if err := s.store.Delete(ctx, store.CollectionCart, line.ID); err != nil {
		log.Printf("[Cart] Failed to remove item %s: %v", productID, err)
		return
	}
	s.Refresh(ctx)
}

// UpdateQuantity sets the line's quantity. Anything below one removes the
// line instead.
func (s *Synchronizer) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		s.Remove(ctx, productID)
		return
	}

	line, ok := s.find(productID)
	if !ok {
		return
	}
	err := s.store.Patch(ctx, store.CollectionCart, line.ID, map[string]any{
		"quantity": quantity,
	})
	if err != nil {
		log.Printf("[Cart] Failed to update quantity for %s: %v", productID, err)
		return
	}
	s.Refresh(ctx)
}

// IncreaseQuantity bumps the line's quantity by one.
func (s *Synchronizer) IncreaseQuantity(ctx context.Context, productID string) {
	if line, ok := s.find(productID); ok {
		s.UpdateQuantity(ctx, productID, line.Quantity+1)
	}
}

// DecreaseQuantity lowers the line's quantity by one, removing the line when
// it would drop below one.
func (s *Synchronizer) DecreaseQuantity(ctx context.Context, productID string) {
	if line, ok := s.find(productID); ok {
		s.UpdateQuantity(ctx, productID, line.Quantity-1)
	}
}

// Clear deletes every cached line remotely. The deletions run concurrently
// and are awaited as a group before the refresh. Best-effort.
func (s *Synchronizer) Clear(ctx context.Context) {
	lines := s.Lines()
	if len(lines) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, line := range lines {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := s.store.Delete(ctx, store.CollectionCart, id); err != nil {
				log.Printf("[Cart] Failed to delete item %s while clearing: %v", id, err)
			}
		}(line.ID)
	}
	wg.Wait()

	s.Refresh(ctx)
}

// Lines returns a copy of the cached lines.
func (s *Synchronizer) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Quantity returns the cached quantity for the product, zero if absent.
func (s *Synchronizer) Quantity(productID string) int {
	if line, ok := s.find(productID); ok {
		return line.Quantity
	}
	return 0
}

// TotalItems returns the sum of quantities across the cache.
func (s *Synchronizer) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice returns the sum of price times quantity across the cache.
// Accumulation happens in fixed point so repeated decimal prices do not
// drift.
func (s *Synchronizer) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, l := range s.lines {
		price := decimal.NewFromFloat(l.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	f, _ := total.Float64()
	return f
}

func (s *Synchronizer) find(productID string) (Line, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return Line{}, false
}

func (s *Synchronizer) replace(lines []Line) {
	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
}
