package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/storefront/internal/store"
)

var ErrNotFound = errors.New("product not found")

// Product is one entry of the products collection.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
}

// Service reads the product catalog from the remote store.
type Service struct {
	store store.ResourceStore
}

func NewService(rs store.ResourceStore) *Service {
	return &Service{store: rs}
}

// List returns every product.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := s.store.List(ctx, store.CollectionProducts, &products); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// Search filters products the way the storefront's listing page does: a
// case-insensitive term match on name or description, and an exact category
// match. Empty term or category ("" or "all") means no filter.
func (s *Service) Search(ctx context.Context, term, category string) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(term)
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if category != "" && category != "all" && p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// Get returns the product with the given id.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}
