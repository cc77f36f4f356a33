package cli

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/cart"
	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/session"
	"github.com/example/storefront/internal/store"
	"github.com/example/storefront/internal/wishlist"
)

// App wires the state container together for the CLI commands.
type App struct {
	Config   *config.Config
	Sessions *session.Manager
	Auth     *auth.Service
	Catalog  *catalog.Service
	Cart     *cart.Synchronizer
	Wishlist *wishlist.Synchronizer
}

func newApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client := store.NewClient(cfg.Store.URL)
	sessions := session.NewManager(afero.NewOsFs(), cfg.Session.File)

	var verifier auth.Verifier = auth.PlainVerifier{}
	if cfg.Auth.Hasher == "bcrypt" {
		verifier = auth.BcryptVerifier{}
	}

	app := &App{
		Config:   cfg,
		Sessions: sessions,
		Auth:     auth.NewService(client, verifier),
		Catalog:  catalog.NewService(client),
		Cart:     cart.NewSynchronizer(client, sessions),
		Wishlist: wishlist.NewSynchronizer(client, sessions),
	}

	sessions.Restore()
	return app, nil
}

// requireUser fails the command early when nobody is logged in.
func (a *App) requireUser() (session.User, error) {
	user, ok := a.Sessions.Current()
	if !ok {
		return session.User{}, cart.ErrNotAuthenticated
	}
	return user, nil
}
