package cli

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/mockstore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bundled mock resource store",
	Long: `Run a json-server style resource store with the collections the
storefront expects (users, products, cart, wishlist, orders). Records live
in memory; pass a seed file to preload data.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		gin.SetMode(gin.ReleaseMode)
		srv := mockstore.New()
		if cfg.Serve.Seed != "" {
			if err := srv.LoadSeed(cfg.Serve.Seed); err != nil {
				return err
			}
			log.Printf("[MockStore] Seeded from %s", cfg.Serve.Seed)
		}

		log.Printf("[MockStore] Listening on %s", cfg.Serve.Addr)
		return http.ListenAndServe(cfg.Serve.Addr, srv.Handler())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
