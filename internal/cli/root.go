package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - cart, wishlist and checkout against a resource store",
	Long: `Storefront drives a browser-storefront state container from the command
line: register and log in, browse the product catalog, manage your cart and
wishlist, and place orders. State lives in a json-server style resource
store (see the "serve" command for a bundled one).`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
