package main

import "github.com/example/storefront/internal/cli"

func main() {
	cli.Execute()
}
