// Command vellum is the CLI for the vellum document store.
package main

import "github.com/mesh-intelligence/vellum/internal/cli"

func main() {
	cli.Execute()
}
