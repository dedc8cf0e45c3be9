// Package main provides the tabletop CLI.
package main

import "github.com/mesh-intelligence/tabletop/internal/cli"

func main() {
	cli.Execute()
}
