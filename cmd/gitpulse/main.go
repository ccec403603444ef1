// Package main is the entrypoint for the gitpulse command line.
package main

import "github.com/kiranshivaraju/gitpulse/internal/cli"

func main() {
	cli.Execute()
}
