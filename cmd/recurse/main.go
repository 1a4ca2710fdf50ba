// Package main provides the CLI entrypoint for recurse.
//
// recurse normalizes YAML and JSON documents:
//   - fold rewrites every mapping key into lowercase, separator delimited form
//   - get prints the value at a dotted path of the folded document
//   - walk lists every field of the folded document, parents first
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
