//go:build !tui

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The terminal build of deep-miner requires the tui build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags tui ./cmd/miner-tui` or build with `-tags tui`.")
	os.Exit(2)
}
