// Command threemf-implicit is a small CLI over the implicit-function
// core: it parses, validates, round-trips, and inspects the
// <implicitfunction> XML fragment, and dumps the node-type catalog.
package main

import (
	"fmt"
	"os"

	"github.com/threemf-go/implicit/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
