// Command buric is the CLI wrapper around pkg/buric.Compile: it reads
// one .buri source file, compiles it, and writes the resulting .mjs
// module next to it (or to an explicit destination).
package main

import (
	"fmt"
	"os"

	"github.com/burilang/buric/cmd/buric/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
