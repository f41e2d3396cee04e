package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "buric <source.buri> [destination.mjs]",
	Short: "Compile Buri source to an ECMAScript module",
	Long: `buric is a single-file compiler for the Buri language.

It parses a .buri source file, infers and resolves its types, and
lowers the result to a single ECMAScript module.`,
	Version: Version,
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runCompile,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
