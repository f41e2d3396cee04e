package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/burilang/buric/pkg/buric"
)

const sourceExt = ".buri"

func runCompile(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	source := args[0]
	if filepath.Ext(source) != sourceExt {
		return fmt.Errorf("source file %q must have a %s extension", source, sourceExt)
	}

	dest := ""
	if len(args) == 2 {
		dest = args[1]
	} else {
		dest = strings.TrimSuffix(source, sourceExt) + ".mjs"
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "compiling %s -> %s\n", source, dest)
	}

	content, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", source, err)
	}

	js, diag := buric.Compile(string(content))
	if diag != nil {
		return fmt.Errorf("%s", diag.Error())
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(dest, []byte(js), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", dest, len(js))
	}

	return nil
}
