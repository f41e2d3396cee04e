// Command buritest batches directories of .buri fixtures against a YAML
// manifest of expected outcomes, compiling each with pkg/buric and
// printing one PASS/FAIL line per file.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/burilang/buric/pkg/buric"
)

// Manifest mirrors the teacher's fixture category table (name, path,
// expected outcome) as YAML instead of a Go literal, so categories can
// be added without recompiling the harness.
type Manifest struct {
	Categories []Category `yaml:"categories"`
}

type Category struct {
	Name         string `yaml:"name"`
	Path         string `yaml:"path"`
	ExpectErrors bool   `yaml:"expect_errors"`
	Skip         bool   `yaml:"skip"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: buritest <manifest.yaml> [report.json]")
		os.Exit(2)
	}

	manifest, err := loadManifest(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "buritest: %v\n", err)
		os.Exit(1)
	}

	reportPath := ""
	if len(os.Args) >= 3 {
		reportPath = os.Args[2]
	}

	run := NewRun()
	for _, cat := range manifest.Categories {
		if cat.Skip {
			fmt.Printf("SKIP  %s (%s)\n", cat.Name, cat.Path)
			run.Skipped++
			continue
		}
		if err := runCategory(run, cat); err != nil {
			fmt.Fprintf(os.Stderr, "buritest: %s: %v\n", cat.Name, err)
			os.Exit(1)
		}
	}

	fmt.Printf("\n%d passed, %d failed, %d skipped (%d total)\n",
		run.Passed, run.Failed, run.Skipped, run.Passed+run.Failed)

	if reportPath != "" {
		if err := os.WriteFile(reportPath, []byte(run.JSON()), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "buritest: writing report: %v\n", err)
			os.Exit(1)
		}
	}

	if run.Failed > 0 {
		os.Exit(1)
	}
}

func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

func runCategory(run *Run, cat Category) error {
	files, err := filepath.Glob(filepath.Join(cat.Path, "*.buri"))
	if err != nil {
		return fmt.Errorf("globbing %s: %w", cat.Path, err)
	}
	for _, file := range files {
		name := cat.Name + "/" + filepath.Base(file)
		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}

		_, diag := buric.Compile(string(source))
		failed := diag != nil

		switch {
		case failed == cat.ExpectErrors:
			fmt.Printf("PASS  %s\n", name)
			run.recordPass(name)
		default:
			fmt.Printf("FAIL  %s\n", name)
			message := ""
			if diag != nil {
				message = diag.Error()
			}
			run.recordFail(name, message)
		}
	}
	return nil
}
