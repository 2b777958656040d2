package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"specdown/pkg/docgen"
	"specdown/pkg/project"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the project's OpenAPI spec to Markdown documentation",
	Long: `Render the OpenAPI document to Markdown reference documentation.

The generated docs are stamped with the project's current ledger version.
With --watch, the spec file is watched and the docs are regenerated on every
change.

Examples:
  specdown generate
  specdown generate --spec api/openapi.yaml --output site/docs
  specdown generate --watch`,
	Run: runGenerate,
}

var (
	generateSpec   string
	generateOutput string
	generateWatch  bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateSpec, "spec", "s", "", "OpenAPI document path (defaults to the manifest's spec field)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Docs output directory (defaults to the manifest's output field)")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Regenerate whenever the spec file changes")
}

// generateOnce renders the docs and returns the output path.
func generateOnce(p *project.Project) (string, error) {
	specPath := p.SpecPath()
	if generateSpec != "" {
		specPath = filepath.Join(p.Dir, generateSpec)
	}
	outDir := p.OutputDir()
	if generateOutput != "" {
		outDir = filepath.Join(p.Dir, generateOutput)
	}

	cfg := docgen.Config{Title: p.Name}
	if v, err := openLedger(p).CurrentVersion(); err == nil {
		cfg.Version = v.String()
	}

	outPath := filepath.Join(outDir, "index.md")
	if err := docgen.New(specPath, cfg).WriteToFile(outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

func runGenerate(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	p := loadProject()

	if !jsonOutput {
		fmt.Printf("\n  %s Docs Generator\n\n", cyan("Specdown"))
		fmt.Printf("  → Rendering %s...\n", p.Spec)
	}

	outPath, err := generateOnce(p)
	if err != nil {
		fail(err)
	}

	info, _ := os.Stat(outPath)
	size := ""
	if info != nil {
		size = formatBytes(info.Size())
	}

	if jsonOutput && !generateWatch {
		printSuccess(GenerateOutput{Spec: p.SpecPath(), Output: outPath, Size: size})
		return
	}

	if !jsonOutput {
		fmt.Printf("  %s Docs generated\n\n", green("✓"))
		fmt.Printf("  Output:  %s\n", green(outPath))
		fmt.Printf("  Size:    %s\n\n", dim(size))
	}

	if !generateWatch {
		return
	}

	watchAndRegenerate(p)
}

// watchAndRegenerate re-renders the docs whenever the spec file changes,
// until interrupted.
func watchAndRegenerate(p *project.Project) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	specPath := p.SpecPath()
	if generateSpec != "" {
		specPath = filepath.Join(p.Dir, generateSpec)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fail(fmt.Errorf("create file watcher: %w", err))
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory, not the file: editors replace files on save.
	if err := watcher.Add(filepath.Dir(specPath)); err != nil {
		fail(err)
	}

	fmt.Printf("  %s Watching %s for changes...\n\n", green("✓"), specPath)

	var debounceTimer *time.Timer
	debounceDuration := 100 * time.Millisecond

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(specPath) {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDuration, func() {
				timestamp := time.Now().Format("15:04:05")
				fmt.Printf("  [%s] %s Regenerating docs...\n", timestamp, yellow("→"))
				if _, err := generateOnce(p); err != nil {
					fmt.Printf("  [%s] %s generation failed: %v\n", timestamp, red("✗"), err)
					return
				}
				fmt.Printf("  [%s] %s Ready\n", timestamp, green("✓"))
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Printf("  %s Watcher error: %v\n", red("✗"), err)

		case <-signals:
			fmt.Printf("\n  Stopped watching\n")
			return
		}
	}
}
