package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"specdown/internal/semver"
	"specdown/pkg/project"
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a new specdown project",
	Long: `Create a specdown project in the current directory.

Writes specdown.yaml (the manifest and canonical version source), a starter
OpenAPI document when none exists, and a README tracking the project
version.

Examples:
  specdown init myapi
  specdown init myapi --version 0.1.0 --spec api/openapi.yaml
  specdown init --json myapi`,
	Args: cobra.MaximumNArgs(1),
	Run:  runInit,
}

var (
	initVersion string
	initSpec    string
	initOutput  string
)

func init() {
	initCmd.Flags().StringVar(&initVersion, "version", "0.1.0", "Initial project version")
	initCmd.Flags().StringVar(&initSpec, "spec", "openapi.yaml", "OpenAPI document path")
	initCmd.Flags().StringVar(&initOutput, "output", "docs", "Generated docs directory")
}

const starterSpec = `openapi: 3.0.3
info:
  title: %s
  version: %s
paths:
  /health:
    get:
      summary: Health check
      responses:
        "200":
          description: OK
`

func runInit(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	// Prompt for anything missing when a human is driving.
	if name == "" && !jsonOutput {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Project name").
					Description("Used as the documentation title").
					Value(&name),
				huh.NewInput().
					Title("Initial version").
					Description("Three-part version, e.g. 0.1.0").
					Value(&initVersion),
			),
		)
		if err := form.Run(); err != nil {
			fmt.Printf("  %s Cancelled\n", color.YellowString("!"))
			return
		}
	}
	if name == "" {
		fail(fmt.Errorf("project name required"))
	}
	if _, err := semver.Parse(initVersion); err != nil {
		fail(err)
	}

	manifestPath := filepath.Join(projectDir, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		fail(fmt.Errorf("%s already exists", manifestPath))
	}

	if !jsonOutput {
		fmt.Printf("\n  %s Creating project: %s\n\n", cyan("Specdown"), green(name))
	}

	var created []string
	writeIfAbsent := func(path, content string) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				fail(err)
			}
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			fail(err)
		}
		created = append(created, path)
	}

	manifest := fmt.Sprintf("name: %s\nversion: %s\nspec: %s\noutput: %s\nreferences:\n  - README.md\n",
		name, initVersion, initSpec, initOutput)
	writeIfAbsent(manifestPath, manifest)
	writeIfAbsent(filepath.Join(projectDir, initSpec), fmt.Sprintf(starterSpec, name, initVersion))
	writeIfAbsent(filepath.Join(projectDir, "README.md"),
		fmt.Sprintf("# %s\n\nAPI documentation, version: %s\n\nRun `specdown generate` to render the docs.\n", name, initVersion))

	if jsonOutput {
		printSuccess(InitOutput{Project: name, Directory: projectDir, Created: created})
		return
	}

	for _, f := range created {
		fmt.Printf("  %s %s\n", green("✓"), f)
	}
	fmt.Printf("\n  Next steps:\n")
	fmt.Printf("    specdown generate\n")
	fmt.Printf("    specdown bump patch\n\n")
}
