package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"specdown/internal/semver"
	"specdown/pkg/ledger"
	"specdown/pkg/project"
	"specdown/pkg/storage"
)

var bumpCmd = &cobra.Command{
	Use:   "bump [major|minor|patch]",
	Short: "Advance the project version and sync every file that embeds it",
	Long: `Advance the project version by one level and propagate it.

The bump command computes the next version from the ledger, rewrites the
version embedded in the manifest and every registered reference file, then
records the new version as a ledger entry. A bump that finds no file to
update fails: the version never advances silently.

Examples:
  specdown bump patch
  specdown bump minor --notes "added the orders endpoints"
  specdown bump major --json`,
	Args: cobra.ExactArgs(1),
	Run:  runBump,
}

var bumpNotes string

func init() {
	bumpCmd.Flags().StringVarP(&bumpNotes, "notes", "n", "", "Release notes stored with the ledger entry")
}

// fail prints an error in the active output mode and exits non-zero.
func fail(err error) {
	if jsonOutput {
		printJSONError(err)
	} else {
		fmt.Printf("  %s %v\n", color.RedString("Error:"), err)
	}
	os.Exit(1)
}

// loadProject reads specdown.yaml from the --dir flag and requires it to
// exist.
func loadProject() *project.Project {
	p, err := project.Load(projectDir)
	if err != nil {
		fail(err)
	}
	if !p.HasManifest {
		fail(fmt.Errorf("no %s found in %s (run 'specdown init' first)", project.ManifestName, projectDir))
	}
	return p
}

// openLedger wires the project's ledger to its reference synchronizer, with
// warnings routed to the terminal.
func openLedger(p *project.Project) *ledger.Ledger {
	store := storage.NewDisk()
	refs := p.NewSynchronizer(store)
	if !jsonOutput {
		refs.Logf = func(format string, args ...any) {
			fmt.Printf("  %s %s\n", color.YellowString("Warning:"), fmt.Sprintf(format, args...))
		}
	}
	return p.NewLedger(store, refs)
}

func runBump(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	level, err := semver.ParseLevel(args[0])
	if err != nil {
		fail(err)
	}

	p := loadProject()
	l := openLedger(p)

	if !jsonOutput {
		fmt.Printf("\n  %s Version Bump\n\n", cyan("Specdown"))
	}

	// Reconcile first so a hand-edited manifest is recorded (or rejected)
	// before the bump computes its base.
	if err := l.EnsureCurrentVersionValid(); err != nil {
		fail(err)
	}

	v, updates, err := l.Increment(cmd.Context(), level, bumpNotes)
	if err != nil {
		fail(err)
	}

	if jsonOutput {
		printSuccess(BumpOutput{
			Version: v.String(),
			Level:   string(level),
			Notes:   bumpNotes,
			Updated: updates,
		})
		return
	}

	for _, u := range updates {
		fmt.Printf("  %s %s  %s\n", green("✓"), u.Path, dim(u.OldVersion+" → "+u.NewVersion))
	}
	fmt.Printf("\n  %s Bumped to %s\n\n", green("✓"), green(v.String()))
}
