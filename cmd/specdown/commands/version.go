package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Inspect and record the project's version history",
	Long: `Work with the project's version ledger.

The ledger is an append-only history of every recorded version. It is
validated on every access: out-of-order entries are a hard error, never
silently repaired.

Examples:
  specdown version current
  specdown version history
  specdown version validate
  specdown version record --notes "hotfix release"`,
}

var versionCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the current version from the manifest",
	Run:   runVersionCurrent,
}

var versionHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List every recorded version, oldest first",
	Run:   runVersionHistory,
}

var versionValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the ledger and reconcile it with the manifest",
	Run:   runVersionValidate,
}

var versionRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record the manifest's current version as a ledger entry",
	Run:   runVersionRecord,
}

var recordNotes string

func init() {
	versionCmd.AddCommand(versionCurrentCmd)
	versionCmd.AddCommand(versionHistoryCmd)
	versionCmd.AddCommand(versionValidateCmd)
	versionCmd.AddCommand(versionRecordCmd)

	versionRecordCmd.Flags().StringVarP(&recordNotes, "notes", "n", "", "Notes stored with the ledger entry")
}

func runVersionCurrent(cmd *cobra.Command, args []string) {
	l := openLedger(loadProject())

	v, err := l.CurrentVersion()
	if err != nil {
		fail(err)
	}

	if jsonOutput {
		printSuccess(VersionOutput{Version: v.String()})
		return
	}
	fmt.Println(v.String())
}

func runVersionHistory(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	l := openLedger(loadProject())

	entries, err := l.History()
	if err != nil {
		fail(err)
	}

	if jsonOutput {
		printSuccess(HistoryOutput{History: entries, Total: len(entries)})
		return
	}

	fmt.Printf("\n  %s Version History\n\n", cyan("Specdown"))
	if len(entries) == 0 {
		fmt.Printf("  No versions recorded yet. Run 'specdown version record' or 'specdown bump'.\n\n")
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("  %-12s %s", e.Version, dim(e.Timestamp))
		if e.Notes != "" {
			line += "  " + e.Notes
		}
		fmt.Println(line)
	}
	fmt.Printf("\n  %d versions recorded\n\n", len(entries))
}

func runVersionValidate(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen).SprintFunc()

	l := openLedger(loadProject())

	// Full-log validation plus manifest reconciliation: an externally bumped
	// manifest is recorded, a regressed one is rejected.
	if err := l.ValidateHistory(); err != nil {
		if jsonOutput {
			printSuccess(ValidateOutput{Valid: false, Error: err.Error()})
			return
		}
		fail(err)
	}
	if err := l.EnsureCurrentVersionValid(); err != nil {
		if jsonOutput {
			printSuccess(ValidateOutput{Valid: false, Error: err.Error()})
			return
		}
		fail(err)
	}

	entries, err := l.History()
	if err != nil {
		fail(err)
	}

	if jsonOutput {
		printSuccess(ValidateOutput{Valid: true, Entries: len(entries)})
		return
	}
	fmt.Printf("  %s Ledger is valid (%d entries)\n", green("✓"), len(entries))
}

func runVersionRecord(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen).SprintFunc()

	l := openLedger(loadProject())

	entry, err := l.RecordCurrentVersion(recordNotes)
	if err != nil {
		fail(err)
	}

	if jsonOutput {
		printSuccess(RecordOutput{Entry: entry})
		return
	}
	fmt.Printf("  %s Recorded %s\n", green("✓"), entry.Version)
}
