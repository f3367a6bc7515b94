package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golives/glc/internal/config"
	"github.com/golives/glc/internal/importer"
	"github.com/golives/glc/internal/journal"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Compensate half-committed imports left by a failed run",
	Long: `List journal entries stuck between upload and commit (for example
after a crash, or a record write that failed after its screenshot was
already uploaded) and delete the orphaned screenshot and record.

The screenshot is always deleted before the record, mirroring commit
order.

Example:
  glc rollback          # List and confirm each leftover
  glc rollback --all    # Compensate everything without asking per entry`,
	RunE: runRollback,
}

var rollbackAll bool

func init() {
	rollbackCmd.Flags().BoolVar(&rollbackAll, "all", false, "compensate every leftover without per-entry confirmation")
}

func runRollback(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	jnl, err := journal.Open(config.JournalPath())
	if err != nil {
		return err
	}
	defer func() { _ = jnl.Close() }()

	entries, err := jnl.Uncommitted(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println(green("Journal is clean: no half-committed imports found"))
		return nil
	}

	store, uploader, err := buildBackends(ctx, false)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
		_ = uploader.Close()
	}()

	eng := &importer.Importer{
		Store:  store,
		Assets: uploader,
		Infof: func(format string, a ...interface{}) {
			fmt.Println(green(fmt.Sprintf(format, a...)))
		},
		Warnf: func(format string, a ...interface{}) {
			fmt.Println(yellow("WARNING: " + fmt.Sprintf(format, a...)))
		},
	}

	for _, e := range entries {
		fmt.Printf("\nRecord %d (%s), state %s, asset %s\n", e.RecordID, e.Implementation, e.State, e.AssetKey)
		if !rollbackAll && !confirm("Delete this record's screenshot and catalog entry?") {
			continue
		}
		res := eng.Compensate(ctx, e.AssetKey, e.RecordID)
		state := journal.StateRolledBack
		errMsg := ""
		if !res.Clean() {
			errMsg = "manual cleanup required"
		}
		if err := jnl.SetState(ctx, e.RunID, e.RecordID, state, errMsg); err != nil {
			fmt.Println(yellow(fmt.Sprintf("WARNING: journal: %v", err)))
		}
	}
	return nil
}
