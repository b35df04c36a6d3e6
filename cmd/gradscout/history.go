package main

import (
	"fmt"

	"github.com/fwojciec/gradscout"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.RunID != "" {
		return c.showRun(deps)
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, gradscout.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gradscout.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'gradscout run' to create one.")
		return nil
	}

	deps.Table.WriteRuns(runs)
	return nil
}

func (c *HistoryCmd) showRun(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.RunID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gradscout.ErrorMessage(err))
		return err
	}

	rows, err := deps.Runs.FindRows(deps.Ctx, run.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gradscout.ErrorMessage(err))
		return err
	}

	if len(rows) == 0 {
		fmt.Fprintf(deps.Stdout, "Run %s produced no rows.\n", run.ID)
		return nil
	}

	deps.Table.WriteStoredRows(rows)

	fresh := 0
	for _, r := range rows {
		if r.New {
			fresh++
		}
	}
	fmt.Fprintf(deps.Stdout, "%d rows, %d new (*).\n", len(rows), fresh)
	return nil
}
