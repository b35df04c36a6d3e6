package main

import "fmt"

// Run executes the queries command.
func (c *QueriesCmd) Run(deps *Dependencies) error {
	queries := deps.Queries.Expand()
	if len(queries) == 0 {
		fmt.Fprintln(deps.Stdout, "No queries found. Add base_queries to queries.json.")
		return nil
	}

	for _, q := range queries {
		fmt.Fprintln(deps.Stdout, q)
	}
	fmt.Fprintf(deps.Stdout, "Total query variants: %d\n", len(queries))
	return nil
}
