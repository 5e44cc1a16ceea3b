package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/qalink"
	"github.com/fwojciec/qalink/search"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	resolver := search.NewResolver(deps.Store, c.strategy(deps), deps.Logger)

	results, stage, err := resolver.Resolve(deps.Ctx, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qalink.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matching questions.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%d result(s), matched by %s:\n", len(results), stage)
	for _, res := range results {
		if res.SimilarityScore != nil {
			fmt.Fprintf(deps.Stdout, "[%s] %s (%.2f)\n", res.ID, res.Text, *res.SimilarityScore)
		} else {
			fmt.Fprintf(deps.Stdout, "[%s] %s\n", res.ID, res.Text)
		}
		for _, ans := range res.Answers {
			fmt.Fprintf(deps.Stdout, "    - %s\n", ans.Text)
		}
	}
	return nil
}
