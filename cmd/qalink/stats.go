package main

import (
	"fmt"
	"sort"

	"github.com/fwojciec/qalink"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	if deps.SearchLog == nil {
		fmt.Fprintln(deps.Stderr, "error: search logging is disabled. Set QALINK_DB to a database path.")
		return qalink.Errorf(qalink.EINVALID, "search logging is disabled")
	}

	stats, err := deps.SearchLog.SearchStats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qalink.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "searches: %d\n", stats.Total)
	if stats.Total == 0 {
		return nil
	}
	fmt.Fprintf(deps.Stdout, "average duration: %s\n", stats.AvgDuration)

	stages := make([]string, 0, len(stats.ByStage))
	for stage := range stats.ByStage {
		stages = append(stages, stage)
	}
	sort.Strings(stages)
	for _, stage := range stages {
		fmt.Fprintf(deps.Stdout, "  %-10s %d\n", stage, stats.ByStage[stage])
	}
	return nil
}
