package main

import (
	"fmt"

	"github.com/fwojciec/docsets"
)

// Run executes the refresh command.
func (c *RefreshCmd) Run(deps *Dependencies) error {
	change, err := deps.Controller.Refresh(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsets.ErrorMessage(err))
		return err
	}

	if change.FromCache {
		fmt.Fprintf(deps.Stdout, "Loaded %d docsets from cache (catalog unreachable)\n", change.Count)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Fetched %d docsets\n", change.Count)
	return nil
}
