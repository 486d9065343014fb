package main

import (
	"fmt"

	"github.com/fwojciec/docsets"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	items, err := searchIndex(deps, c.Query, c.Limit)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintf(deps.Stdout, "No entries matching %q.\n", c.Query)
		return nil
	}
	for _, item := range items {
		fmt.Fprintf(deps.Stdout, "%s  (%s)\n  %s\n", item.Text, item.Subtext, item.URL)
	}
	return nil
}

// searchIndex loads the catalog, waits for the index and searches it.
func searchIndex(deps *Dependencies, query string, limit int) ([]docsets.IndexItem, error) {
	if err := ensureCatalog(deps); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsets.ErrorMessage(err))
		return nil, err
	}
	deps.Controller.WaitIndexed()
	return deps.Controller.Search(query, limit), nil
}
