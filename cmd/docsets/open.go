package main

import (
	"fmt"

	"github.com/fwojciec/docsets"
	"github.com/fwojciec/docsets/fs"
)

// Run executes the open command. It writes a page redirecting to the best
// matching entry and prints its location; an exact name match wins over a
// substring match.
func (c *OpenCmd) Run(deps *Dependencies) error {
	items, err := searchIndex(deps, c.Query, 0)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no entry matching %q\n", c.Query)
		return docsets.Errorf(docsets.ENOTFOUND, "no entry matching %q", c.Query)
	}

	item := items[0]
	for _, it := range items {
		if it.Text == c.Query {
			item = it
			break
		}
	}

	path, err := fs.NewTrampoline(deps.Layout.CacheDir()).Write(item.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s  (%s)\n", item.Text, item.Subtext)
	fmt.Fprintf(deps.Stdout, "file://%s\n", path)
	return nil
}
