package main

import (
	"fmt"

	"github.com/fwojciec/docsets"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	if err := ensureCatalog(deps); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsets.ErrorMessage(err))
		return err
	}

	n := 0
	for _, d := range deps.Controller.Docsets() {
		if c.Installed && !d.IsInstalled() {
			continue
		}
		mark := ""
		if d.IsInstalled() {
			mark = "  [installed]"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s%s\n", d.Name, d.Title, mark)
		n++
	}

	if n == 0 {
		if c.Installed {
			fmt.Fprintln(deps.Stdout, "No docsets installed. Use 'docsets install' to add one.")
		} else {
			fmt.Fprintln(deps.Stdout, "No docsets found. Use 'docsets refresh' to fetch the catalog.")
		}
	}
	return nil
}
