package main

import (
	"fmt"

	"github.com/fwojciec/docsets"
)

// Run executes the remove command.
func (c *RemoveCmd) Run(deps *Dependencies) error {
	if err := ensureCatalog(deps); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsets.ErrorMessage(err))
		return err
	}

	declined := false
	err := deps.Controller.Remove(c.Name, func(docsets.Docset) bool {
		declined = !c.Force
		return c.Force
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsets.ErrorMessage(err))
		return err
	}
	if declined {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm removal\n")
		return docsets.Errorf(docsets.EINVALID, "use --force to confirm removal")
	}

	fmt.Fprintf(deps.Stdout, "Removed docset %q\n", c.Name)
	return nil
}
