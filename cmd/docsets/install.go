package main

import (
	"fmt"

	"github.com/fwojciec/docsets"
)

// Run executes the install command. Interrupting the command cancels the
// download.
func (c *InstallCmd) Run(deps *Dependencies) error {
	if err := ensureCatalog(deps); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsets.ErrorMessage(err))
		return err
	}

	results, err := deps.Controller.Download(c.Name)
	if err != nil {
		if docsets.ErrorCode(err) == docsets.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: docset %q not found. Use 'docsets list' to see available docsets.\n", c.Name)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docsets.ErrorMessage(err))
		}
		return err
	}

	var result docsets.DownloadResult
	select {
	case result = <-results:
	case <-deps.Ctx.Done():
		_ = deps.Controller.CancelDownload()
		result = <-results
	}

	switch result.Outcome {
	case docsets.OutcomeOK:
		fmt.Fprintf(deps.Stdout, "Installed %s to %s\n", result.Name, result.Path)
		return nil
	case docsets.OutcomeCanceled:
		return docsets.Errorf(docsets.ECANCELED, "download of %q canceled", result.Name)
	default:
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsets.ErrorMessage(result.Err))
		return result.Err
	}
}
