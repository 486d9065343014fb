package main

import (
	"github.com/fwojciec/docsets"
)

// ensureCatalog loads the cached catalog and fetches it when nothing is
// cached yet.
func ensureCatalog(deps *Dependencies) error {
	_, err := deps.Controller.LoadCached(deps.Ctx)
	if docsets.ErrorCode(err) == docsets.ENOTFOUND {
		_, err = deps.Controller.Refresh(deps.Ctx)
	}
	return err
}
