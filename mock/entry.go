package mock

import (
	"context"

	"github.com/fwojciec/docsets"
)

var _ docsets.EntryReader = (*EntryReader)(nil)

// EntryReader is a mock implementation of docsets.EntryReader.
type EntryReader struct {
	ReadEntriesFn func(ctx context.Context, docsetPath string) ([]docsets.Entry, error)
}

func (r *EntryReader) ReadEntries(ctx context.Context, docsetPath string) ([]docsets.Entry, error) {
	return r.ReadEntriesFn(ctx, docsetPath)
}
