package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/docsets"
	"github.com/fwojciec/docsets/mock"
	dsslog "github.com/fwojciec/docsets/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingEntryReader_ReadEntries(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.EntryReader{
		ReadEntriesFn: func(context.Context, string) ([]docsets.Entry, error) {
			return []docsets.Entry{{Name: "os.Open"}, {Name: "io.Reader"}}, nil
		},
	}

	entries, err := dsslog.NewLoggingEntryReader(inner, logger).ReadEntries(context.Background(), "/docsets/Go.docset")

	require.NoError(t, err)
	assert.Len(t, entries, 2)
	output := buf.String()
	assert.Contains(t, output, "read entries")
	assert.Contains(t, output, "path=/docsets/Go.docset")
	assert.Contains(t, output, "count=2")
}
