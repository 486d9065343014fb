package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fwojciec/docsets"
)

// Ensure Printer implements docsets.Events at compile time.
var _ docsets.Events = (*Printer)(nil)

// Printer writes status messages and download progress for a terminal.
// Errors are not printed since commands return them.
type Printer struct {
	mu         sync.Mutex
	w          io.Writer
	inProgress bool
}

// NewPrinter creates a new Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) CatalogChanged() {}

func (p *Printer) DownloadStateChanged(state docsets.DownloadState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch state.Status {
	case docsets.DownloadInProgress:
		fmt.Fprintf(p.w, "Downloading %s...\n", state.Name)
	case docsets.DownloadFinished:
		p.endLine()
	}
}

func (p *Printer) Progress(received, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.inProgress = true
	if total > 0 {
		fmt.Fprintf(p.w, "\r%s / %s (%d%%)", formatBytes(received), formatBytes(total), received*100/total)
		return
	}
	fmt.Fprintf(p.w, "\r%s", formatBytes(received))
}

func (p *Printer) Status(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.endLine()
	fmt.Fprintln(p.w, msg)
}

func (p *Printer) Error(error) {}

// endLine terminates a progress line.
func (p *Printer) endLine() {
	if p.inProgress {
		fmt.Fprintln(p.w)
		p.inProgress = false
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
