// Package archives extracts docset archives using github.com/mholt/archives.
package archives

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/fwojciec/docsets"
	"github.com/mholt/archives"
)

// Ensure Extractor implements docsets.Extractor at compile time.
var _ docsets.Extractor = (*Extractor)(nil)

// Extractor unpacks any archive format the archives library can identify.
// Every write goes through an os.Root opened on the destination, so neither
// parent references nor symlinks planted by the archive can escape it.
type Extractor struct {
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger for non-fatal extraction problems.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// Extract unpacks archive into dst, preserving permission bits and
// modification times.
func (e *Extractor) Extract(ctx context.Context, archive, dst string) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()

	format, _, err := archives.Identify(ctx, filepath.Base(archive), f)
	if err != nil {
		return docsets.Errorf(docsets.EINVALID, "unrecognized archive format: %v", err)
	}
	ex, ok := format.(archives.Extractor)
	if !ok {
		return docsets.Errorf(docsets.EINVALID, "%s is not an extractable archive", filepath.Base(archive))
	}

	// Identify consumed the header; zip needs the file itself for random access.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	root, err := os.OpenRoot(dst)
	if err != nil {
		return err
	}
	defer root.Close()

	x := &extraction{root: root, dirTimes: make(map[string]time.Time), logger: e.logger}
	if err := ex.Extract(ctx, f, x.handle); err != nil {
		var appErr *docsets.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return docsets.Errorf(docsets.EINVALID, "%v", err)
	}

	x.applyDirTimes()
	return nil
}

// extraction holds the state of one Extract call. Paths are relative to
// root.
type extraction struct {
	root     *os.Root
	dirTimes map[string]time.Time
	logger   *slog.Logger
}

func (x *extraction) handle(ctx context.Context, f archives.FileInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := rootedPath(f.NameInArchive)

	var err error
	switch {
	case f.IsDir():
		err = x.writeDir(target, f)
	case f.Mode()&fs.ModeSymlink != 0:
		err = x.writeSymlink(target, f.LinkTarget)
	case f.LinkTarget != "":
		err = x.writeHardLink(target, f.LinkTarget)
	case f.Mode().IsRegular():
		err = x.writeFile(target, f)
	default:
		// Devices, sockets and fifos have no place in a docset.
		return nil
	}
	if err != nil {
		return docsets.Errorf(docsets.EINVALID, "(%s) %v", f.NameInArchive, err)
	}
	return nil
}

// rootedPath maps an archive path to a path relative to the root. Parent
// references and leading slashes are dropped.
func rootedPath(name string) string {
	cleaned := path.Clean("/" + name)[1:]
	if cleaned == "" {
		return "."
	}
	return filepath.FromSlash(cleaned)
}

func (x *extraction) writeDir(target string, f archives.FileInfo) error {
	if target == "." {
		return nil
	}
	if err := x.root.MkdirAll(target, f.Mode().Perm()|0o700); err != nil {
		return err
	}
	x.dirTimes[target] = f.ModTime()
	return nil
}

func (x *extraction) mkParent(target string) error {
	if dir := filepath.Dir(target); dir != "." {
		return x.root.MkdirAll(dir, 0o755)
	}
	return nil
}

func (x *extraction) writeFile(target string, f archives.FileInfo) error {
	if err := x.mkParent(target); err != nil {
		return err
	}

	in, err := f.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	perm := f.Mode().Perm()
	out, err := x.root.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0o200)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if err := x.root.Chmod(target, perm); err != nil {
		return err
	}
	return x.root.Chtimes(target, f.ModTime(), f.ModTime())
}

func (x *extraction) writeSymlink(target, link string) error {
	if filepath.IsAbs(link) {
		return fmt.Errorf("symlink to absolute path %q", link)
	}
	if !filepath.IsLocal(filepath.Join(filepath.Dir(target), filepath.FromSlash(link))) {
		return fmt.Errorf("symlink %q escapes destination", link)
	}

	if err := x.mkParent(target); err != nil {
		return err
	}
	return x.root.Symlink(link, target)
}

func (x *extraction) writeHardLink(target, link string) error {
	if err := x.mkParent(target); err != nil {
		return err
	}
	return x.root.Link(rootedPath(link), target)
}

// applyDirTimes restores directory times after their contents were written.
func (x *extraction) applyDirTimes() {
	for dir, t := range x.dirTimes {
		if err := x.root.Chtimes(dir, t, t); err != nil {
			x.logger.Warn("failed to restore directory times", "dir", dir, "err", err)
		}
	}
}
