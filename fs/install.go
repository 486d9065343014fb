package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docsets"
)

// BundleExt is the directory suffix of a docset bundle.
const BundleExt = ".docset"

// Ensure InstallStore implements docsets.InstallStore at compile time.
var _ docsets.InstallStore = (*InstallStore)(nil)

// errFound stops the bundle walk at the first match.
var errFound = errors.New("found")

// InstallStore keeps installed docsets as <dir>/<name>.docset directories.
type InstallStore struct {
	dir string
}

// NewInstallStore creates a new InstallStore rooted at dir.
func NewInstallStore(dir string) *InstallStore {
	return &InstallStore{dir: dir}
}

// Path returns the install directory of the named docset.
func (s *InstallStore) Path(name string) string {
	return filepath.Join(s.dir, name+BundleExt)
}

func (s *InstallStore) Lookup(name string) (string, bool) {
	if !docsets.IsValidName(name) {
		return "", false
	}
	path := s.Path(name)
	if !s.Exists(path) {
		return "", false
	}
	return path, true
}

func (s *InstallStore) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (s *InstallStore) Scratch() (string, error) {
	dir, err := os.MkdirTemp(s.dir, "extract")
	if err != nil {
		return "", fmt.Errorf("failed creating temporary directory: %w", err)
	}
	return dir, nil
}

// FindBundle returns the first directory below dir whose name ends in
// .docset, in lexical walk order.
func (s *InstallStore) FindBundle(dir string) (string, error) {
	var bundle string
	err := filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasSuffix(d.Name(), BundleExt) {
			bundle = path
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", err
	}
	if bundle == "" {
		return "", docsets.Errorf(docsets.ENOTFOUND, "failed finding extracted docset in %s", dir)
	}
	return bundle, nil
}

// Install renames bundle to the install directory of name. An existing
// install is moved aside first and restored when the rename fails, so the
// install directory is never left missing.
func (s *InstallStore) Install(bundle, name string) (string, error) {
	if !docsets.IsValidName(name) {
		return "", docsets.Errorf(docsets.EINVALID, "invalid docset name %q", name)
	}
	dst := s.Path(name)

	var tmp, aside string
	if _, err := os.Lstat(dst); err == nil {
		tmp, err = os.MkdirTemp(s.dir, "replaced")
		if err != nil {
			return "", fmt.Errorf("failed renaming dir '%s' to '%s': %w", bundle, dst, err)
		}
		aside = filepath.Join(tmp, name+BundleExt)
		if err := os.Rename(dst, aside); err != nil {
			os.Remove(tmp)
			return "", fmt.Errorf("failed renaming dir '%s' to '%s': %w", bundle, dst, err)
		}
	}

	if err := os.Rename(bundle, dst); err != nil {
		if aside != "" {
			if restoreErr := os.Rename(aside, dst); restoreErr != nil {
				// Keep the previous install in tmp for manual recovery.
				err = errors.Join(err, fmt.Errorf("failed restoring previous install from '%s': %w", aside, restoreErr))
			} else {
				os.Remove(tmp)
			}
		}
		return "", fmt.Errorf("failed renaming dir '%s' to '%s': %w", bundle, dst, err)
	}

	if tmp != "" {
		// Installed and the watcher skip directories without the bundle
		// suffix, so a leftover is never mistaken for an install.
		_ = os.RemoveAll(tmp)
	}
	return dst, nil
}

func (s *InstallStore) Remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return err
	}
	// RemoveAll reports success on some platforms while another process
	// keeps the directory open.
	if s.Exists(path) {
		return fmt.Errorf("directory %q still present", path)
	}
	return nil
}

// Installed returns the names of all docsets with an install directory.
func (s *InstallStore) Installed() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && strings.HasSuffix(e.Name(), BundleExt) {
			names = append(names, strings.TrimSuffix(e.Name(), BundleExt))
		}
	}
	return names, nil
}
