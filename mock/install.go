package mock

import "github.com/fwojciec/docsets"

var _ docsets.InstallStore = (*InstallStore)(nil)

// InstallStore is a mock implementation of docsets.InstallStore.
type InstallStore struct {
	LookupFn     func(name string) (string, bool)
	ExistsFn     func(path string) bool
	ScratchFn    func() (string, error)
	FindBundleFn func(dir string) (string, error)
	InstallFn    func(bundle, name string) (string, error)
	RemoveFn     func(path string) error
}

func (s *InstallStore) Lookup(name string) (string, bool) {
	return s.LookupFn(name)
}

func (s *InstallStore) Exists(path string) bool {
	return s.ExistsFn(path)
}

func (s *InstallStore) Scratch() (string, error) {
	return s.ScratchFn()
}

func (s *InstallStore) FindBundle(dir string) (string, error) {
	return s.FindBundleFn(dir)
}

func (s *InstallStore) Install(bundle, name string) (string, error) {
	return s.InstallFn(bundle, name)
}

func (s *InstallStore) Remove(path string) error {
	return s.RemoveFn(path)
}
