package docsets

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
)

// feedKeySuffixLen is the length of the suffix stripped from a source ID to
// obtain the feed key, e.g. "com.kapeli" from "com.kapeli.dash".
const feedKeySuffixLen = 5

// Docset represents one documentation set, remote or locally installed.
type Docset struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	SourceID string `json:"sourceId"`
	IconPath string `json:"iconPath"`

	// Path is the directory of the extracted docset. Empty means the docset
	// is not installed.
	Path string `json:"path"`
}

// Validate returns an error if the docset contains invalid fields.
func (d *Docset) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "docset name required")
	}
	if !IsValidName(d.Name) {
		return Errorf(EINVALID, "invalid docset name %q", d.Name)
	}
	return nil
}

// IsValidName reports whether name can be used as a single file name
// component. Names become icon and install directory names, so they must
// not contain separators or refer to a parent directory.
func IsValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.IsLocal(name)
}

// IsInstalled reports whether the docset has a local install directory.
func (d *Docset) IsInstalled() bool {
	return d.Path != ""
}

// FeedKey returns the source ID with its final five characters removed.
func (d *Docset) FeedKey() string {
	if len(d.SourceID) < feedKeySuffixLen {
		return ""
	}
	return d.SourceID[:len(d.SourceID)-feedKeySuffixLen]
}

// DownloadURL returns the archive URL of the latest docset version below
// the given feed base URL.
func (d *Docset) DownloadURL(feedBase string) string {
	return strings.TrimSuffix(feedBase, "/") + "/" + d.FeedKey() + "/" + d.Name + "/latest"
}

// CatalogRecord is a single entry of the remote catalog payload.
type CatalogRecord struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	SourceID string `json:"sourceId"`
	Icon2x   string `json:"icon2x"`
}

// ParseCatalog decodes a catalog payload. Records without a usable name are
// skipped and only the first record for each name is kept.
func ParseCatalog(data []byte) ([]CatalogRecord, error) {
	var raw []CatalogRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Errorf(EINVALID, "failed to parse docset list: %v", err)
	}

	seen := make(map[string]bool, len(raw))
	records := make([]CatalogRecord, 0, len(raw))
	for _, r := range raw {
		if !IsValidName(r.Name) || seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		records = append(records, r)
	}
	return records, nil
}

// CatalogChange describes the outcome of a catalog refresh.
type CatalogChange struct {
	// Count is the number of docsets in the new catalog.
	Count int

	// FromCache is true when the network fetch failed and the cached
	// payload was used instead.
	FromCache bool

	// Changed is false when the payload is identical to the one applied by
	// the previous refresh.
	Changed bool
}

// CatalogSource fetches the raw remote catalog payload.
type CatalogSource interface {
	// FetchCatalog returns the JSON catalog payload.
	FetchCatalog(ctx context.Context) ([]byte, error)
}

// CatalogCache persists the last successfully fetched catalog payload.
type CatalogCache interface {
	// LoadCatalog returns the cached payload.
	// Returns ENOTFOUND if nothing has been cached yet.
	LoadCatalog() ([]byte, error)

	// SaveCatalog replaces the cached payload.
	SaveCatalog(data []byte) error
}

// IconStore persists docset icons.
type IconStore interface {
	// SaveIcon decodes a base64 encoded image and stores it as the icon of
	// the named docset. Returns the path of the written icon file.
	SaveIcon(name, data string) (string, error)
}

// InstallStore manages the install directories of docsets.
type InstallStore interface {
	// Lookup returns the install directory of the named docset if it exists.
	Lookup(name string) (string, bool)

	// Exists reports whether path is an existing directory.
	Exists(path string) bool

	// Scratch creates a uniquely named scratch directory inside the install
	// root. The caller removes it when done.
	Scratch() (string, error)

	// FindBundle searches dir recursively for a docset bundle directory.
	// Returns ENOTFOUND if there is none.
	FindBundle(dir string) (string, error)

	// Install moves the bundle directory into place for the named docset
	// and returns the final install directory.
	Install(bundle, name string) (string, error)

	// Remove recursively deletes an install directory.
	Remove(path string) error
}

// Confirmer asks the user whether a docset may be removed.
type Confirmer func(d Docset) bool
