package docsets

import (
	"context"
	"path/filepath"
)

// Entry is one documentation entry enumerated from an installed docset.
type Entry struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Path   string `json:"path"` // relative to Contents/Resources/Documents
	Anchor string `json:"anchor,omitempty"`
}

// IndexItem is one searchable unit derived from an installed docset.
type IndexItem struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Subtext  string `json:"subtext"`
	IconPath string `json:"iconPath,omitempty"`

	// URL opens the entry.
	URL string `json:"url"`
}

// NewIndexItem builds the index item of an entry of an installed docset.
func NewIndexItem(d Docset, e Entry) IndexItem {
	return IndexItem{
		ID:       d.Name + e.Name,
		Text:     e.Name,
		Subtext:  d.Title + " " + e.Type,
		IconPath: d.IconPath,
		URL:      EntryURL(d.Path, e),
	}
}

// EntryURL returns the file URL of an entry inside an install directory.
// Entry paths are stored URL-encoded by docset generators, so they are
// appended verbatim.
func EntryURL(docsetPath string, e Entry) string {
	u := "file://" + filepath.ToSlash(filepath.Join(docsetPath, "Contents", "Resources", "Documents")) + "/" + e.Path
	if e.Anchor != "" {
		u += "#" + e.Anchor
	}
	return u
}

// EntryReader enumerates the entries of an installed docset.
type EntryReader interface {
	ReadEntries(ctx context.Context, docsetPath string) ([]Entry, error)
}

// IndexBuildState reports the index builder.
type IndexBuildState struct {
	Running        bool
	AbortRequested bool

	// Generation is the number of the most recently scheduled build.
	Generation uint64
}
