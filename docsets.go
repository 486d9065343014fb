// Package docsets manages a local collection of offline documentation sets.
// It synchronizes the remote docset catalog, downloads and installs docset
// archives, and builds a searchable index over the entries of every
// installed docset.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, archives/, http/).
package docsets
