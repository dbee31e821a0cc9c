package deps

import (
	"maps"
	"slices"
)

// ProjectRef is one entry of the registry index: a package name and the
// repository URL the registry reports for it.
type ProjectRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Manifest is the metadata of a package's latest release.
//
// Dependencies distinguishes an absent map (nil) from an empty one so that
// both survive a cache round-trip unchanged. Readers treat nil as empty.
type Manifest struct {
	Name         string            `json:"name"`
	Version      *string           `json:"version,omitempty"`
	Description  string            `json:"description,omitempty"`
	License      string            `json:"license,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

// Project holds everything known about a package: its index entry, the
// release tags found in its repository and the manifest of the latest one.
type Project struct {
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Versions []string `json:"versions,omitempty"`
	Latest   Manifest `json:"latest"`
}

// Ref returns the index entry for p.
func (p *Project) Ref() ProjectRef {
	return ProjectRef{Name: p.Name, URL: p.URL}
}

// DependencyNames returns the declared dependency names of the latest
// release, sorted. A project without a dependency map has none.
func (p *Project) DependencyNames() []string {
	if p == nil || len(p.Latest.Dependencies) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(p.Latest.Dependencies))
}

// VersionOr returns the latest release version, or fallback when the
// manifest does not carry one.
func (p *Project) VersionOr(fallback string) string {
	if p == nil || p.Latest.Version == nil || *p.Latest.Version == "" {
		return fallback
	}
	return *p.Latest.Version
}

// Index returns projects keyed by name. When names repeat, the first
// project wins.
func Index(projects []*Project) map[string]*Project {
	m := make(map[string]*Project, len(projects))
	for _, p := range projects {
		if p == nil {
			continue
		}
		if _, ok := m[p.Name]; !ok {
			m[p.Name] = p
		}
	}
	return m
}
