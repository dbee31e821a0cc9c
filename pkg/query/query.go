// Package query answers "who depends on X" over a loaded project set.
//
// [Run] drives the reverse-dependency engine of [dag.Graph] and turns its
// result into display rows, applying the owner allow-list and the
// direct-only switch on the way.
package query

import (
	"slices"

	"github.com/matzehuels/pscdeps/pkg/dag"
	"github.com/matzehuels/pscdeps/pkg/deps"
	"github.com/matzehuels/pscdeps/pkg/errors"
	"github.com/matzehuels/pscdeps/pkg/repourl"
)

// Options selects and filters a dependents query.
type Options struct {
	// Root is the package whose dependents are listed. Required.
	Root string

	// Owners restricts rows to repositories owned by one of these users or
	// organizations. Empty means no restriction.
	Owners []string

	// DirectOnly drops transitive dependents.
	DirectOnly bool
}

// Validate checks opts before any graph work is done.
func (o Options) Validate() error {
	if o.Root == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a package name to look up is required")
	}
	if err := errors.ValidatePackageName(o.Root); err != nil {
		return err
	}
	return errors.ValidateOwners(o.Owners)
}

// Row is one dependent as presented to the user.
type Row struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Version    string `json:"version,omitempty"`
	Transitive bool   `json:"transitive"`
}

// Run lists the dependents of opts.Root in dependency order and filters
// them. g must have been built from projects. A root that is unknown or
// has no dependents yields an empty result, not an error.
func Run(projects []*deps.Project, g *dag.Graph, opts Options) ([]Row, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	byName := deps.Index(projects)
	rows := make([]Row, 0)
	for _, d := range g.Dependents(opts.Root) {
		p := byName[d.Name]
		if p == nil {
			continue
		}
		row := Row{
			Name:       d.Name,
			URL:        p.URL,
			Version:    p.VersionOr(""),
			Transitive: d.Transitive,
		}
		if !Keep(row, opts) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Keep reports whether row survives the owner and direct-only filters.
func Keep(row Row, opts Options) bool {
	if opts.DirectOnly && row.Transitive {
		return false
	}
	if len(opts.Owners) == 0 {
		return true
	}
	u := repourl.Normalize(row.URL)
	if !repourl.IsCanonical(u) {
		return false
	}
	return slices.Contains(opts.Owners, repourl.Owner(u))
}
