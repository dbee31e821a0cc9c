package deps

import (
	"context"
	"errors"
)

// Failure classes a [Registry] reports for a single package. Both are
// absorbed by the catalog: the package is skipped with a warning. Any other
// error aborts the whole load.
var (
	// ErrNotFound means the package or its repository does not exist.
	ErrNotFound = errors.New("package not found")

	// ErrUnauthorized means the repository exists but refused access.
	ErrUnauthorized = errors.New("access denied")
)

// IsAbsent reports whether err belongs to a failure class that marks a
// package as unfetchable rather than the load as broken.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized)
}

// Registry is the network side of the catalog. Implementations must be safe
// for concurrent use; the catalog calls FetchProject from several goroutines.
type Registry interface {
	// Name identifies the registry in logs.
	Name() string

	// ListProjects returns every package of the ecosystem, in registry order.
	ListProjects(ctx context.Context) ([]ProjectRef, error)

	// Canonicalize returns ref with its URL rewritten to the canonical
	// repository location, following renames and redirects. Errors mean the
	// registry could not be reached; an unresolvable URL is returned as-is.
	Canonicalize(ctx context.Context, ref ProjectRef) (ProjectRef, error)

	// FetchProject fetches the full metadata for one package. Errors wrap
	// ErrNotFound or ErrUnauthorized for the absorbable failure classes.
	FetchProject(ctx context.Context, name string) (*Project, error)
}
