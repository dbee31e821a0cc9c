package registry

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/matzehuels/pscdeps/pkg/deps"
)

// bowerJSON is the subset of bower.json the catalog keeps. License may be
// a string or a list of strings.
type bowerJSON struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Description  string            `json:"description"`
	License      json.RawMessage   `json:"license"`
	Dependencies map[string]string `json:"dependencies"`
}

// ParseManifest decodes a bower.json document.
func ParseManifest(data []byte) (*deps.Manifest, error) {
	var raw bowerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse bower.json: %w", err)
	}
	m := &deps.Manifest{
		Name:         raw.Name,
		Description:  raw.Description,
		License:      parseLicense(raw.License),
		Dependencies: raw.Dependencies,
	}
	if raw.Version != "" {
		v := raw.Version
		m.Version = &v
	}
	return m, nil
}

func parseLicense(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return strings.Join(list, " OR ")
	}
	return ""
}

// SortVersions returns the tags that are semantic versions, newest first.
// A missing "v" prefix is tolerated; tags are returned as written.
func SortVersions(tags []string) []string {
	var out []string
	for _, t := range tags {
		if semver.IsValid(withV(t)) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b string) int {
		return semver.Compare(withV(b), withV(a))
	})
	return out
}

func withV(tag string) string {
	if strings.HasPrefix(tag, "v") {
		return tag
	}
	return "v" + tag
}

func trimV(tag string) string { return strings.TrimPrefix(tag, "v") }
