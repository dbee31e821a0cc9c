// Package bower provides a client for the Bower package registry.
//
// The registry is a flat name → repository URL directory. [Client.Search]
// lists every package whose name matches a keyword and [Client.Lookup]
// returns the repository URL registered for a single package. Manifests and
// versions live in the repositories themselves; see the github package.
package bower
