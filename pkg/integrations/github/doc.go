// Package github reads the repository side of a Bower package from GitHub.
//
// # Usage
//
//	client := github.NewClient(os.Getenv("GITHUB_TOKEN"))
//
//	tags, err := client.Tags(ctx, "purescript", "purescript-arrays")
//	manifest, err := client.Manifest(ctx, "purescript", "purescript-arrays", tags[0])
//
// [Client.Tags] lists tag names through the REST API, [Client.Manifest]
// downloads a raw bower.json at a ref and [Client.ResolveRepo] follows the
// redirects GitHub serves for renamed or transferred repositories.
//
// # Authentication
//
// A token is optional. Without one the REST API allows 60 requests per
// hour, which is not enough to fill an empty catalog; with one the limit is
// 5000. Raw content and redirect resolution are not rate limited the same
// way and are requested without credentials.
package github
