// Package render writes dependents query results.
//
// # Row Formats
//
// [WriteRows] renders a list of [query.Row] in one of the row formats:
//
//   - [FormatText]: "name - url" lines, a trailing "*" on the name marks a
//     transitive dependent; optionally styled with lipgloss
//   - [FormatMarkdown]: a task list of links, ready to paste into an issue
//   - [FormatJSON]: the rows as a JSON array
//
// # Graph Formats
//
// [ToDOT] draws the root and the surviving rows as a Graphviz digraph with
// transitive dependents dashed. [RenderSVG] lays it out in-process with
// [github.com/goccy/go-graphviz]; no Graphviz installation is needed.
//
//	dot := render.ToDOT(g, "purescript-prelude", rows)
//	svg, err := render.RenderSVG(ctx, dot)
package render
