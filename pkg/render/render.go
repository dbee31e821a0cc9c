package render

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pscdeps/pkg/errors"
	"github.com/matzehuels/pscdeps/pkg/query"
	"github.com/matzehuels/pscdeps/pkg/repourl"
)

// Format names an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatDOT      Format = "dot"
	FormatSVG      Format = "svg"
)

var (
	// RowFormats are accepted by [WriteRows].
	RowFormats = []Format{FormatText, FormatMarkdown, FormatJSON}
	// GraphFormats describe the dependents graph rather than a list.
	GraphFormats = []Format{FormatDOT, FormatSVG}
)

// ParseFormat validates s against allowed.
func ParseFormat(s string, allowed []Format) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(allowed, f) {
		return f, nil
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want one of %s)", s, strings.Join(names, ", "))
}

// Options configures row rendering.
type Options struct {
	// Styled colors text output. Only meaningful for terminals.
	Styled bool
}

var (
	styleName  = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	styleMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleURL   = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Underline(true)
	styleInert = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// WriteRows renders rows to w in a row format.
func WriteRows(w io.Writer, format Format, rows []query.Row, opts Options) error {
	switch format {
	case FormatText:
		return writeText(w, rows, opts.Styled)
	case FormatMarkdown:
		return writeMarkdown(w, rows)
	case FormatJSON:
		return writeJSON(w, rows)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "%s is not a row format", format)
	}
}

func writeText(w io.Writer, rows []query.Row, styled bool) error {
	for _, r := range rows {
		name, mark, sep, url := r.Name, transitiveMark(r), " - ", displayURL(r.URL)
		if styled {
			name, sep, url = styleName.Render(name), styleInert.Render(sep), styleURL.Render(url)
			if mark != "" {
				mark = styleMark.Render(mark)
			}
		}
		if _, err := fmt.Fprintln(w, name+mark+sep+url); err != nil {
			return err
		}
	}
	return nil
}

var (
	mdText = strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`)
	mdLink = strings.NewReplacer("(", "%28", ")", "%29", " ", "%20")
)

func writeMarkdown(w io.Writer, rows []query.Row) error {
	for _, r := range rows {
		name, url := mdText.Replace(r.Name), mdLink.Replace(displayURL(r.URL))
		if _, err := fmt.Fprintf(w, "- [ ] [%s](%s)%s\n", name, url, transitiveMark(r)); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, rows []query.Row) error {
	if rows == nil {
		rows = []query.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func transitiveMark(r query.Row) string {
	if r.Transitive {
		return "*"
	}
	return ""
}

func displayURL(u string) string { return repourl.Normalize(u) }
