package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	pscerrors "github.com/matzehuels/pscdeps/pkg/errors"
	"github.com/matzehuels/pscdeps/pkg/query"
	"github.com/matzehuels/pscdeps/pkg/render"
)

// response is a rendered, cacheable body.
type response struct {
	contentType string
	body        []byte
}

var contentTypes = map[render.Format]string{
	render.FormatJSON:     "application/json",
	render.FormatText:     "text/plain; charset=utf-8",
	render.FormatMarkdown: "text/markdown; charset=utf-8",
	render.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	render.FormatSVG:      "image/svg+xml",
}

type healthResponse struct {
	Status   string    `json:"status"`
	Version  string    `json:"version,omitempty"`
	Packages int       `json:"packages"`
	Edges    int       `json:"edges"`
	LoadedAt time.Time `json:"loaded_at"`
	Uptime   string    `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "healthy",
		Version:  s.version,
		Packages: s.snap.Graph.NodeCount(),
		Edges:    s.snap.Graph.EdgeCount(),
		LoadedAt: s.snap.LoadedAt.UTC(),
		Uptime:   time.Since(s.started).Round(time.Second).String(),
	})
}

type packageInfo struct {
	Name         string   `json:"name"`
	URL          string   `json:"url"`
	Version      string   `json:"version,omitempty"`
	Dependencies []string `json:"dependencies"`
}

func (s *Server) handlePackages(w http.ResponseWriter, r *http.Request) {
	out := make([]packageInfo, 0, len(s.snap.Projects))
	for _, p := range s.snap.Projects {
		ds := p.DependencyNames()
		if ds == nil {
			ds = []string{}
		}
		out = append(out, packageInfo{Name: p.Name, URL: p.URL, Version: p.VersionOr(""), Dependencies: ds})
	}
	writeJSON(w, http.StatusOK, out)
}

type dependentsResponse struct {
	Root       string      `json:"root"`
	Dependents []query.Row `json:"dependents"`
}

func (s *Server) handleDependents(w http.ResponseWriter, r *http.Request) {
	opts, format, err := parseDependentsRequest(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	key := cacheKey(opts, format)
	if cached, ok := s.responses.Get(key); ok {
		writeBody(w, http.StatusOK, cached)
		return
	}

	rows, err := s.snap.Query(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	switch format {
	case render.FormatJSON:
		err = json.NewEncoder(&buf).Encode(dependentsResponse{Root: opts.Root, Dependents: rows})
	case render.FormatDOT:
		buf.WriteString(render.ToDOT(s.snap.Graph, opts.Root, rows))
	case render.FormatSVG:
		var svg []byte
		svg, err = render.RenderSVG(r.Context(), render.ToDOT(s.snap.Graph, opts.Root, rows))
		buf.Write(svg)
	default:
		err = render.WriteRows(&buf, format, rows, render.Options{})
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := response{contentType: contentTypes[format], body: buf.Bytes()}
	s.responses.Add(key, resp)
	writeBody(w, http.StatusOK, resp)
}

func parseDependentsRequest(r *http.Request) (query.Options, render.Format, error) {
	q := r.URL.Query()
	opts := query.Options{Root: chi.URLParam(r, "name")}

	if v := q.Get("direct"); v != "" {
		direct, err := strconv.ParseBool(v)
		if err != nil {
			return opts, "", pscerrors.New(pscerrors.ErrCodeInvalidInput, "direct must be a boolean, got %q", v)
		}
		opts.DirectOnly = direct
	}
	opts.Owners = splitList(q.Get("owners"))
	if err := opts.Validate(); err != nil {
		return opts, "", err
	}

	format := render.FormatJSON
	if v := q.Get("format"); v != "" {
		f, err := render.ParseFormat(v, append(slices.Clone(render.RowFormats), render.GraphFormats...))
		if err != nil {
			return opts, "", err
		}
		format = f
	}
	return opts, format, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func cacheKey(opts query.Options, format render.Format) string {
	owners := slices.Clone(opts.Owners)
	slices.Sort(owners)
	owners = slices.Compact(owners)
	return strings.Join([]string{
		opts.Root,
		strconv.FormatBool(opts.DirectOnly),
		strings.Join(owners, ","),
		string(format),
	}, "\x00")
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := pscerrors.HTTPStatus(err)
	code := string(pscerrors.GetCode(err))
	if code == "" {
		code = string(pscerrors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", RequestID(r.Context()))
	}
	writeError(w, r, status, code, pscerrors.UserMessage(err))
}

type errorBody struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	body.Error.RequestID = RequestID(r.Context())
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBody(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", resp.contentType)
	w.WriteHeader(status)
	_, _ = w.Write(resp.body)
}
