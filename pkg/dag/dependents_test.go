package dag

import (
	"slices"
	"testing"
)

func TestDependents(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		edges []Edge
		root  string
		want  []Dependent
	}{
		{
			name:  "chain",
			nodes: []string{"a", "b", "c"},
			edges: []Edge{{"a", "b"}, {"b", "c"}},
			root:  "a",
			want:  []Dependent{{"b", false}, {"c", true}},
		},
		{
			name:  "diamond",
			nodes: []string{"core", "left", "right", "app"},
			edges: []Edge{{"core", "left"}, {"core", "right"}, {"left", "app"}, {"right", "app"}},
			root:  "core",
			want:  []Dependent{{"left", false}, {"right", false}, {"app", true}},
		},
		{
			name:  "direct and transitive path",
			nodes: []string{"prelude", "arrays", "lists"},
			edges: []Edge{{"prelude", "arrays"}, {"arrays", "lists"}, {"prelude", "lists"}},
			root:  "prelude",
			want:  []Dependent{{"arrays", false}, {"lists", false}},
		},
		{
			name:  "outside edges ignored",
			nodes: []string{"a", "b", "x"},
			edges: []Edge{{"a", "b"}, {"x", "b"}},
			root:  "a",
			want:  []Dependent{{"b", false}},
		},
		{
			name:  "leaf root",
			nodes: []string{"a", "b"},
			edges: []Edge{{"a", "b"}},
			root:  "b",
			want:  []Dependent{},
		},
		{
			name:  "unknown root",
			nodes: []string{"a", "b"},
			edges: []Edge{{"a", "b"}},
			root:  "missing",
			want:  []Dependent{},
		},
		{
			name:  "cycle through root",
			nodes: []string{"a", "b", "c"},
			edges: []Edge{{"a", "b"}, {"b", "c"}, {"c", "a"}},
			root:  "a",
			want:  []Dependent{{"b", false}, {"c", true}},
		},
		{
			name:  "dependent below a cycle follows it",
			nodes: []string{"a", "r", "x", "y"},
			edges: []Edge{{"r", "y"}, {"y", "x"}, {"x", "y"}, {"y", "a"}},
			root:  "r",
			want:  []Dependent{{"x", true}, {"y", false}, {"a", true}},
		},
		{
			name:  "self-loop and duplicate edges",
			nodes: []string{"a", "b"},
			edges: []Edge{{"a", "b"}, {"a", "b"}, {"b", "b"}, {"a", "a"}},
			root:  "a",
			want:  []Dependent{{"b", false}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.nodes, tt.edges...)
			got := g.Dependents(tt.root)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Dependents(%q) = %v, want %v", tt.root, got, tt.want)
			}
		})
	}
}

func TestDependentsTopologicalValidity(t *testing.T) {
	g := build(t, []string{"p", "a", "b", "c", "d", "e"},
		Edge{"p", "a"}, Edge{"p", "e"}, Edge{"a", "b"}, Edge{"e", "b"},
		Edge{"b", "c"}, Edge{"a", "d"}, Edge{"c", "d"},
	)

	result := g.Dependents("p")
	pos := make(map[string]int, len(result))
	for i, d := range result {
		if _, dup := pos[d.Name]; dup {
			t.Fatalf("%s listed twice", d.Name)
		}
		pos[d.Name] = i
	}
	if len(result) != 5 {
		t.Fatalf("got %d rows, want 5", len(result))
	}
	for _, e := range g.Edges() {
		if e.From == "p" {
			continue
		}
		if pos[e.From] >= pos[e.To] {
			t.Errorf("%s must precede %s in %v", e.From, e.To, result)
		}
	}
}

func TestDependentsDeterministic(t *testing.T) {
	nodes := []string{"root", "m", "k", "z", "a", "q"}
	edges := []Edge{{"root", "m"}, {"root", "k"}, {"root", "z"}, {"k", "a"}, {"z", "q"}, {"m", "q"}}

	first := build(t, nodes, edges...).Dependents("root")

	reversed := slices.Clone(edges)
	slices.Reverse(reversed)
	for i := range 10 {
		if got := build(t, nodes, reversed...).Dependents("root"); !slices.Equal(got, first) {
			t.Fatalf("run %d: Dependents() = %v, want %v", i, got, first)
		}
	}
}

func TestDependentsNeverIncludesRoot(t *testing.T) {
	// b sorts before the root, and the cycle makes the root reachable.
	g := build(t, []string{"b", "r"}, Edge{"r", "b"}, Edge{"b", "r"})
	for _, d := range g.Dependents("r") {
		if d.Name == "r" {
			t.Fatalf("root listed in %v", g.Dependents("r"))
		}
	}
}

func TestClosure(t *testing.T) {
	g := build(t, []string{"a", "b", "c", "d"},
		Edge{"a", "b"}, Edge{"a", "c"}, Edge{"c", "d"}, Edge{"d", "a"},
	)
	got := g.Closure("a")
	slices.Sort(got)
	if want := []string{"a", "b", "c", "d"}; !slices.Equal(got, want) {
		t.Errorf("Closure(a) = %v, want %v", got, want)
	}
	if got := g.Closure("b"); len(got) != 0 {
		t.Errorf("Closure(b) = %v, want empty", got)
	}
}

func TestTopoSort(t *testing.T) {
	tests := []struct {
		name  string
		edges []Edge
		want  []string
	}{
		{"empty", nil, []string{}},
		{"lexicographic ties", []Edge{{"r", "c"}, {"r", "a"}, {"r", "b"}}, []string{"r", "a", "b", "c"}},
		{"self-loop only", []Edge{{"a", "a"}}, []string{"a"}},
		{"cycle broken at smallest", []Edge{{"b", "a"}, {"a", "b"}}, []string{"a", "b"}},
		{"cycle behind source", []Edge{{"s", "y"}, {"y", "x"}, {"x", "y"}}, []string{"s", "x", "y"}},
		{"node below cycle waits for it", []Edge{{"r", "y"}, {"y", "x"}, {"x", "y"}, {"y", "a"}}, []string{"r", "x", "y", "a"}},
		{"cycle waits for upstream cycle", []Edge{{"a", "b"}, {"b", "a"}, {"c", "a"}, {"c", "d"}, {"d", "c"}}, []string{"c", "d", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TopoSort(tt.edges); !slices.Equal(got, tt.want) {
				t.Errorf("TopoSort() = %v, want %v", got, tt.want)
			}
		})
	}
}
