package compare

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadCollection(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.pdf", "b.PNG", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	accept := func(name string) bool { return !strings.HasSuffix(name, ".txt") }
	c, err := LoadCollection(dir, accept)
	if err != nil {
		t.Fatalf("LoadCollection() error = %v", err)
	}
	if c.Single {
		t.Errorf("directory should not be a single-file collection")
	}
	if got := c.Names(); !reflect.DeepEqual(got, []string{"a.pdf", "b.PNG"}) {
		t.Errorf("Names() = %v", got)
	}
	if c.Docs["a.pdf"] != filepath.Join(dir, "a.pdf") {
		t.Errorf("Docs[a.pdf] = %q", c.Docs["a.pdf"])
	}

	single, err := LoadCollection(filepath.Join(dir, "a.pdf"), accept)
	if err != nil {
		t.Fatalf("LoadCollection(file) error = %v", err)
	}
	if !single.Single || !reflect.DeepEqual(single.Names(), []string{"a.pdf"}) {
		t.Errorf("unexpected single collection: %+v", single)
	}

	if _, err := LoadCollection(filepath.Join(dir, "missing"), accept); err == nil {
		t.Errorf("expected error for missing input")
	}
}

func TestMatchCollections(t *testing.T) {
	a := &Collection{Docs: map[string]string{"x.pdf": "A/x.pdf", "y.pdf": "A/y.pdf", "Z.pdf": "A/Z.pdf"}}
	b := &Collection{Docs: map[string]string{"y.pdf": "B/y.pdf", "x.pdf": "B/x.pdf", "z.pdf": "B/z.pdf"}}

	m := MatchCollections(a, b)
	want := []DocumentPair{
		{Name: "x.pdf", PathA: "A/x.pdf", PathB: "B/x.pdf"},
		{Name: "y.pdf", PathA: "A/y.pdf", PathB: "B/y.pdf"},
	}
	if !reflect.DeepEqual(m.Pairs, want) {
		t.Errorf("Pairs = %v; expected %v", m.Pairs, want)
	}
	if !reflect.DeepEqual(m.OnlyInA, []string{"Z.pdf"}) || !reflect.DeepEqual(m.OnlyInB, []string{"z.pdf"}) {
		t.Errorf("OnlyInA = %v, OnlyInB = %v", m.OnlyInA, m.OnlyInB)
	}
}

func TestMatchSingleFiles(t *testing.T) {
	tests := []struct {
		name     string
		fileA    string
		fileB    string
		expected string
	}{
		{"同じ名前", "report.pdf", "report.pdf", "report.pdf"},
		{"異なる名前", "v1.pdf", "v2.pdf", "v1.pdf vs v2.pdf"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := &Collection{Single: true, Docs: map[string]string{test.fileA: "A/" + test.fileA}}
			b := &Collection{Single: true, Docs: map[string]string{test.fileB: "B/" + test.fileB}}
			m := MatchCollections(a, b)
			if len(m.Pairs) != 1 || m.Pairs[0].Name != test.expected {
				t.Fatalf("Pairs = %v; expected one pair named %q", m.Pairs, test.expected)
			}
			if m.Pairs[0].PathA != "A/"+test.fileA || m.Pairs[0].PathB != "B/"+test.fileB {
				t.Errorf("unexpected paths: %+v", m.Pairs[0])
			}
		})
	}
}
