package stl

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/winding/pkg/mesh"
)

const oneFacet = `solid t
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
endloop
endfacet
`

// parseErr asserts that err is a *ParseError on the given line.
func parseErr(t *testing.T, err error, line int) *ParseError {
	t.Helper()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v (%T), want *ParseError", err, err)
	}
	if pe.Line != line {
		t.Errorf("ParseError.Line = %d, want %d (%v)", pe.Line, line, pe)
	}
	return pe
}

func TestLoadSingleFacet(t *testing.T) {
	m, err := Load(strings.NewReader(oneFacet + "endsolid t\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Name != "t" {
		t.Errorf("Name = %q, want %q", m.Name, "t")
	}
	if m.TriangleCount() != 1 {
		t.Fatalf("TriangleCount() = %d, want 1", m.TriangleCount())
	}
	want := mesh.Triangle{
		V:      [3]mesh.Point{{}, {X: 1}, {Y: 1}},
		Normal: mesh.Point{Z: 1},
	}
	if m.Triangles[0] != want {
		t.Errorf("triangle = %+v, want %+v", m.Triangles[0], want)
	}
}

func TestLoadUnnamedAndEmpty(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantName  string
		wantCount int
	}{
		{"unnamed empty", "solid\nendsolid\n", "", 0},
		{"named empty", "solid box\nendsolid box", "box", 0},
		{"unnamed with facet", strings.Replace(oneFacet, "solid t", "solid", 1) + "endsolid", "", 1},
		{"single line", "solid s facet normal 0 0 0 outer loop vertex 0 0 0 vertex 1 0 0 vertex 0 1 0 endloop endfacet endsolid s", "s", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Load(strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if m.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", m.Name, tt.wantName)
			}
			if m.TriangleCount() != tt.wantCount {
				t.Errorf("TriangleCount() = %d, want %d", m.TriangleCount(), tt.wantCount)
			}
		})
	}
}

func TestLoadNormalAfterLoop(t *testing.T) {
	src := `solid t
facet
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
endloop
normal 0 0 1
endfacet
endsolid t`
	m, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := m.Triangles[0].Normal; got != (mesh.Point{Z: 1}) {
		t.Errorf("Normal = %v, want (0,0,1)", got)
	}
}

func TestLoadNumberForms(t *testing.T) {
	src := `solid t
facet normal -0 +0 1e0
outer loop
vertex .5 -1.25 2E-3
vertex 1e+2 -0.0 7
vertex 3 +4.5 -6e-1
endloop
endfacet
endsolid t`
	m, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := [3]mesh.Point{
		{X: 0.5, Y: -1.25, Z: 0.002},
		{X: 100, Y: 0, Z: 7},
		{X: 3, Y: 4.5, Z: -0.6},
	}
	if m.Triangles[0].V != want {
		t.Errorf("vertices = %v, want %v", m.Triangles[0].V, want)
	}
}

func TestMissingEndsolid(t *testing.T) {
	// The fault points at the last consumed token (endfacet, line 8), even
	// with trailing blank lines.
	for _, src := range []string{oneFacet, oneFacet + "\n\n\n", strings.TrimSuffix(oneFacet, "\n")} {
		m, err := Load(strings.NewReader(src))
		if m != nil {
			t.Errorf("Load() returned a partial mesh with %d triangles", m.TriangleCount())
		}
		pe := parseErr(t, err, 8)
		if !strings.Contains(pe.Msg, "endsolid") {
			t.Errorf("message %q does not mention endsolid", pe.Msg)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"empty input", "", 1, `"solid"`},
		{"not a solid", "facet normal 0 0 1", 1, `"facet"`},
		{"bad number", "solid t\nfacet normal 0 0 1\nouter loop\nvertex 0 0 zz\n", 4, `"zz"`},
		{"missing loop", "solid t\nfacet normal 0 0 1\nouter\nvertex 0 0 0\n", 4, `"loop"`},
		{"endfacet before endloop", "solid t\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nvertex 0 1 0\nendfacet\n", 7, `"endloop"`},
		{"fourth vertex", "solid t\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nvertex 0 1 0\nvertex 1 1 0\n", 7, `"endloop"`},
		{"short vector", "solid t\nfacet normal 0 0\nouter loop\n", 3, "number"},
		{"stray token", "solid t\nbanana\n", 2, `"banana"`},
		{"facet without normal or loop", "solid t\nfacet endfacet\n", 2, `"endfacet"`},
		{"missing closing name", "solid t\nendsolid\n", 2, "name"},
		{"keyword as closing name", "solid t\nendsolid facet\n", 2, `"facet"`},
		{"truncated in facet", "solid t\nfacet normal 0 0 1\nouter loop\nvertex 0 0", 4, "number"},
		{"number overflow", "solid t\nfacet normal 1e999 0 1\n", 2, "invalid number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.src))
			pe := parseErr(t, err, tt.line)
			if !strings.Contains(pe.Error(), tt.msg) {
				t.Errorf("error %q does not contain %q", pe.Error(), tt.msg)
			}
		})
	}
}

func TestReaderIsLazy(t *testing.T) {
	// The first facet is handed out before the malformed remainder is read.
	r := NewReader(strings.NewReader(oneFacet + "facet normal oops"))
	if !r.Next() {
		t.Fatalf("first Next() = false, err = %v", r.Err())
	}
	if r.Name() != "t" {
		t.Errorf("Name() = %q", r.Name())
	}
	if got := r.Facet().V[1]; got != (mesh.Point{X: 1}) {
		t.Errorf("Facet().V[1] = %v", got)
	}
	if r.Err() != nil {
		t.Fatalf("Err() = %v before the bad token was reached", r.Err())
	}
	if r.Next() {
		t.Fatal("second Next() = true on malformed facet")
	}
	parseErr(t, r.Err(), 9)
	if r.Next() {
		t.Error("Next() = true after failure")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	src := mesh.Cube(1.5)
	var buf bytes.Buffer
	if err := Write(&buf, src); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Name != "cube" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.TriangleCount() != src.TriangleCount() {
		t.Fatalf("TriangleCount() = %d, want %d", got.TriangleCount(), src.TriangleCount())
	}
	for i := range src.Triangles {
		if got.Triangles[i] != src.Triangles[i] {
			t.Errorf("triangle %d = %+v, want %+v", i, got.Triangles[i], src.Triangles[i])
		}
	}
}

func TestWriteSanitizesName(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, mesh.New("my part", nil)); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "solid my_part\n") {
		t.Errorf("output = %q", buf.String())
	}
	m, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Name != "my_part" {
		t.Errorf("Name = %q", m.Name)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.stl")
	if err := os.WriteFile(path, []byte(oneFacet+"endsolid t\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if m.TriangleCount() != 1 {
		t.Errorf("TriangleCount() = %d", m.TriangleCount())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.stl")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.stl")
	if err := os.WriteFile(bad, []byte(oneFacet), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadFile(bad)
	parseErr(t, err, 8)
}

func TestWriteReplacesInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, mesh.New("caf\xe9 part", nil)); err != nil {
		t.Fatal(err)
	}
	m, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Name != "caf__part" {
		t.Errorf("Name = %q", m.Name)
	}
}
