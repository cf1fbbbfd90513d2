package stl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/winding/pkg/mesh"
)

// LoadFile reads a mesh from the named file.
func LoadFile(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stl: %w", err)
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("stl: %s: %w", path, err)
	}
	return m, nil
}

// Write emits m in the ASCII grammar read by Reader. Coordinates are
// written with the shortest representation that reads back exactly.
func Write(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	// The name is a single token in the grammar.
	name := strings.Join(strings.Fields(strings.ToValidUTF8(m.Name, "_")), "_")
	if name == "" || isKeyword(name) {
		name = "mesh"
	}

	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range m.Triangles {
		fmt.Fprintf(bw, "  facet normal %s\n", vec(t.Normal))
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range t.V {
			fmt.Fprintf(bw, "      vertex %s\n", vec(v))
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("stl: write: %w", err)
	}
	return nil
}

func vec(p mesh.Point) string {
	return num(p.X) + " " + num(p.Y) + " " + num(p.Z)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
