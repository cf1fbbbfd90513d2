package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/winding/pkg/mesh"
)

// readPoints reads one "x y z" point per line. Blank lines and lines
// starting with '#' are skipped.
func readPoints(r io.Reader) ([]mesh.Point, error) {
	var points []mesh.Point
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fmt.Errorf("points: line %d: want 3 coordinates, got %d", line, len(fields))
		}
		var xyz [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("points: line %d: invalid coordinate %q", line, f)
			}
			xyz[i] = v
		}
		points = append(points, mesh.Point{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("points: %w", err)
	}
	return points, nil
}

// openPoints opens the named points file, or returns stdin for "-".
func openPoints(name string, stdin io.Reader) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("points: %w", err)
	}
	return f, nil
}

func formatPoint(p mesh.Point) string {
	return strconv.FormatFloat(p.X, 'g', -1, 64) + " " +
		strconv.FormatFloat(p.Y, 'g', -1, 64) + " " +
		strconv.FormatFloat(p.Z, 'g', -1, 64)
}

func writePoints(w io.Writer, points []mesh.Point) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		fmt.Fprintln(bw, formatPoint(p))
	}
	return bw.Flush()
}
