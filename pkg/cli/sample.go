package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/chazu/winding/pkg/mesh"
	"github.com/chazu/winding/pkg/sample"
	"github.com/chazu/winding/pkg/shape"
	"github.com/chazu/winding/pkg/stl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// shapes are the built-in solids available to the sample command.
var shapes = map[string]func() (shape.Solid, error){
	"sphere": func() (shape.Solid, error) { return shape.Sphere(1) },
	"box":    func() (shape.Solid, error) { return shape.Box(2, 2, 2) },
	"cylinder": func() (shape.Solid, error) {
		return shape.Cylinder(2, 1)
	},
	// A block with a through hole; its interior is not convex.
	"bracket": func() (shape.Solid, error) {
		block, err := shape.Box(3, 2, 1)
		if err != nil {
			return shape.Solid{}, err
		}
		hole, err := shape.Cylinder(2, 0.5)
		if err != nil {
			return shape.Solid{}, err
		}
		return shape.Difference(block, hole), nil
	},
}

func shapeNames() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *app) sampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print random points that lie inside a mesh.",
		Long: `sample draws points uniformly from the bounding box of a mesh, or of a
built-in shape, and prints those classified inside, one 'x y z' per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.sampleMesh()
			if err != nil {
				return err
			}
			if path := a.cfg.GetString("write-mesh"); path != "" {
				if err := writeMesh(path, m); err != nil {
					return err
				}
			}

			count := a.cfg.GetInt("count")
			if count < 0 {
				return fmt.Errorf("winding: sample: count must not be negative, got %d", count)
			}
			points := sample.Uniform(m.Bounds(), count, uint64(a.cfg.GetInt("seed")))

			c, err := a.classifier(m)
			if err != nil {
				return err
			}
			inside, err := c.InsideAllContext(cmd.Context(), points)
			if err != nil {
				return fmt.Errorf("winding: sample: %w", err)
			}
			kept := sample.Filter(points, inside)
			a.log.WithFields(logrus.Fields{
				"mesh":   m.Name,
				"points": len(points),
				"inside": len(kept),
			}).Info("sampled")
			return writePoints(a.out, kept)
		},
	}
}

// sampleMesh loads --mesh or tessellates --shape.
func (a *app) sampleMesh() (*mesh.Mesh, error) {
	path, name := a.cfg.GetString("mesh"), a.cfg.GetString("shape")
	switch {
	case path != "" && name != "":
		return nil, errors.New("winding: sample: --mesh and --shape are mutually exclusive")
	case path != "":
		return stl.LoadFile(path)
	case name != "":
		build, ok := shapes[name]
		if !ok {
			return nil, fmt.Errorf("winding: sample: unknown shape %q (want one of %v)", name, shapeNames())
		}
		s, err := build()
		if err != nil {
			return nil, err
		}
		m := shape.ToMesh(s, name, a.cfg.GetInt("cells"))
		a.log.WithFields(logrus.Fields{
			"shape":     name,
			"triangles": m.TriangleCount(),
		}).Debug("tessellated")
		return m, nil
	default:
		return nil, errors.New("winding: sample: one of --mesh or --shape is required")
	}
}

func writeMesh(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("winding: %w", err)
	}
	if err := stl.Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
