package cli

import (
	"fmt"
	"math"

	"github.com/chazu/winding/pkg/mesh"
	"github.com/chazu/winding/pkg/sample"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// confusion counts classifier answers against a known answer.
type confusion struct {
	inside, outside           int
	falseInside, falseOutside int
}

func (c confusion) errors() int { return c.falseInside + c.falseOutside }

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the classifier against a unit cube.",
		Long: `verify classifies random points in [-1, 1]^3 against a unit cube centered
at the origin and compares the answers with the exact half-space test. It
fails if any point is misclassified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count := a.cfg.GetInt("count")
			if count < 0 {
				return fmt.Errorf("winding: verify: count must not be negative, got %d", count)
			}
			m := mesh.Cube(1)
			box := sdf.Box3{Min: v3.Vec{X: -1, Y: -1, Z: -1}, Max: v3.Vec{X: 1, Y: 1, Z: 1}}
			points := sample.Uniform(box, count, uint64(a.cfg.GetInt("seed")))

			c, err := a.classifier(m)
			if err != nil {
				return err
			}
			inside, err := c.InsideAllContext(cmd.Context(), points)
			if err != nil {
				return fmt.Errorf("winding: verify: %w", err)
			}

			var conf confusion
			for i, p := range points {
				want := math.Abs(p.X) < 0.5 && math.Abs(p.Y) < 0.5 && math.Abs(p.Z) < 0.5
				switch {
				case want && inside[i]:
					conf.inside++
				case !want && !inside[i]:
					conf.outside++
				case inside[i]:
					conf.falseInside++
					a.log.WithField("point", formatPoint(p)).Warn("outside point classified inside")
				default:
					conf.falseOutside++
					a.log.WithField("point", formatPoint(p)).Warn("inside point classified outside")
				}
			}

			fmt.Fprintf(a.out, "points:        %d\n", len(points))
			fmt.Fprintf(a.out, "inside:        %d\n", conf.inside)
			fmt.Fprintf(a.out, "outside:       %d\n", conf.outside)
			fmt.Fprintf(a.out, "false inside:  %d\n", conf.falseInside)
			fmt.Fprintf(a.out, "false outside: %d\n", conf.falseOutside)
			a.log.WithFields(logrus.Fields{
				"points": len(points),
				"errors": conf.errors(),
			}).Info("verified")

			if n := conf.errors(); n > 0 {
				return fmt.Errorf("winding: verify: %d of %d points misclassified", n, len(points))
			}
			return nil
		},
	}
}
