package cli

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/chazu/winding/pkg/stl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify",
		Short: "Classify points as inside or outside a mesh.",
		Long: `classify reads points, one 'x y z' per line, and prints each point
followed by "inside" or "outside". Points exactly on the surface may be
reported either way.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.GetString("mesh")
			if path == "" {
				return errors.New("winding: classify: --mesh is required")
			}
			m, err := stl.LoadFile(path)
			if err != nil {
				return err
			}

			r, err := openPoints(a.cfg.GetString("points"), a.in)
			if err != nil {
				return err
			}
			points, err := readPoints(r)
			r.Close()
			if err != nil {
				return err
			}

			c, err := a.classifier(m)
			if err != nil {
				return err
			}
			inside, err := c.InsideAllContext(cmd.Context(), points)
			if err != nil {
				return fmt.Errorf("winding: classify: %w", err)
			}

			n := 0
			w := bufio.NewWriter(a.out)
			for i, p := range points {
				state := "outside"
				if inside[i] {
					state = "inside"
					n++
				}
				fmt.Fprintf(w, "%s %s\n", formatPoint(p), state)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"mesh":   m.Name,
				"points": len(points),
				"inside": n,
			}).Info("classified")
			return nil
		},
	}
}
