package winding

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/chazu/winding/pkg/mesh"
)

// Mode selects how a Classifier evaluates a set of points.
type Mode int

const (
	// ModeSingle evaluates each point independently. It is the reference form.
	ModeSingle Mode = iota
	// ModeBatch evaluates one triangle against all points at a time.
	ModeBatch
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeBatch:
		return "batch"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "single" or "batch" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return ModeSingle, nil
	case "batch", "":
		return ModeBatch, nil
	default:
		return 0, fmt.Errorf("unknown classification mode %q (want single or batch)", s)
	}
}

// DefaultChunkSize is the number of points a batch worker takes at a time.
const DefaultChunkSize = 4096

// Classifier decides point membership for one mesh. Both modes share the
// same accumulation and threshold and return identical results. A
// Classifier holds no mutable state and is safe for concurrent use.
type Classifier struct {
	Mesh *mesh.Mesh
	Mode Mode

	// Workers bounds the goroutines used by InsideAll. Values below 2 run
	// on the calling goroutine.
	Workers int

	// ChunkSize is the number of points per unit of work; zero means
	// DefaultChunkSize.
	ChunkSize int
}

// NewClassifier returns a synchronous classifier for m.
func NewClassifier(m *mesh.Mesh, mode Mode) *Classifier {
	return &Classifier{Mesh: m, Mode: mode}
}

// Inside reports whether p lies inside the mesh.
func (c *Classifier) Inside(p mesh.Point) bool {
	return c.Sum(p).Inside()
}

// Sum returns the accumulated winding angle at p. A single point is always
// evaluated directly; batching one point gives the same Sum at a higher cost.
func (c *Classifier) Sum(p mesh.Point) Sum {
	return Accumulate(c.Mesh, p)
}

// Sums returns the accumulated winding angle at each point, index-aligned
// with points.
func (c *Classifier) Sums(points []mesh.Point) []Sum {
	out, _ := c.SumsContext(context.Background(), points)
	return out
}

// SumsContext is Sums with cancellation between chunks of work. On
// cancellation it returns the context's error and no results.
func (c *Classifier) SumsContext(ctx context.Context, points []mesh.Point) ([]Sum, error) {
	out := make([]Sum, len(points))
	chunk := c.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}

	run := func(lo, hi int) {
		if c.Mode == ModeBatch {
			accumulateBatch(c.Mesh, points[lo:hi], out[lo:hi])
			return
		}
		for i := lo; i < hi; i++ {
			out[i] = Accumulate(c.Mesh, points[i])
		}
	}

	if c.Workers < 2 {
		for lo := 0; lo < len(points); lo += chunk {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			run(lo, min(lo+chunk, len(points)))
		}
		return out, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < c.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for lo := range jobs {
				run(lo, min(lo+chunk, len(points)))
			}
		}()
	}

	var err error
feed:
	for lo := 0; lo < len(points); lo += chunk {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case jobs <- lo:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return out, nil
}

// InsideAll classifies every point, index-aligned with points.
func (c *Classifier) InsideAll(points []mesh.Point) []bool {
	out, _ := c.InsideAllContext(context.Background(), points)
	return out
}

// InsideAllContext is InsideAll with cancellation between chunks of work.
func (c *Classifier) InsideAllContext(ctx context.Context, points []mesh.Point) ([]bool, error) {
	sums, err := c.SumsContext(ctx, points)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(sums))
	for i, s := range sums {
		out[i] = s.Inside()
	}
	return out, nil
}

// InsideAll classifies every point against m with the batch strategy.
func InsideAll(m *mesh.Mesh, points []mesh.Point) []bool {
	return NewClassifier(m, ModeBatch).InsideAll(points)
}
