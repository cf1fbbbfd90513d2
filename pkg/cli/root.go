// Package cli implements the winding command-line tool.
//
// Configuration can come from command-line flags, from environment
// variables of the form WINDING_VAR (with dashes in the flag name written
// as underscores), or from a TOML file named with --config. Flags take
// precedence over the environment, which takes precedence over the file.
package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chazu/winding/pkg/mesh"
	"github.com/chazu/winding/pkg/winding"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// option is a configuration option shared between flags, environment and
// the configuration file. The first flag set creates the flag; the rest
// reuse it.
type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

type app struct {
	cfg *viper.Viper
	log *logrus.Logger
	in  io.Reader
	out io.Writer
}

// NewRoot returns the root command. Commands read from in, write results to
// out and log to errOut.
func NewRoot(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{
		cfg: viper.New(),
		log: logrus.New(),
		in:  in,
		out: out,
	}
	a.log.SetOutput(errOut)

	root := &cobra.Command{
		Use:   "winding",
		Short: "Classify points against closed triangle meshes.",
		Long: `winding decides whether points lie inside a closed triangle mesh read
from an ASCII STL file, using the generalized winding number.

Configuration can be changed with command-line flags, with environment
variables in the format 'WINDING_var' (for example WINDING_MODE=single), or
with a TOML configuration file given by --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	classify := a.classifyCmd()
	sample := a.sampleCmd()
	verify := a.verifyCmd()
	root.AddCommand(classify, sample, verify)

	a.bind([]option{
		{
			name:       "config",
			usage:      "TOML configuration file location",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "mode",
			usage:      "classification strategy: single or batch",
			defaultVal: "batch",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "workers",
			usage:      "number of goroutines used to classify points",
			shorthand:  "w",
			defaultVal: runtime.NumCPU(),
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "chunk-size",
			usage:      "points per unit of work",
			defaultVal: winding.DefaultChunkSize,
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "log-level",
			usage:      "logging level: debug, info, warn or error",
			defaultVal: "warn",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "mesh",
			usage:      "ASCII STL mesh file",
			shorthand:  "m",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{classify.Flags(), sample.Flags()},
		},
		{
			name:       "points",
			usage:      "file of points, one 'x y z' per line; '-' reads standard input",
			shorthand:  "p",
			defaultVal: "-",
			flagsets:   []*pflag.FlagSet{classify.Flags()},
		},
		{
			name:       "shape",
			usage:      "built-in shape to sample instead of a mesh: " + strings.Join(shapeNames(), ", "),
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sample.Flags()},
		},
		{
			name:       "cells",
			usage:      "marching cubes resolution for --shape",
			defaultVal: 64,
			flagsets:   []*pflag.FlagSet{sample.Flags()},
		},
		{
			name:       "write-mesh",
			usage:      "write the sampled mesh to this ASCII STL file",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sample.Flags()},
		},
		{
			name:       "count",
			usage:      "number of points to draw",
			shorthand:  "n",
			defaultVal: 1000,
			flagsets:   []*pflag.FlagSet{sample.Flags(), verify.Flags()},
		},
		{
			name:       "seed",
			usage:      "random seed",
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{sample.Flags(), verify.Flags()},
		},
	})
	return root
}

// bind creates the flags for options and binds them to the configuration.
func (a *app) bind(options []option) {
	a.cfg.SetEnvPrefix("WINDING")
	a.cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.cfg.AutomaticEnv()

	for _, opt := range options {
		for i, set := range opt.flagsets {
			if i != 0 {
				set.AddFlag(opt.flagsets[0].Lookup(opt.name))
				continue
			}
			switch v := opt.defaultVal.(type) {
			case string:
				set.StringP(opt.name, opt.shorthand, v, opt.usage)
			case int:
				set.IntP(opt.name, opt.shorthand, v, opt.usage)
			default:
				panic(fmt.Sprintf("cli: invalid default for option %q", opt.name))
			}
		}
		if err := a.cfg.BindPFlag(opt.name, opt.flagsets[0].Lookup(opt.name)); err != nil {
			panic(err)
		}
	}
}

// setup reads the configuration file, if there is one, and configures
// logging.
func (a *app) setup() error {
	if path := a.cfg.GetString("config"); path != "" {
		var values map[string]interface{}
		if _, err := toml.DecodeFile(path, &values); err != nil {
			return fmt.Errorf("winding: problem reading configuration file: %w", err)
		}
		if err := a.cfg.MergeConfigMap(values); err != nil {
			return fmt.Errorf("winding: problem reading configuration file: %w", err)
		}
	}

	level, err := logrus.ParseLevel(a.cfg.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("winding: %w", err)
	}
	a.log.SetLevel(level)
	return nil
}

// classifier builds a classifier for m from the configuration.
func (a *app) classifier(m *mesh.Mesh) (*winding.Classifier, error) {
	mode, err := winding.ParseMode(a.cfg.GetString("mode"))
	if err != nil {
		return nil, fmt.Errorf("winding: %w", err)
	}
	c := winding.NewClassifier(m, mode)
	c.Workers = a.cfg.GetInt("workers")
	c.ChunkSize = a.cfg.GetInt("chunk-size")
	if c.ChunkSize < 0 {
		return nil, fmt.Errorf("winding: chunk-size must not be negative, got %d", c.ChunkSize)
	}
	a.log.WithFields(logrus.Fields{
		"mesh":      m.Name,
		"triangles": m.TriangleCount(),
		"mode":      mode,
		"workers":   c.Workers,
	}).Debug("classifier ready")
	return c, nil
}

// Execute runs the root command under ctx with args and returns the process
// exit code. A failing command is logged to errOut.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRoot(in, out, errOut)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		log := logrus.New()
		log.SetOutput(errOut)
		log.WithError(err).Error("command failed")
		return 1
	}
	return 0
}
