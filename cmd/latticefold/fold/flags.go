package fold

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/latticefold/latticefold/pkg/config"
	"github.com/latticefold/latticefold/pkg/energy"
	"github.com/latticefold/latticefold/pkg/qubo"
)

// runFlags are the compile settings shared by every subcommand. Flags set
// on the command line override the configuration file.
type runFlags struct {
	configPath  string
	sequence    string
	model       string
	lattice     int
	penalty     float64
	strength    float64
	nodeBudget  int
	workers     int
	disjunction string
}

func (f *runFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML file describing the run")
	fs.StringVarP(&f.sequence, "sequence", "s", "", "amino acid sequence, one letter per residue")
	fs.StringVarP(&f.model, "model", "m", string(energy.HP), "interaction model: "+modelNames())
	fs.IntVarP(&f.lattice, "lattice", "l", 4, "lattice arity: 4, 6, 8 or 12")
	fs.Float64Var(&f.penalty, "penalty", 0, "weight of a violated constraint term (0 derives it from the interactions)")
	fs.Float64Var(&f.strength, "strength", 0, "weight of the degree reduction penalty (0 derives it from the objective)")
	fs.IntVar(&f.nodeBudget, "node-budget", 0, "decision diagram node budget per expression (0 for the default)")
	fs.IntVar(&f.workers, "workers", 0, "number of expressions lowered concurrently (0 for one per CPU)")
	fs.StringVar(&f.disjunction, "disjunction", "sum", "constraint family lowering: sum or exact")
}

func modelNames() string {
	var names []string
	for _, m := range energy.Models() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

// config loads the configuration file, if any, and applies the flags the
// user set explicitly.
func (f *runFlags) config(fs *pflag.FlagSet) (*config.Config, error) {
	c := config.Default()
	if f.configPath != "" {
		var err error
		if c, err = config.Load(f.configPath); err != nil {
			return nil, err
		}
	}

	set := func(name string) bool {
		flag := fs.Lookup(name)
		return flag != nil && (flag.Changed || f.configPath == "")
	}
	if set("sequence") {
		c.Sequence = f.sequence
	}
	if set("model") {
		c.Model = f.model
	}
	if set("lattice") {
		c.Lattice = f.lattice
	}
	if set("penalty") {
		c.Penalty = f.penalty
	}
	if set("strength") {
		c.ReductionStrength = f.strength
	}
	if set("node-budget") {
		c.NodeBudget = f.nodeBudget
	}
	if set("workers") {
		c.Workers = f.workers
	}
	if set("disjunction") {
		c.Disjunction = f.disjunction
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// compile runs the compiler described by c.
func compile(ctx context.Context, c *config.Config) (*qubo.Result, error) {
	compiler, err := qubo.New(c.Options(log.StandardLogger())...)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"sequence": c.Sequence,
		"model":    c.Model,
		"lattice":  compiler.Scheme().Name,
	}).Debug("compiling")

	r, err := compiler.Compile(ctx, c.Sequence, c.EnergyModel())
	if err != nil {
		return nil, err
	}
	for _, d := range r.Diagnostics {
		log.WithField("kind", d.Kind).Warn(d.String())
	}
	return r, nil
}
