// Package config loads the YAML description of a compile run.
package config

import (
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/latticefold/latticefold/pkg/energy"
	"github.com/latticefold/latticefold/pkg/lattice"
	"github.com/latticefold/latticefold/pkg/qubo"
)

// Config describes one compile run. Zero values select the compiler
// defaults.
type Config struct {
	Sequence          string  `yaml:"sequence"`
	Model             string  `yaml:"model"`
	Lattice           int     `yaml:"lattice"`
	Penalty           float64 `yaml:"penalty,omitempty"`
	ReductionStrength float64 `yaml:"reductionStrength,omitempty"`
	NodeBudget        int     `yaml:"nodeBudget,omitempty"`
	Workers           int     `yaml:"workers,omitempty"`
	Disjunction       string  `yaml:"disjunction,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Model:       string(energy.HP),
		Lattice:     int(lattice.Square),
		Disjunction: string(qubo.Sum),
	}
}

// Load reads and validates the configuration file at path. Fields absent
// from the file keep their default.
func Load(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return c, nil
}

// Parse decodes and validates a YAML configuration. Unknown fields are
// rejected.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, errors.Wrap(err, "decoding")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every field without compiling anything. The errors
// satisfy qubo.IsConfigurationError.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Sequence) != c.Sequence {
		return &qubo.ConfigurationError{Field: "sequence", Err: errors.New("surrounding whitespace")}
	}
	if _, err := energy.ParseModel(c.Model); err != nil {
		return err
	}
	if _, err := lattice.ForArity(lattice.Arity(c.Lattice)); err != nil {
		return err
	}
	if _, err := qubo.ParseDisjunction(c.Disjunction); err != nil {
		return err
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"penalty", c.Penalty},
		{"reductionStrength", c.ReductionStrength},
		{"nodeBudget", float64(c.NodeBudget)},
		{"workers", float64(c.Workers)},
	} {
		if f.value < 0 {
			return &qubo.ConfigurationError{Field: f.name, Err: errors.Errorf("must not be negative, got %g", f.value)}
		}
	}
	return nil
}

// Options translates the configuration into compiler options.
func (c *Config) Options(logger logrus.FieldLogger) []qubo.Option {
	options := []qubo.Option{
		qubo.WithLattice(lattice.Arity(c.Lattice)),
		qubo.WithDisjunction(qubo.Disjunction(c.Disjunction)),
	}
	if logger != nil {
		options = append(options, qubo.WithLogger(logger))
	}
	if c.Penalty > 0 {
		options = append(options, qubo.WithPenalty(c.Penalty))
	}
	if c.ReductionStrength > 0 {
		options = append(options, qubo.WithReductionStrength(c.ReductionStrength))
	}
	if c.NodeBudget > 0 {
		options = append(options, qubo.WithNodeBudget(c.NodeBudget))
	}
	if c.Workers > 0 {
		options = append(options, qubo.WithWorkers(c.Workers))
	}
	return options
}

// EnergyModel returns the validated energy model.
func (c *Config) EnergyModel() energy.Model {
	return energy.Model(c.Model)
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
