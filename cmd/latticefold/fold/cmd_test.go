package fold

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/latticefold/latticefold/pkg/energy"
	"github.com/latticefold/latticefold/pkg/qubo"
	"github.com/latticefold/latticefold/pkg/sat"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "latticefold", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(NewCmds()...)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseBits(t *testing.T) {
	type tc struct {
		Name  string
		Input string
		Want  []bool
		Error bool
	}

	for _, tt := range []tc{
		{Name: "empty", Input: ""},
		{Name: "plain", Input: "0110", Want: []bool{false, true, true, false}},
		{Name: "separators", Input: "01_1, 0", Want: []bool{false, true, true, false}},
		{Name: "bad digit", Input: "0120", Error: true},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			got, err := parseBits(tt.Input)
			if tt.Error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.Want, got)
		})
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "latticefold")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("sequence: GAAA\nlattice: 6\nmodel: MJ\n"), 0644))

	type tc struct {
		Name    string
		Args    []string
		Lattice int
		Model   string
		Seq     string
		Error   bool
	}

	for _, tt := range []tc{
		{Name: "defaults", Args: []string{"-s", "GAKA"}, Lattice: 4, Model: "HP", Seq: "GAKA"},
		{Name: "file", Args: []string{"-c", path}, Lattice: 6, Model: "MJ", Seq: "GAAA"},
		{Name: "flag wins", Args: []string{"-c", path, "-l", "8", "-m", "HPAB"}, Lattice: 8, Model: "HPAB", Seq: "GAAA"},
		{Name: "invalid flag", Args: []string{"-c", path, "--disjunction", "any"}, Error: true},
		{Name: "missing file", Args: []string{"-c", filepath.Join(dir, "missing.yaml")}, Error: true},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			var f runFlags
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			f.register(fs)
			require.NoError(t, fs.Parse(tt.Args))

			c, err := f.config(fs)
			if tt.Error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.Lattice, c.Lattice)
			assert.Equal(t, tt.Model, c.Model)
			assert.Equal(t, tt.Seq, c.Sequence)
		})
	}
}

func TestCompileCommand(t *testing.T) {
	out, err := execute(t, "compile", "-s", "GAAA", "-o", "yaml", "--ising")
	require.NoError(t, err)

	var d Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &d))
	assert.Equal(t, "square", d.Lattice)
	assert.Equal(t, "GAAA", d.Sequence)
	assert.Equal(t, 2.0, d.Penalty)
	require.Len(t, d.Interactions, 1)
	assert.Equal(t, interactionDocument{I: 0, J: 3, Energy: -1}, d.Interactions[0])
	require.NotNil(t, d.Binary)
	require.NotNil(t, d.Ising)
	assert.Empty(t, d.Constraints)
	assert.Len(t, d.Ancillaries, len(d.Variables)-4)
	for name := range d.Binary.Linear {
		assert.Contains(t, d.Variables, name)
	}

	text, err := execute(t, "compile", "-s", "GAAA")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "# square lattice, sequence GAAA"), text)
	assert.Contains(t, text, "objective: ")
}

func TestFormulaCommand(t *testing.T) {
	out, err := execute(t, "formula", "-s", "GAAA", "-o", "yaml")
	require.NoError(t, err)

	var d Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &d))
	assert.Nil(t, d.Binary)
	var labels []string
	for _, c := range d.Constraints {
		if c.Family != "overlap" {
			continue
		}
		for _, term := range c.Terms {
			labels = append(labels, term.Label)
			assert.NotEmpty(t, term.Formula)
		}
	}
	assert.Equal(t, []string{"overlap(0,2)", "overlap(1,3)"}, labels)
	require.Len(t, d.Interactions, 1)
	assert.NotEmpty(t, d.Interactions[0].Formula)

	text, err := execute(t, "formula", "-s", "GAAA")
	require.NoError(t, err)
	assert.Contains(t, text, "overlap(0,2): ")
	assert.Contains(t, text, "contact(0,3) -1: ")
}

func TestCompileCommandErrors(t *testing.T) {
	for _, args := range [][]string{
		{"compile", "-s", "GAAA", "--mode", "dnf"},
		{"compile", "-s", "GAAA", "-o", "json"},
		{"compile", "-s", "GAAA", "-l", "5"},
		{"compile", "-s", "GAAA", "--penalty", "1"},
		{"compile", "extra"},
		{"decode", "-s", "GAAA", "01x1"},
		{"decode", "-s", "GAAA", "01"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := execute(t, args...)
			assert.Error(t, err)
		})
	}

	_, err := execute(t, "compile", "-s", "GAAA", "--penalty", "1")
	assert.True(t, qubo.IsConfigurationError(err), "%v", err)
}

func TestDecodeAgreesWithProbe(t *testing.T) {
	out, err := execute(t, "probe", "-s", "GAAA", "--count")
	require.NoError(t, err)

	var probed Conformation
	require.NoError(t, yaml.Unmarshal([]byte(out), &probed))
	assert.True(t, probed.Valid)
	assert.Equal(t, -1.0, probed.Energy)
	assert.Equal(t, -1.0, probed.Objective)
	assert.Equal(t, [][2]int{{0, 3}}, probed.Contacts)
	assert.Len(t, probed.Positions, 4)
	require.NotNil(t, probed.Solver)
	assert.Equal(t, 1, probed.Solver.Satisfied)
	assert.True(t, probed.Solver.Optimal)
	assert.Equal(t, "9", probed.Solver.Conformations)

	out, err = execute(t, "decode", "-s", "GAAA", probed.Bits)
	require.NoError(t, err)
	var decoded Conformation
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	probed.Solver = nil
	assert.Equal(t, probed, decoded)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "latticefold version "), out)
}

func TestBestEffort(t *testing.T) {
	partial := &sat.Solution{Satisfied: 2}
	unsatisfiable := sat.NotSatisfiable{{Label: "overlap(0,2)"}}

	type tc struct {
		Name     string
		Solution *sat.Solution
		Err      error
		Want     *sat.Solution
		WantErr  error
	}

	for _, tt := range []tc{
		{Name: "complete", Solution: partial, Want: partial},
		{Name: "stopped after a solution", Solution: partial, Err: sat.Incomplete, Want: partial},
		{Name: "stopped before a solution", Err: sat.Incomplete, WantErr: sat.Incomplete},
		{Name: "unsatisfiable", Err: unsatisfiable, WantErr: unsatisfiable},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			got, err := bestEffort(tt.Solution, tt.Err)
			assert.Equal(t, tt.WantErr, err)
			assert.Equal(t, tt.Want, got)
		})
	}
}

func TestModelFlagListsEveryModel(t *testing.T) {
	var f runFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	usage := fs.Lookup("model").Usage
	for _, m := range energy.Models() {
		assert.Contains(t, usage, string(m))
	}
	assert.Contains(t, usage, "WHPAB")
}
