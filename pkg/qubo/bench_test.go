package qubo

import (
	"context"
	"math/rand"
	"testing"

	"github.com/latticefold/latticefold/pkg/energy"
	"github.com/latticefold/latticefold/pkg/lattice"
)

var BenchmarkSequence = func() string {
	const (
		length = 8
		seed   = 9
	)
	const residues = "CMFILVWYAGTSNQDEHRKP"
	rnd := rand.New(rand.NewSource(seed))
	b := make([]byte, length)
	for i := range b {
		b[i] = residues[rnd.Intn(len(residues))]
	}
	return string(b)
}()

func BenchmarkCompile(b *testing.B) {
	for _, a := range lattice.Arities() {
		c, err := New(WithLattice(a))
		if err != nil {
			b.Fatalf("failed to initialize compiler: %s", err)
		}
		b.Run(c.Scheme().Name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := c.Compile(context.Background(), BenchmarkSequence, energy.MJ); err != nil {
					b.Fatalf("failed to compile: %s", err)
				}
			}
		})
	}
}

func BenchmarkProblem(b *testing.B) {
	c, err := New()
	if err != nil {
		b.Fatalf("failed to initialize compiler: %s", err)
	}
	r, err := c.Compile(context.Background(), BenchmarkSequence, energy.HP)
	if err != nil {
		b.Fatalf("failed to compile: %s", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Problem()
	}
}
