// Package energy provides the pairwise contact energies of the supported
// residue interaction models.
package energy

import (
	"fmt"
	"sort"
	"strings"
)

// Model names a residue interaction model.
type Model string

const (
	// HP rewards contacts between hydrophobic residues.
	HP Model = "HP"
	// HPAB adds attraction between oppositely charged residues and
	// repulsion between like charges.
	HPAB Model = "HPAB"
	// WHPAB weights the HPAB interactions.
	WHPAB Model = "WHPAB"
	// MJ ranks the Miyazawa-Jernigan contact energies.
	MJ Model = "MJ"
)

// Models lists the supported models.
func Models() []Model {
	return []Model{HP, HPAB, WHPAB, MJ}
}

// InvalidModelError is returned for unknown model names.
type InvalidModelError string

func (e InvalidModelError) Error() string {
	return fmt.Sprintf("invalid energy model %q (supported: HP, HPAB, WHPAB, MJ)", string(e))
}

// UnknownResidueError is returned when a model has no energy for a
// residue letter.
type UnknownResidueError struct {
	Model    Model
	Position int
	Residue  byte
}

func (e *UnknownResidueError) Error() string {
	return fmt.Sprintf("model %s has no energy for residue %q at position %d", e.Model, e.Residue, e.Position)
}

// ParseModel resolves a model name.
func ParseModel(name string) (Model, error) {
	for _, m := range Models() {
		if string(m) == name {
			return m, nil
		}
	}
	return "", InvalidModelError(name)
}

// Matrix holds the contact energy of every residue pair; entry [i][j] is
// the energy gained when residues i and j are lattice neighbours.
type Matrix [][]float64

// At returns the energy of the pair (i, j).
func (m Matrix) At(i, j int) float64 { return m[i][j] }

// Len returns the number of residues.
func (m Matrix) Len() int { return len(m) }

// Validate checks that m is square.
func (m Matrix) Validate() error {
	for i, row := range m {
		if len(row) != len(m) {
			return fmt.Errorf("energy matrix row %d has %d entries, expected %d", i, len(row), len(m))
		}
	}
	return nil
}

const hydrophobic = "AGILMFPWV"

// EncodeHP maps every residue to H when hydrophobic and P otherwise.
func EncodeHP(sequence string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(hydrophobic, r) {
			return 'H'
		}
		return 'P'
	}, sequence)
}

// EncodeHPAB refines EncodeHP by splitting the polar residues into
// neutral (P), acidic (A) and basic (B) classes.
func EncodeHPAB(sequence string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case strings.ContainsRune(hydrophobic, r):
			return 'H'
		case strings.ContainsRune("NQSTY", r):
			return 'P'
		case strings.ContainsRune("DE", r):
			return 'A'
		}
		return 'B'
	}, sequence)
}

var (
	hpTable = map[string]float64{
		"HH": -1,
	}
	hpabTable = map[string]float64{
		"HH": -1,
		"AA": 1, "AB": -1,
		"BA": -1, "BB": 1,
	}
	whpabTable = map[string]float64{
		"HH": -4, "HA": -1, "HB": -1,
		"AH": -1, "AA": 2, "AB": -2,
		"BH": -1, "BA": -2, "BB": 2,
	}
)

// ForSequence returns the energy matrix of sequence under model.
func ForSequence(sequence string, model Model) (Matrix, error) {
	switch model {
	case HP:
		return fromClasses(EncodeHP(sequence), hpTable), nil
	case HPAB:
		return fromClasses(EncodeHPAB(sequence), hpabTable), nil
	case WHPAB:
		return fromClasses(EncodeHPAB(sequence), whpabTable), nil
	case MJ:
		return rankedMJ(sequence)
	}
	return nil, InvalidModelError(model)
}

func fromClasses(encoded string, table map[string]float64) Matrix {
	m := square(len(encoded))
	for i := range m {
		for j := range m[i] {
			m[i][j] = table[encoded[i:i+1]+encoded[j:j+1]]
		}
	}
	return m
}

// rankedMJ replaces each Miyazawa-Jernigan energy of the sequence by its
// rank among the distinct energies present, the weakest contact ranking
// -1, the next -2, and so on.
func rankedMJ(sequence string) (Matrix, error) {
	m := square(len(sequence))
	distinct := make(map[float64]struct{})
	for i := range m {
		ri := strings.IndexByte(mjResidues, sequence[i])
		if ri < 0 {
			return nil, &UnknownResidueError{Model: MJ, Position: i, Residue: sequence[i]}
		}
		for j := range m[i] {
			rj := strings.IndexByte(mjResidues, sequence[j])
			if rj < 0 {
				return nil, &UnknownResidueError{Model: MJ, Position: j, Residue: sequence[j]}
			}
			m[i][j] = mjContacts[ri][rj]
			distinct[m[i][j]] = struct{}{}
		}
	}
	values := make([]float64, 0, len(distinct))
	for v := range distinct {
		values = append(values, v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))
	rank := make(map[float64]float64, len(values))
	for i, v := range values {
		rank[v] = float64(-1 - i)
	}
	for i := range m {
		for j := range m[i] {
			m[i][j] = rank[m[i][j]]
		}
	}
	return m, nil
}

func square(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}
