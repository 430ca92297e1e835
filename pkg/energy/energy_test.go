package energy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, "HPHPP", EncodeHP("GKASD"))
	assert.Equal(t, "HBHPA", EncodeHPAB("GKASD"))
}

func TestForSequence(t *testing.T) {
	type tc struct {
		Name     string
		Sequence string
		Model    Model
		Want     Matrix
	}

	for _, tt := range []tc{
		{
			Name:     "hp",
			Sequence: "GAK",
			Model:    HP,
			Want: Matrix{
				{-1, -1, 0},
				{-1, -1, 0},
				{0, 0, 0},
			},
		},
		{
			Name:     "hpab",
			Sequence: "DKE",
			Model:    HPAB,
			Want: Matrix{
				{1, -1, 1},
				{-1, 1, -1},
				{1, -1, 1},
			},
		},
		{
			Name:     "whpab",
			Sequence: "GDS",
			Model:    WHPAB,
			Want: Matrix{
				{-4, -1, 0},
				{-1, 2, 0},
				{0, 0, 0},
			},
		},
		{
			Name:     "mj ranks",
			Sequence: "KKF",
			Model:    MJ,
			// K-K -0.12, K-F -3.36, F-K -3.36, F-F -7.26
			Want: Matrix{
				{-1, -1, -2},
				{-1, -1, -2},
				{-2, -2, -3},
			},
		},
		{
			Name:  "empty sequence",
			Model: HP,
			Want:  Matrix{},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			got, err := ForSequence(tt.Sequence, tt.Model)
			require.NoError(t, err)
			assert.Equal(t, tt.Want, got)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestForSequenceErrors(t *testing.T) {
	_, err := ForSequence("GAK", "XYZ")
	var invalid InvalidModelError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, InvalidModelError("XYZ"), invalid)

	_, err = ForSequence("GAX", MJ)
	var unknown *UnknownResidueError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, 2, unknown.Position)

	_, err = ParseModel("hp")
	assert.Error(t, err)
	m, err := ParseModel("WHPAB")
	require.NoError(t, err)
	assert.Equal(t, WHPAB, m)
}

func TestMJSymmetricRanks(t *testing.T) {
	seq := "CMFILVWYAGTSNQDEHRKP"
	m, err := ForSequence(seq, MJ)
	require.NoError(t, err)
	// The strongest contact in the table is L-L.
	l := 4
	for i := range m {
		for j := range m[i] {
			assert.GreaterOrEqual(t, m[i][j], m[l][l])
			assert.LessOrEqual(t, m[i][j], -1.0)
		}
	}
	k := 18
	assert.Equal(t, -1.0, m[k][k])
}

func TestMatrixValidate(t *testing.T) {
	assert.Error(t, Matrix{{1, 2}, {3}}.Validate())
}
