// SPDX-License-Identifier: MIT

package reference_test

import (
	"testing"

	"github.com/katalvlaran/rctdprobe/expression"
	"github.com/katalvlaran/rctdprobe/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func archetypes(t *testing.T) []expression.Archetype {
	t.Helper()
	a, b, err := expression.Archetypes()
	require.NoError(t, err)

	return []expression.Archetype{a, b}
}

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	ref, err := reference.Build(archetypes(t))
	require.NoError(t, err)
	require.NoError(t, ref.Validate())

	assert.Equal(t, []string{"typeA_1", "typeA_2", "typeB_1", "typeB_2"}, ref.Cells())
	assert.Equal(t, []expression.CellType{expression.TypeA, expression.TypeA, expression.TypeB, expression.TypeB}, ref.Labels)
	assert.Equal(t, []expression.CellType{expression.TypeA, expression.TypeB}, ref.Levels)
	assert.Equal(t, []float64{30, 30, 165, 165}, ref.NUMI)
	assert.Equal(t, map[expression.CellType]int{expression.TypeA: 2, expression.TypeB: 2}, ref.CountsByType())
	assert.Len(t, ref.Genes(), 15)

	v, err := ref.Counts.AtNamed("typeB_2", "b5")
	require.NoError(t, err)
	assert.Equal(t, 50.0, v)
}

func TestBuild_Replicates(t *testing.T) {
	t.Parallel()

	ref, err := reference.Build(archetypes(t), reference.WithReplicates(1))
	require.NoError(t, err)
	assert.Equal(t, 2, ref.Counts.Rows())
	require.Panics(t, func() { reference.WithReplicates(0) })
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	_, err := reference.Build(nil)
	require.ErrorIs(t, err, reference.ErrNoArchetypes)

	as := archetypes(t)
	_, err = reference.Build([]expression.Archetype{as[0], as[0]})
	require.ErrorIs(t, err, reference.ErrDuplicateType)

	small, _, err := expression.Archetypes(expression.WithMarkers(1))
	require.NoError(t, err)
	small.Name = "typeC"
	_, err = reference.Build([]expression.Archetype{as[0], small})
	require.ErrorIs(t, err, expression.ErrGeneMismatch)
}

func TestValidate_DetectsBrokenNUMI(t *testing.T) {
	t.Parallel()

	ref, err := reference.Build(archetypes(t))
	require.NoError(t, err)
	ref.NUMI[0] = 31
	require.ErrorIs(t, ref.Validate(), reference.ErrInconsistent)

	ref.NUMI[0] = 30
	ref.Labels = ref.Labels[:3]
	require.ErrorIs(t, ref.Validate(), reference.ErrInconsistent)
}
