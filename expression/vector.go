// SPDX-License-Identifier: MIT

package expression

import "fmt"

// CellType is a categorical cell-type label.
type CellType string

// Fixed two-level vocabulary of the scenario.
const (
	TypeA CellType = "typeA"
	TypeB CellType = "typeB"
)

// Vector maps gene IDs to non-negative integer counts in a fixed order.
// A Vector is immutable: accessors return copies.
type Vector struct {
	genes  []string
	counts []int
	index  map[string]int
}

// NewVector builds a Vector from parallel gene/count slices (both copied).
//
// Errors: ErrEmptyVector, ErrGeneMismatch (length differs), ErrDuplicateGene,
// ErrNegativeCount.
func NewVector(genes []string, counts []int) (Vector, error) {
	if len(genes) == 0 {
		return Vector{}, expressionErrorf("NewVector", ErrEmptyVector)
	}
	if len(genes) != len(counts) {
		return Vector{}, expressionErrorf("NewVector", ErrGeneMismatch)
	}
	index := make(map[string]int, len(genes))
	for i, g := range genes {
		if _, dup := index[g]; dup {
			return Vector{}, expressionErrorf("NewVector("+g+")", ErrDuplicateGene)
		}
		if counts[i] < 0 {
			return Vector{}, expressionErrorf("NewVector("+g+")", ErrNegativeCount)
		}
		index[g] = i
	}

	return Vector{
		genes:  append([]string(nil), genes...),
		counts: append([]int(nil), counts...),
		index:  index,
	}, nil
}

// Len returns the number of genes.
func (v Vector) Len() int { return len(v.genes) }

// Genes returns the gene IDs in order.
func (v Vector) Genes() []string { return append([]string(nil), v.genes...) }

// Counts returns the counts in gene order.
func (v Vector) Counts() []int { return append([]int(nil), v.counts...) }

// Count returns the count of gene, and whether the gene exists.
func (v Vector) Count(gene string) (int, bool) {
	i, ok := v.index[gene]
	if !ok {
		return 0, false
	}

	return v.counts[i], true
}

// Floats returns the counts as float64 in gene order.
func (v Vector) Floats() []float64 {
	out := make([]float64, len(v.counts))
	for i, c := range v.counts {
		out[i] = float64(c)
	}

	return out
}

// Total returns the sum of counts (total RNA content, nUMI).
func (v Vector) Total() int {
	var s int
	for _, c := range v.counts {
		s += c
	}

	return s
}

// SameGenes reports whether v and o share genes in the same order.
func (v Vector) SameGenes(o Vector) bool {
	if len(v.genes) != len(o.genes) {
		return false
	}
	for i := range v.genes {
		if v.genes[i] != o.genes[i] {
			return false
		}
	}

	return true
}

// Scaled returns k·v. Errors: ErrNegativeCount when k < 0.
func (v Vector) Scaled(k int) (Vector, error) {
	if k < 0 {
		return Vector{}, expressionErrorf("Scaled", ErrNegativeCount)
	}
	out := v.Counts()
	for i := range out {
		out[i] *= k
	}

	return NewVector(v.genes, out)
}

// Plus returns v + o element-wise. Errors: ErrGeneMismatch.
func (v Vector) Plus(o Vector) (Vector, error) {
	if !v.SameGenes(o) {
		return Vector{}, expressionErrorf("Plus", ErrGeneMismatch)
	}
	out := v.Counts()
	for i := range out {
		out[i] += o.counts[i]
	}

	return NewVector(v.genes, out)
}

// String renders "gene=count" pairs in order.
func (v Vector) String() string {
	s := "{"
	for i, g := range v.genes {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%d", g, v.counts[i])
	}

	return s + "}"
}

// Archetype is an idealised single cell of one type.
type Archetype struct {
	Name    CellType
	Profile Vector
}

// GeneIDs returns prefix1..prefixN.
func GeneIDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}

	return ids
}
