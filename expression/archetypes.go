// SPDX-License-Identifier: MIT

package expression

// Archetypes returns the two idealised cell types over one gene namespace
// ordered a1..aM, b1..bM, c1..cH:
//
//	typeA: a_i = i,     b_i = 0,     c_i = i
//	typeB: a_i = 0,     b_i = k·i,   c_i = i
//
// with M markers, H housekeeping genes and marker scale k.
// Complexity: O(M+H).
func Archetypes(opts ...Option) (a, b Archetype, err error) {
	cfg := newConfig(opts...)

	genes := make([]string, 0, 2*cfg.markers+cfg.housekeeping)
	genes = append(genes, GeneIDs(markerPrefixA, cfg.markers)...)
	genes = append(genes, GeneIDs(markerPrefixB, cfg.markers)...)
	genes = append(genes, GeneIDs(housekeepingPrefix, cfg.housekeeping)...)

	countsA := make([]int, len(genes))
	countsB := make([]int, len(genes))
	for i := 0; i < cfg.markers; i++ {
		countsA[i] = i + 1
		countsB[cfg.markers+i] = cfg.markerScale * (i + 1)
	}
	off := 2 * cfg.markers
	for i := 0; i < cfg.housekeeping; i++ {
		countsA[off+i] = i + 1
		countsB[off+i] = i + 1
	}

	va, err := NewVector(genes, countsA)
	if err != nil {
		return Archetype{}, Archetype{}, expressionErrorf("Archetypes", err)
	}
	vb, err := NewVector(genes, countsB)
	if err != nil {
		return Archetype{}, Archetype{}, expressionErrorf("Archetypes", err)
	}

	return Archetype{Name: TypeA, Profile: va}, Archetype{Name: TypeB, Profile: vb}, nil
}
