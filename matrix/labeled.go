// SPDX-License-Identifier: MIT

// Package matrix - Labeled: Dense + row/column names.
//
// Count matrices in this module always travel with their dimnames
// (cell or spot IDs on rows, gene or cell-type IDs on columns). Labeled keeps
// the names next to the numbers so tables can be compared by name rather
// than by position.
package matrix

const (
	ctxLabeled = "NewLabeled"
	ctxRowIdx  = "RowIndex"
	ctxColIdx  = "ColIndex"
)

// Labeled is a Dense with unique row and column names.
// Name order equals index order; lookups are O(1).
type Labeled struct {
	*Dense
	rowNames []string
	colNames []string
	rowIdx   map[string]int
	colIdx   map[string]int
}

// NewLabeled allocates a zero len(rows)×len(cols) matrix with the given names.
//
// Errors:
//   - ErrInvalidDimensions when either name list is empty.
//   - ErrDuplicateLabel when a name repeats within rows or within cols.
//
// Complexity: O(r*c).
func NewLabeled(rows, cols []string) (*Labeled, error) {
	d, err := NewDense(len(rows), len(cols))
	if err != nil {
		return nil, matrixErrorf(ctxLabeled, err)
	}

	return attachLabels(d, rows, cols)
}

// NewLabeledFrom wraps d (not copied) with the given names.
//
// Errors:
//   - ErrNilMatrix when d is nil.
//   - ErrDimensionMismatch when the name counts differ from d's shape.
//   - ErrDuplicateLabel on repeated names.
func NewLabeledFrom(rows, cols []string, d *Dense) (*Labeled, error) {
	if d == nil {
		return nil, matrixErrorf(ctxLabeled, ErrNilMatrix)
	}
	if len(rows) != d.r || len(cols) != d.c {
		return nil, matrixErrorf(ctxLabeled, ErrDimensionMismatch)
	}

	return attachLabels(d, rows, cols)
}

func attachLabels(d *Dense, rows, cols []string) (*Labeled, error) {
	rowIdx, err := indexNames(rows)
	if err != nil {
		return nil, matrixErrorf(ctxLabeled, err)
	}
	colIdx, err := indexNames(cols)
	if err != nil {
		return nil, matrixErrorf(ctxLabeled, err)
	}

	return &Labeled{
		Dense:    d,
		rowNames: append([]string(nil), rows...),
		colNames: append([]string(nil), cols...),
		rowIdx:   rowIdx,
		colIdx:   colIdx,
	}, nil
}

func indexNames(names []string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		if _, dup := idx[n]; dup {
			return nil, ErrDuplicateLabel
		}
		idx[n] = i
	}

	return idx, nil
}

// RowNames returns a copy of the row names.
func (l *Labeled) RowNames() []string { return append([]string(nil), l.rowNames...) }

// ColNames returns a copy of the column names.
func (l *Labeled) ColNames() []string { return append([]string(nil), l.colNames...) }

// RowIndex returns the index of row name or ErrUnknownLabel.
func (l *Labeled) RowIndex(name string) (int, error) {
	i, ok := l.rowIdx[name]
	if !ok {
		return 0, matrixErrorf(ctxRowIdx+"("+name+")", ErrUnknownLabel)
	}

	return i, nil
}

// ColIndex returns the index of column name or ErrUnknownLabel.
func (l *Labeled) ColIndex(name string) (int, error) {
	j, ok := l.colIdx[name]
	if !ok {
		return 0, matrixErrorf(ctxColIdx+"("+name+")", ErrUnknownLabel)
	}

	return j, nil
}

// AtNamed reads the entry at (row, col) by name.
func (l *Labeled) AtNamed(row, col string) (float64, error) {
	i, err := l.RowIndex(row)
	if err != nil {
		return 0, err
	}
	j, err := l.ColIndex(col)
	if err != nil {
		return 0, err
	}

	return l.At(i, j)
}

// SetNamed writes v at (row, col) by name.
func (l *Labeled) SetNamed(row, col string, v float64) error {
	i, err := l.RowIndex(row)
	if err != nil {
		return err
	}
	j, err := l.ColIndex(col)
	if err != nil {
		return err
	}

	return l.Set(i, j, v)
}

// SameLabels reports whether l and o carry identical names in identical order.
func (l *Labeled) SameLabels(o *Labeled) bool {
	return equalNames(l.rowNames, o.rowNames) && equalNames(l.colNames, o.colNames)
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// CloneLabeled returns a deep copy that keeps the names.
// Complexity: O(r*c).
func (l *Labeled) CloneLabeled() *Labeled {
	out, _ := attachLabels(l.Dense.cloneDense(), l.rowNames, l.colNames) // names were validated on construction

	return out
}

// Relabel wraps m's values (copied into a Dense) with l's names. m must have
// l's shape. Kernels return plain Matrix values; Relabel restores the dimnames.
func (l *Labeled) Relabel(m Matrix) (*Labeled, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("Relabel", err)
	}
	if err := ValidateSameShape(l, m); err != nil {
		return nil, matrixErrorf("Relabel", err)
	}

	return attachLabels(toDense(m), l.rowNames, l.colNames)
}
