// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetbuild

// Row is an ordered sequence of cells. Cell order is column order.
//
// A header row forces DefaultHeaderStyle on every cell appended to it.
type Row struct {
	cells  []*Cell
	header bool
}

// IsHeader reports whether this is a header row.
func (r *Row) IsHeader() bool { return r.header }

// Cells returns the cells of the row, in column order.
func (r *Row) Cells() []*Cell { return r.cells }

// Len returns the number of cells.
func (r *Row) Len() int { return len(r.cells) }

// Cell appends a copy of c, so later changes to c do not affect the row.
//
// On a header row the style of the copy is DefaultHeaderStyle.
func (r *Row) Cell(c *Cell) *Row {
	cc := *c
	if r.header {
		cc.style = DefaultHeaderStyle
	}
	r.cells = append(r.cells, &cc)
	return r
}

// Str appends a STRING cell.
func (r *Row) Str(s string) *Row { return r.Cell(NewCell(s)) }

// Int appends a NUMERIC cell.
func (r *Row) Int(i int) *Row { return r.Cell(NewCell(i)) }

// Float appends a NUMERIC cell.
func (r *Row) Float(f float64) *Row { return r.Cell(NewCell(f)) }

// Bool appends a BOOLEAN cell.
func (r *Row) Bool(b bool) *Row { return r.Cell(NewCell(b)) }

// Values appends a cell for each value, see ParseCell.
//
// It stops at the first unsupported value; the cells before it stay appended.
func (r *Row) Values(values ...any) error {
	for _, v := range values {
		c, err := ParseCell(v)
		if err != nil {
			return err
		}
		r.Cell(c)
	}
	return nil
}
