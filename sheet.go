// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetbuild

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Delimiter separates the cell values of a Text row.
const Delimiter = "||"

// SheetBuilder collects the rows of one sheet.
// Rows cannot be removed or reordered once appended.
type SheetBuilder struct {
	name string
	rows []*Row
}

// Name returns the name given to the sheet, and false if it has none.
func (sb *SheetBuilder) Name() (string, bool) { return sb.name, sb.name != "" }

// Rows returns the rows, in row order.
func (sb *SheetBuilder) Rows() []*Row { return sb.rows }

// Header appends a header row populated by fill.
func (sb *SheetBuilder) Header(fill func(*Row)) *SheetBuilder {
	return sb.appendRow(&Row{header: true}, fill)
}

// Row appends a plain row populated by fill.
func (sb *SheetBuilder) Row(fill func(*Row)) *SheetBuilder {
	return sb.appendRow(&Row{}, fill)
}

func (sb *SheetBuilder) appendRow(r *Row, fill func(*Row)) *SheetBuilder {
	if fill != nil {
		fill(r)
	}
	sb.rows = append(sb.rows, r)
	return sb
}

// Text appends a plain row of STRING cells, one for each
// Delimiter-separated part of line.
//
//	sb.Text("1||2||8||4||5")
func (sb *SheetBuilder) Text(line string) *SheetBuilder {
	r := &Row{}
	for _, s := range strings.Split(line, Delimiter) {
		r.Str(s)
	}
	sb.rows = append(sb.rows, r)
	return sb
}

// CSV appends every record of cr as a plain row of STRING cells.
// If header is true, the first record becomes a header row.
func (sb *SheetBuilder) CSV(cr *csv.Reader, header bool) error {
	for i := 0; ; i++ {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		r := &Row{header: header && i == 0}
		for _, s := range rec {
			r.Str(s)
		}
		sb.rows = append(sb.rows, r)
	}
}

// Sheet is a materialized sheet: named, with every cell resolved.
type Sheet struct {
	Name string
	Rows [][]Cell
}

func (sb *SheetBuilder) materialize(name string, styles *StyleRegistry) Sheet {
	sh := Sheet{Name: name, Rows: make([][]Cell, len(sb.rows))}
	for i, r := range sb.rows {
		row := make([]Cell, len(r.cells))
		for j, c := range r.cells {
			if r.header && c.style != DefaultHeaderStyle {
				cc := *c
				cc.style = DefaultHeaderStyle
				c = &cc
			}
			row[j] = c.materialize(styles)
		}
		sh.Rows[i] = row
	}
	return sh
}
