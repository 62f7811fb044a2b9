// Copyright 2020, 2023, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/UNO-SOFT/sheetbuild"
	"github.com/xuri/excelize/v2"
)

var _ = (sheetbuild.Writer)((*XLSXWriter)(nil))

// Initialize registers this package as the process-wide writer backend.
// See sheetbuild.Initialize.
func Initialize() {
	sheetbuild.Initialize(func(w io.Writer, styles *sheetbuild.StyleRegistry) (sheetbuild.Writer, error) {
		return NewWriter(w, styles)
	})
}

type XLSXWriter struct {
	w      io.Writer
	xl     *excelize.File
	styles map[string]int
	sheets []string
}

type XLSXSheet struct {
	xl     *excelize.File
	styles map[string]int
	Name   string
	row    int64
}

// NewWriter returns a new sheetbuild.Writer, with every style of the
// registry turned into an excelize style, in name order.
//
// This writer collects everything in memory, so big sheets may impose problems.
func NewWriter(w io.Writer, styles *sheetbuild.StyleRegistry) (*XLSXWriter, error) {
	xlw := &XLSXWriter{w: w, xl: excelize.NewFile(), styles: make(map[string]int)}
	for _, name := range styles.Names() {
		s, err := xlw.xl.NewStyle(newStyle(styles.Get(name)))
		if err != nil {
			xlw.xl.Close()
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
		xlw.styles[name] = s
	}
	return xlw, nil
}

func newStyle(style sheetbuild.Style) *excelize.Style {
	var st excelize.Style
	if style.FontBold {
		st.Font = &excelize.Font{Bold: true}
	}
	if style.Format != "" {
		st.CustomNumFmt = &style.Format
	}
	if style.Fill.Pattern != 0 {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: style.Fill.Pattern}
		if style.Fill.Color != "" {
			st.Fill.Color = []string{style.Fill.Color}
		}
	}
	return &st
}

// StyleID returns the excelize style id of the named style.
func (xlw *XLSXWriter) StyleID(name string) (int, bool) {
	s, ok := xlw.styles[name]
	return s, ok
}

// Close writes the package to the underlying writer.
func (xlw *XLSXWriter) Close() error {
	if xlw == nil {
		return nil
	}
	xl, w := xlw.xl, xlw.w
	xlw.xl, xlw.w = nil, nil
	if xl == nil || w == nil {
		return nil
	}
	defer xl.Close()
	_, err := xl.WriteTo(w)
	return err
}

// NewSheet adds the next sheet. Sheet names are case-insensitive,
// a name used before is rejected with sheetbuild.ErrDuplicateSheet.
func (xlw *XLSXWriter) NewSheet(name string) (sheetbuild.SheetWriter, error) {
	for _, s := range xlw.sheets {
		if strings.EqualFold(s, name) {
			return nil, fmt.Errorf("%q: %w", name, sheetbuild.ErrDuplicateSheet)
		}
	}
	xlw.sheets = append(xlw.sheets, name)
	if len(xlw.sheets) == 1 { // first
		if err := xlw.xl.SetSheetName("Sheet1", name); err != nil {
			return nil, err
		}
	} else if _, err := xlw.xl.NewSheet(name); err != nil {
		return nil, err
	}
	return &XLSXSheet{xl: xlw.xl, styles: xlw.styles, Name: name}, nil
}

// MaxRowCount is the number of maximum rows.
const MaxRowCount = 1_048_576

func (xls *XLSXSheet) Close() error { return nil }

// AppendRow writes the cells as the next row, 0th cell in column A.
func (xls *XLSXSheet) AppendRow(cells ...sheetbuild.Cell) error {
	if xls.row >= MaxRowCount {
		return sheetbuild.ErrTooManyRows
	}
	xls.row++
	for i, c := range cells {
		axis, err := excelize.CoordinatesToCellName(i+1, int(xls.row))
		if err != nil {
			return fmt.Errorf("%d/%d: %w", i, int(xls.row), err)
		}
		switch c.Type() {
		case sheetbuild.TypeNumeric:
			f := c.Value().(float64)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				err = fmt.Errorf("%v: %w", f, sheetbuild.ErrNonFinite)
			} else {
				err = xls.xl.SetCellFloat(xls.Name, axis, f, -1, 64)
			}
		case sheetbuild.TypeString:
			err = xls.xl.SetCellStr(xls.Name, axis, c.Value().(string))
		case sheetbuild.TypeBoolean:
			err = xls.xl.SetCellBool(xls.Name, axis, c.Value().(bool))
		default:
			err = fmt.Errorf("%v: %w", c.Type(), sheetbuild.ErrIllegalType)
		}
		if err != nil {
			return fmt.Errorf("%s[%s]: %w", xls.Name, axis, err)
		}
		s, ok := xls.styles[c.Style()]
		if !ok {
			return fmt.Errorf("%s[%s]: style %q is not registered", xls.Name, axis, c.Style())
		}
		if err = xls.xl.SetCellStyle(xls.Name, axis, axis, s); err != nil {
			return fmt.Errorf("%s[%s]: %w", xls.Name, axis, err)
		}
	}
	return nil
}
