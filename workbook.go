// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetbuild

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/valyala/quicktemplate"
)

// Workbook is the document: a style registry and the materialized sheets.
//
// A Workbook is built on one goroutine; it is not safe for concurrent use.
type Workbook struct {
	fileName   string
	styles     *StyleRegistry
	sheets     []Sheet
	sheetCount int
	logger     *slog.Logger
}

// Option configures a Workbook.
type Option func(*Workbook)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(wb *Workbook) { wb.logger = logger }
}

// WithStyle registers a named style before the build function runs.
func WithStyle(name string, style Style) Option {
	return func(wb *Workbook) { wb.styles.Register(name, style) }
}

// NewWorkbook returns a workbook populated by build.
//
// fileName is the base name (without extension) used by SaveAs and FlushToDisk.
func NewWorkbook(fileName string, build func(*Workbook), options ...Option) *Workbook {
	wb := &Workbook{
		fileName:   fileName,
		styles:     NewStyleRegistry(),
		sheetCount: 1,
	}
	for _, o := range options {
		o(wb)
	}
	if wb.logger == nil {
		wb.logger = slog.Default()
	}
	if build != nil {
		build(wb)
	}
	return wb
}

// FileName returns the base file name.
func (wb *Workbook) FileName() string { return wb.fileName }

// Styles returns the style registry.
func (wb *Workbook) Styles() *StyleRegistry { return wb.styles }

// Sheets returns the materialized sheets, in sheet order.
func (wb *Workbook) Sheets() []Sheet { return wb.sheets }

// Sheet builds a sheet with fill and materializes it into the workbook.
//
// An empty name means the sheet is unnamed: it is called "Sheet {n}", where n
// counts every sheet added to this workbook, starting from 1.
// Collisions with explicit names are not checked.
//
// Materialization panics if a cell refers to an unregistered style, or a
// cell has no type (a zero Cell).
func (wb *Workbook) Sheet(name string, fill func(*SheetBuilder)) *Workbook {
	sb := &SheetBuilder{name: name}
	if fill != nil {
		fill(sb)
	}
	if nm, ok := sb.Name(); ok {
		name = nm
	} else {
		name = "Sheet " + strconv.Itoa(wb.sheetCount)
	}
	wb.sheetCount++
	sh := sb.materialize(name, wb.styles)
	wb.logger.Debug("sheet", "name", sh.Name, "rows", len(sh.Rows))
	wb.sheets = append(wb.sheets, sh)
	return wb
}

// WriteTo serializes the workbook to w with the backend chosen by Initialize.
// Nothing is written to w if a sheet fails.
func (wb *Workbook) WriteTo(w io.Writer) (int64, error) {
	return writeSheets(w, wb.styles, wb.sheets)
}

// SaveAs writes the workbook to {dir}/{fileName}.xlsx, overwriting any
// existing file. The directory must exist, and fileName must not contain
// path separators.
func (wb *Workbook) SaveAs(dir string) error {
	return wb.saveAs(dir, wb.sheets)
}

func (wb *Workbook) saveAs(dir string, sheets []Sheet) error {
	if wb.fileName == "" || wb.fileName == "." || wb.fileName == ".." ||
		strings.ContainsAny(wb.fileName, `/\`) {
		return fmt.Errorf("%q: %w", wb.fileName, ErrInvalidFileName)
	}
	fn := filepath.Join(dir, wb.fileName+".xlsx")
	bb := quicktemplate.AcquireByteBuffer()
	defer quicktemplate.ReleaseByteBuffer(bb)
	if _, err := writeSheets(bb, wb.styles, sheets); err != nil {
		return fmt.Errorf("%q: %w", fn, err)
	}
	if err := os.WriteFile(fn, bb.B, 0o644); err != nil {
		return err
	}
	wb.logger.Info("saved", "file", fn, "sheets", len(sheets), "size", len(bb.B))
	return nil
}

// FlushToDisk writes the workbook to {dir}/{fileName}.xlsx on a new
// goroutine, then calls onResult exactly once: with true on success,
// with false on any failure. Errors are logged, never returned.
//
// Sheets added after FlushToDisk returns are not written.
func (wb *Workbook) FlushToDisk(dir string, onResult func(success bool)) {
	sheets := wb.sheets[:len(wb.sheets):len(wb.sheets)]
	go func() {
		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return wb.saveAs(dir, sheets)
		}()
		if err != nil {
			wb.logger.Error("flush", "dir", dir, "file", wb.fileName, "error", err)
		}
		if onResult != nil {
			onResult(err == nil)
		}
	}()
}

func writeSheets(w io.Writer, styles *StyleRegistry, sheets []Sheet) (int64, error) {
	newWriter := backend()
	if newWriter == nil {
		return 0, ErrNotInitialized
	}
	cw := &countingWriter{w: w}
	xw, err := newWriter(cw, styles)
	if err != nil {
		return cw.n, err
	}
	for _, sh := range sheets {
		if err := writeSheet(xw, sh); err != nil {
			return cw.n, err
		}
	}
	err = xw.Close()
	return cw.n, err
}

func writeSheet(xw Writer, sh Sheet) error {
	sw, err := xw.NewSheet(sh.Name)
	if err != nil {
		return fmt.Errorf("%q: %w", sh.Name, err)
	}
	for i, row := range sh.Rows {
		if err := sw.AppendRow(row...); err != nil {
			sw.Close()
			return fmt.Errorf("%q row %d: %w", sh.Name, i, err)
		}
	}
	return sw.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
