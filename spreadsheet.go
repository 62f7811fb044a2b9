// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package sheetbuild builds spreadsheet documents in memory
// (workbook, sheets, rows and typed cells) and hands the finished
// tree to a serializer backend, such as sheetbuild/xlsx.
package sheetbuild

import (
	"errors"
	"io"
)

// Writer writes the spreadsheet consisting of the sheets created
// with NewSheet. The write finishes when Close is called.
//
// Sheets are written one after the other, in workbook order.
type Writer interface {
	io.Closer
	NewSheet(name string) (SheetWriter, error)
}

// SheetWriter should be Closed when finished.
//
// AppendRow receives materialized cells: the style is the effective one
// and numeric values are float64.
type SheetWriter interface {
	io.Closer
	AppendRow(cells ...Cell) error
}

// NewWriterFunc creates a Writer that writes to w, using the styles of the registry.
type NewWriterFunc func(w io.Writer, styles *StyleRegistry) (Writer, error)

var (
	ErrTooManyRows      = errors.New("too many rows")
	ErrNotInitialized   = errors.New("no writer backend initialized")
	ErrUnsupportedValue = errors.New("unsupported cell value")
	ErrIllegalType      = errors.New("illegal type encountered")
	ErrDuplicateSheet   = errors.New("duplicate sheet name")
	ErrInvalidFileName  = errors.New("invalid file name")
	ErrNonFinite        = errors.New("non-finite number")
)
