// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetbuild

import (
	"fmt"
	"reflect"
)

// CellType is the declared kind of a cell's value.
type CellType uint8

const (
	// TypeBlank is the zero value. No constructor produces it.
	TypeBlank CellType = iota
	TypeString
	TypeNumeric
	TypeBoolean
)

func (t CellType) String() string {
	switch t {
	case TypeBlank:
		return "BLANK"
	case TypeString:
		return "STRING"
	case TypeNumeric:
		return "NUMERIC"
	case TypeBoolean:
		return "BOOLEAN"
	}
	return fmt.Sprintf("CellType(%d)", uint8(t))
}

// Scalar is the closed set of values a cell can hold.
type Scalar interface {
	~string | ~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Cell is a single typed value with an optional style name.
type Cell struct {
	value any
	style string
	typ   CellType
}

// NewCell returns a cell holding v, its type inferred from v's kind.
func NewCell[T Scalar](v T) *Cell {
	return &Cell{value: v, typ: typeOf(reflect.ValueOf(v).Kind())}
}

// ParseCell is NewCell for values whose type is only known at runtime.
//
// Values outside the Scalar set are rejected with ErrUnsupportedValue.
func ParseCell(v any) (*Cell, error) {
	if v == nil {
		return nil, fmt.Errorf("<nil>: %w", ErrUnsupportedValue)
	}
	typ := typeOf(reflect.ValueOf(v).Kind())
	if typ == TypeBlank {
		return nil, fmt.Errorf("%T: %w", v, ErrUnsupportedValue)
	}
	return &Cell{value: v, typ: typ}, nil
}

func typeOf(k reflect.Kind) CellType {
	switch k {
	case reflect.String:
		return TypeString
	case reflect.Bool:
		return TypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return TypeNumeric
	}
	return TypeBlank
}

// SetStyle sets the style name of the cell. An empty name unsets it.
func (c *Cell) SetStyle(name string) { c.style = name }

// Style returns the style name, empty if unset.
func (c Cell) Style() string { return c.style }

// Type returns the type inferred at construction.
func (c Cell) Type() CellType { return c.typ }

// Value returns the value the cell was created with.
func (c Cell) Value() any { return c.value }

func (c Cell) String() string {
	return fmt.Sprintf("%s(%v)", c.typ, c.value)
}

// materialize returns the cell with its effective style and a value in
// its stored representation: string, float64 or bool.
//
// Integers are widened to float64, as spreadsheets store every number as a double.
func (c *Cell) materialize(styles *StyleRegistry) Cell {
	style := c.style
	if style == "" {
		style = DefaultStyle
	}
	if !styles.Has(style) {
		panic(fmt.Errorf("style %q is not registered", style))
	}

	rv := reflect.ValueOf(c.value)
	var v any
	switch c.typ {
	case TypeNumeric:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			v = rv.Float()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			v = float64(rv.Uint())
		default:
			v = float64(rv.Int())
		}
	case TypeString:
		v = rv.String()
	case TypeBoolean:
		v = rv.Bool()
	default:
		panic(fmt.Errorf("%v: %w", c.typ, ErrIllegalType))
	}
	return Cell{value: v, style: style, typ: c.typ}
}
