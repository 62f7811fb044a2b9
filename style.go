// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetbuild

import (
	"fmt"
	"sort"
)

const (
	// DefaultStyle is applied to every cell without an explicit style.
	DefaultStyle = "DEFAULT"
	// DefaultHeaderStyle is forced on every cell of a header row.
	DefaultHeaderStyle = "DEFAULT_HEADER_STYLE"

	// AccentColor is the fill of DefaultHeaderStyle (aqua).
	AccentColor = "33CCCC"

	// PatternSolid is the solid fill pattern.
	PatternSolid = 1
)

// Style is a style for a cell.
type Style struct {
	// Format is the number format
	Format string
	// Fill is the background fill
	Fill Fill
	// FontBold is true if the font is bold
	FontBold bool
}

// Fill of a cell. The zero value means no fill.
type Fill struct {
	// Color is an RGB hex color, such as "33CCCC".
	Color string
	// Pattern is the fill pattern, PatternSolid for a solid fill.
	Pattern int
}

// StyleRegistry maps style names to style definitions.
type StyleRegistry struct {
	styles map[string]Style
}

// NewStyleRegistry returns a registry seeded with DefaultStyle and DefaultHeaderStyle.
func NewStyleRegistry() *StyleRegistry {
	return &StyleRegistry{styles: map[string]Style{
		DefaultStyle: {},
		DefaultHeaderStyle: {
			Fill: Fill{Color: AccentColor, Pattern: PatternSolid},
		},
	}}
}

// Register adds (or replaces) the named style.
func (reg *StyleRegistry) Register(name string, style Style) {
	reg.styles[name] = style
}

// Get returns the named style.
//
// Looking up an unregistered name is a programming error, so it panics.
func (reg *StyleRegistry) Get(name string) Style {
	s, ok := reg.styles[name]
	if !ok {
		panic(fmt.Errorf("style %q is not registered", name))
	}
	return s
}

// Has reports whether the name is registered.
func (reg *StyleRegistry) Has(name string) bool {
	_, ok := reg.styles[name]
	return ok
}

// Names returns the registered style names, sorted.
func (reg *StyleRegistry) Names() []string {
	names := make([]string, 0, len(reg.styles))
	for k := range reg.styles {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
