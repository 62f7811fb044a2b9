// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetbuild

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// EncName is the default CSV charset, set from $LANG by Initialize.
var EncName = "utf-8"

// GetEncoding returns the named encoding, nil for UTF-8.
func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// CSVReader is a csv.Reader that owns its source.
type CSVReader struct {
	*csv.Reader
	io.Closer
}

// OpenCsv opens fn ("" or "-" for stdin) as CSV in the encName charset.
// The separator is the first byte that cannot start a field.
func OpenCsv(fn, encName string) (CSVReader, error) {
	var enc encoding.Encoding
	if encName != "" {
		var err error
		if enc, err = GetEncoding(encName); err != nil {
			return CSVReader{}, err
		}
	}
	fh := os.Stdin
	if !(fn == "" || fn == "-") {
		var err error
		if fh, err = os.Open(fn); err != nil {
			return CSVReader{}, err
		}
	}
	return NewCSVReader(fh, enc)
}

// NewCSVReader returns a CSVReader on r decoded with enc (nil for UTF-8).
func NewCSVReader(r io.ReadCloser, enc encoding.Encoding) (CSVReader, error) {
	if enc != nil {
		r = struct {
			io.Reader
			io.Closer
		}{enc.NewDecoder().Reader(r), r}
	}
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		r.Close()
		return CSVReader{}, err
	}
	sep := rune(',')
	for _, r := range string(b) {
		if r == '\n' || r == '\r' {
			break
		}
		if r == '"' || r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			continue
		}
		sep = r
		break
	}

	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	cr.Comma = sep
	return CSVReader{cr, r}, nil
}
