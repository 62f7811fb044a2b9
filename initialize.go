// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package sheetbuild

import (
	"os"
	"strings"
	"sync"
)

var (
	initOnce  sync.Once
	backendMu sync.RWMutex
	newWriter NewWriterFunc
)

// Initialize sets up the process-wide state: the writer backend used by
// WriteTo, SaveAs and FlushToDisk, and EncName from $LANG.
//
// Call it once at process start, before any workbook is written.
// Only the first call has effect.
func Initialize(fn NewWriterFunc) {
	initOnce.Do(func() {
		backendMu.Lock()
		newWriter = fn
		backendMu.Unlock()
		EncName = encNameFromEnv()
	})
}

func backend() NewWriterFunc {
	backendMu.RLock()
	defer backendMu.RUnlock()
	return newWriter
}

func encNameFromEnv() string {
	encName := os.Getenv("LANG")
	if i := strings.IndexByte(encName, '.'); i >= 0 {
		encName = strings.ToLower(encName[i+1:])
	} else {
		encName = ""
	}
	if encName == "" {
		encName = "utf-8"
	}
	return encName
}
