// Copyright 2021, 2026 Tamas Gulacsi. All rights reserved.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/sheetbuild"
	"github.com/UNO-SOFT/sheetbuild/xlsx"
	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	xlsx.Initialize()

	fs := flag.NewFlagSet("csv2xlsx", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	flagEnc := fs.String("charset", sheetbuild.EncName, "csv charset name")
	flagHeader := fs.Bool("header", true, "first record of each csv is the header")

	app := ffcli.Command{Name: "csv2xlsx", FlagSet: fs,
		ShortUsage: "csv2xlsx [flags] out.xlsx [sheet:]in.csv...",
		Options:    []ff.Option{ff.WithEnvVarPrefix("CSV2XLSX")},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) < 2 {
				return flag.ErrHelp
			}
			return convert(ctx, args[0], args[1:], *flagEnc, *flagHeader)
		},
	}
	if err := app.Parse(os.Args[1:]); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}

func convert(ctx context.Context, out string, inputs []string, encName string, header bool) error {
	var buildErr error
	wb := sheetbuild.NewWorkbook(
		strings.TrimSuffix(filepath.Base(out), ".xlsx"),
		func(wb *sheetbuild.Workbook) {
			for _, fn := range inputs {
				if buildErr != nil {
					return
				}
				var sheetName string
				if i := strings.IndexByte(fn, ':'); i >= 0 {
					sheetName, fn = fn[:i], fn[i+1:]
				} else if fn != "" && fn != "-" {
					sheetName = strings.TrimSuffix(filepath.Base(fn), ".csv")
				}
				wb.Sheet(sheetName, func(sb *sheetbuild.SheetBuilder) {
					if err := copyFile(sb, fn, encName, header); err != nil {
						buildErr = fmt.Errorf("%q: %w", fn, err)
					}
				})
			}
		},
		sheetbuild.WithLogger(logger),
	)
	if buildErr != nil {
		return buildErr
	}

	done := make(chan bool, 1)
	wb.FlushToDisk(filepath.Dir(out), func(success bool) { done <- success })
	select {
	case ok := <-done:
		if !ok {
			return fmt.Errorf("write %q failed", out)
		}
		logger.Info("written", "file", out, "sheets", len(wb.Sheets()))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func copyFile(sb *sheetbuild.SheetBuilder, fn, encName string, header bool) error {
	cr, err := sheetbuild.OpenCsv(fn, encName)
	if err != nil {
		return err
	}
	defer cr.Close()
	logger.Debug("csv", "file", fn, "separator", string(cr.Comma))
	return sb.CSV(cr.Reader, header)
}
