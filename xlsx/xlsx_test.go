package xlsx

import (
	"bytes"
	"os"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/UNO-SOFT/sheetbuild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample(wb *sheetbuild.Workbook) {
	wb.Sheet("First", func(sb *sheetbuild.SheetBuilder) {
		sb.Text("1||2||8||4||5")
		sb.Text("a||b||c||d||e")
	})
	wb.Sheet("Second", func(sb *sheetbuild.SheetBuilder) {
		sb.Row(func(r *sheetbuild.Row) {
			for i := 1; i <= 5; i++ {
				r.Int(i)
			}
		})
	})
	wb.Sheet("Third", func(sb *sheetbuild.SheetBuilder) {
		sb.Header(func(r *sheetbuild.Row) {
			for i := 1; i <= 5; i++ {
				r.Str("Cell " + string(rune('0'+i)))
			}
		})
		sb.Text("A||B||C||D||E")
	})
	wb.Sheet("", func(sb *sheetbuild.SheetBuilder) {
		sb.Text("A||B||C||D||E")
	})
}

func write(t *testing.T, wb *sheetbuild.Workbook) []byte {
	t.Helper()
	Initialize()
	var buf bytes.Buffer
	n, err := wb.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	return buf.Bytes()
}

func open(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b), excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestRoundTrip(t *testing.T) {
	wb := sheetbuild.NewWorkbook("rt", func(wb *sheetbuild.Workbook) {
		wb.Sheet("", func(sb *sheetbuild.SheetBuilder) {
			sb.Row(func(r *sheetbuild.Row) { r.Int(1).Str("x").Bool(true) })
		})
	})
	f := open(t, write(t, wb))

	assert.Equal(t, []string{"Sheet 1"}, f.GetSheetList())
	rows, err := f.GetRows("Sheet 1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1", "x", "1"}, rows[0])

	raw, err := f.GetCellValue("Sheet 1", "A1")
	require.NoError(t, err)
	num, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err)
	assert.Equal(t, 1.0, num)
	typ, err := f.GetCellType("Sheet 1", "A1")
	require.NoError(t, err)
	assert.Contains(t, []excelize.CellType{excelize.CellTypeUnset, excelize.CellTypeNumber}, typ)
	assert.NotContains(t, []excelize.CellType{excelize.CellTypeSharedString, excelize.CellTypeInlineString}, typ)
	typ, err = f.GetCellType("Sheet 1", "B1")
	require.NoError(t, err)
	assert.Contains(t, []excelize.CellType{excelize.CellTypeSharedString, excelize.CellTypeInlineString}, typ)
	typ, err = f.GetCellType("Sheet 1", "C1")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeBool, typ)
}

func TestSheetsAndRows(t *testing.T) {
	f := open(t, write(t, sheetbuild.NewWorkbook("tst", sample)))

	assert.Equal(t, []string{"First", "Second", "Third", "Sheet 4"}, f.GetSheetList())

	rows, err := f.GetRows("First")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", "8", "4", "5"}, {"a", "b", "c", "d", "e"}}, rows)

	rows, err = f.GetRows("Second")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", "3", "4", "5"}}, rows)

	rows, err = f.GetRows("Third")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Cell 1", rows[0][0])
	assert.Equal(t, "E", rows[1][4])
}

func TestHeaderStyle(t *testing.T) {
	f := open(t, write(t, sheetbuild.NewWorkbook("tst", sample)))

	hdr, err := f.GetCellStyle("Third", "B1")
	require.NoError(t, err)
	body, err := f.GetCellStyle("Third", "B2")
	require.NoError(t, err)
	assert.NotEqual(t, hdr, body)

	st, err := f.GetStyle(hdr)
	require.NoError(t, err)
	assert.Equal(t, sheetbuild.PatternSolid, st.Fill.Pattern)
	require.NotEmpty(t, st.Fill.Color)
	assert.True(t, strings.HasSuffix(strings.ToUpper(st.Fill.Color[0]), sheetbuild.AccentColor), st.Fill.Color)

	st, err = f.GetStyle(body)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Fill.Pattern)
}

func TestCustomStyle(t *testing.T) {
	wb := sheetbuild.NewWorkbook("custom", func(wb *sheetbuild.Workbook) {
		wb.Sheet("S", func(sb *sheetbuild.SheetBuilder) {
			sb.Row(func(r *sheetbuild.Row) {
				c := sheetbuild.NewCell(12.5)
				c.SetStyle("BOLD")
				r.Cell(c)
			})
		})
	}, sheetbuild.WithStyle("BOLD", sheetbuild.Style{FontBold: true}))
	f := open(t, write(t, wb))

	id, err := f.GetCellStyle("S", "A1")
	require.NoError(t, err)
	st, err := f.GetStyle(id)
	require.NoError(t, err)
	require.NotNil(t, st.Font)
	assert.True(t, st.Font.Bold)
	v, err := f.GetCellValue("S", "A1")
	require.NoError(t, err)
	assert.Equal(t, "12.5", v)
}

func TestDeterministic(t *testing.T) {
	d1, err := Digest(write(t, sheetbuild.NewWorkbook("tst", sample)))
	require.NoError(t, err)
	d2, err := Digest(write(t, sheetbuild.NewWorkbook("tst", sample)))
	require.NoError(t, err)
	assert.Equal(t, d1, d2)

	d3, err := Digest(write(t, sheetbuild.NewWorkbook("tst", func(wb *sheetbuild.Workbook) {
		sample(wb)
		wb.Sheet("Extra", nil)
	})))
	require.NoError(t, err)
	assert.NotEqual(t, d1, d3)
}

func TestDigestInvalid(t *testing.T) {
	_, err := Digest([]byte("not a zip"))
	assert.Error(t, err)
}

func flush(t *testing.T, wb *sheetbuild.Workbook, dir string) bool {
	t.Helper()
	Initialize()
	done := make(chan bool, 1)
	wb.FlushToDisk(dir, func(success bool) { done <- success })
	select {
	case ok := <-done:
		return ok
	case <-time.After(30 * time.Second):
		t.Fatal("no result")
	}
	return false
}

func TestFlushToDisk(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "tst.xlsx")
	require.NoError(t, os.WriteFile(fn, []byte("stale"), 0o644))

	wb := sheetbuild.NewWorkbook("tst", sample)
	require.True(t, flush(t, wb, dir))

	f, err := excelize.OpenFile(fn)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 4)
}

func TestFlushToDiskMissingDir(t *testing.T) {
	wb := sheetbuild.NewWorkbook("tst", sample)
	dir := filepath.Join(t.TempDir(), "missing")
	assert.False(t, flush(t, wb, dir))
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestFlushToDiskInvalidSheetName(t *testing.T) {
	wb := sheetbuild.NewWorkbook("bad", func(wb *sheetbuild.Workbook) {
		wb.Sheet("a/b:c", func(sb *sheetbuild.SheetBuilder) { sb.Text("x") })
	})
	dir := t.TempDir()
	assert.False(t, flush(t, wb, dir))
	_, err := os.Stat(filepath.Join(dir, "bad.xlsx"))
	assert.True(t, os.IsNotExist(err))
}

func TestTooManyRows(t *testing.T) {
	xlw, err := NewWriter(new(bytes.Buffer), sheetbuild.NewStyleRegistry())
	require.NoError(t, err)
	defer xlw.Close()
	sw, err := xlw.NewSheet("S")
	require.NoError(t, err)
	xls := sw.(*XLSXSheet)
	xls.row = MaxRowCount
	assert.ErrorIs(t, xls.AppendRow(), sheetbuild.ErrTooManyRows)
}

func TestStyleIDs(t *testing.T) {
	xlw, err := NewWriter(new(bytes.Buffer), sheetbuild.NewStyleRegistry())
	require.NoError(t, err)
	defer xlw.Close()
	def, ok := xlw.StyleID(sheetbuild.DefaultStyle)
	assert.True(t, ok)
	hdr, ok := xlw.StyleID(sheetbuild.DefaultHeaderStyle)
	assert.True(t, ok)
	assert.NotEqual(t, def, hdr)
	_, ok = xlw.StyleID("missing")
	assert.False(t, ok)
}

func TestDuplicateSheetName(t *testing.T) {
	wb := sheetbuild.NewWorkbook("dup", func(wb *sheetbuild.Workbook) {
		wb.Sheet("Sheet 2", func(sb *sheetbuild.SheetBuilder) { sb.Text("a||b") })
		wb.Sheet("", func(sb *sheetbuild.SheetBuilder) { sb.Text("X") })
	})
	Initialize()
	var buf bytes.Buffer
	_, err := wb.WriteTo(&buf)
	assert.ErrorIs(t, err, sheetbuild.ErrDuplicateSheet)

	dir := t.TempDir()
	assert.False(t, flush(t, wb, dir))
	_, err = os.Stat(filepath.Join(dir, "dup.xlsx"))
	assert.True(t, os.IsNotExist(err))
}

func TestDuplicateSheetNameCaseInsensitive(t *testing.T) {
	xlw, err := NewWriter(new(bytes.Buffer), sheetbuild.NewStyleRegistry())
	require.NoError(t, err)
	defer xlw.Close()
	_, err = xlw.NewSheet("Data")
	require.NoError(t, err)
	_, err = xlw.NewSheet("DATA")
	assert.ErrorIs(t, err, sheetbuild.ErrDuplicateSheet)
}

func TestNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		wb := sheetbuild.NewWorkbook("nan", func(wb *sheetbuild.Workbook) {
			wb.Sheet("S", func(sb *sheetbuild.SheetBuilder) {
				sb.Row(func(r *sheetbuild.Row) { r.Float(f) })
			})
		})
		Initialize()
		_, err := wb.WriteTo(new(bytes.Buffer))
		assert.ErrorIs(t, err, sheetbuild.ErrNonFinite, "%v", f)
		assert.False(t, flush(t, wb, t.TempDir()))
	}
}
