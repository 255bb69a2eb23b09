package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"stockrates-service/internal/application"

	"github.com/stretchr/testify/require"
)

const appleCSV = `Date,Open,High,Low,Close,Adj Close,Volume
2019-08-01,100.5,105.25,99.0,104.0,103.5,48000
2019-08-02,104.0,110.0,103.0,108.0,107.4,52000
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestCSVDir_ListSortedAndFiltered(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "SCKT.csv", appleCSV)
	writeFile(t, dir, "AAPL.csv", appleCSV)
	writeFile(t, dir, "readme.txt", "not a price file")

	d := &CSVDir{Dir: dir}
	files, err := d.List(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "AAPL", files[0].Symbol)
	require.Equal(t, "SCKT", files[1].Symbol)
}

func TestCSVDir_LoadParsesRows(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "AAPL.csv", appleCSV)

	d := &CSVDir{Dir: dir}
	rows, err := d.Load(context.Background(), application.SourceFile{Symbol: "AAPL", Path: filepath.Join(dir, "AAPL.csv")})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	r := rows[0]
	require.Equal(t, "AAPL", r.Symbol)
	require.Equal(t, "2019-08-01", r.Date.Format("2006-01-02"))
	require.InDelta(t, 100.5, r.Open, 1e-9)
	require.InDelta(t, 105.25, r.High, 1e-9)
	require.InDelta(t, 99.0, r.Low, 1e-9)
	require.InDelta(t, 104.0, r.Close, 1e-9)
	require.InDelta(t, 103.5, r.AdjClose, 1e-9)
	require.Equal(t, int64(48000), r.Volume)
}

func TestCSVDir_LoadRejectsBadData(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "BAD.csv", "Date,Open,High,Low,Close,Adj Close,Volume\n2019-08-01,oops,1,1,1,1,1\n")
	writeFile(t, dir, "NOHDR.csv", "Date,Open\n2019-08-01,1\n")

	d := &CSVDir{Dir: dir}
	_, err := d.Load(context.Background(), application.SourceFile{Symbol: "BAD", Path: filepath.Join(dir, "BAD.csv")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")

	_, err = d.Load(context.Background(), application.SourceFile{Symbol: "NOHDR", Path: filepath.Join(dir, "NOHDR.csv")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing column")
}

func TestMetaFile_Load(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "symbols_valid_meta.csv",
		"Nasdaq Traded,Symbol,Security Name\nY,AAPL,Apple Inc. - Common Stock\nY,BRY,Berry Corporation\n")

	m := &MetaFile{Path: filepath.Join(dir, "symbols_valid_meta.csv")}
	names, err := m.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, names, 2)
	require.Equal(t, "Apple Inc. - Common Stock", names["AAPL"])
	require.Equal(t, "Berry Corporation", names["BRY"])
}

func TestMetaFile_MissingColumns(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "meta.csv", "Ticker,Name\nAAPL,Apple\n")

	m := &MetaFile{Path: filepath.Join(dir, "meta.csv")}
	_, err := m.Load(context.Background())
	require.Error(t, err)
}
