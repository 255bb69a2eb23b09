// Package source loads per-symbol CSV price files and the symbol reference
// file that maps tickers to security names.
package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"stockrates-service/internal/application"
	"stockrates-service/internal/domain"
)

const dateLayout = "2006-01-02"

// CSVDir discovers per-symbol CSV files in a directory. The symbol is the
// file's base name without the extension.
type CSVDir struct {
	Dir string
}

func (d *CSVDir) List(_ context.Context) ([]application.SourceFile, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, err
	}
	var out []application.SourceFile
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		symbol := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		out = append(out, application.SourceFile{Symbol: symbol, Path: filepath.Join(d.Dir, e.Name())})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

var priceColumns = []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"}

// Load parses one price file. The expected header is
// Date,Open,High,Low,Close,Adj Close,Volume.
func (d *CSVDir) Load(_ context.Context, f application.SourceFile) ([]domain.PriceRecord, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	rd := csv.NewReader(fh)
	header, err := rd.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range priceColumns {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var out []domain.PriceRecord
	for line := 2; ; line++ {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := domain.PriceRecord{Symbol: f.Symbol}
		if row.Date, err = time.Parse(dateLayout, rec[col["Date"]]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if row.Open, err = parseFloat(rec[col["Open"]]); err != nil {
			return nil, fmt.Errorf("line %d: open: %w", line, err)
		}
		if row.High, err = parseFloat(rec[col["High"]]); err != nil {
			return nil, fmt.Errorf("line %d: high: %w", line, err)
		}
		if row.Low, err = parseFloat(rec[col["Low"]]); err != nil {
			return nil, fmt.Errorf("line %d: low: %w", line, err)
		}
		if row.Close, err = parseFloat(rec[col["Close"]]); err != nil {
			return nil, fmt.Errorf("line %d: close: %w", line, err)
		}
		if row.AdjClose, err = parseFloat(rec[col["Adj Close"]]); err != nil {
			return nil, fmt.Errorf("line %d: adj close: %w", line, err)
		}
		vol, err := parseFloat(rec[col["Volume"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: volume: %w", line, err)
		}
		row.Volume = int64(vol)
		out = append(out, row)
	}
	return out, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
