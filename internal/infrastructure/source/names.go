package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// MetaFile loads the Symbol -> Security Name reference table from a CSV file
// with at least the columns "Symbol" and "Security Name".
type MetaFile struct {
	Path string
}

func (m *MetaFile) Load(_ context.Context) (map[string]string, error) {
	fh, err := os.Open(m.Path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	rd := csv.NewReader(fh)
	rd.FieldsPerRecord = -1
	header, err := rd.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	symCol, nameCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Symbol":
			symCol = i
		case "Security Name":
			nameCol = i
		}
	}
	if symCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("reference file %s: missing Symbol or Security Name column", m.Path)
	}

	out := map[string]string{}
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if symCol >= len(rec) || nameCol >= len(rec) {
			continue
		}
		out[rec[symCol]] = rec[nameCol]
	}
	return out, nil
}
