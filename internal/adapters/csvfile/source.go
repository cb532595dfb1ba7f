// Package csvfile reads import sections from <dir>/<section>.csv files.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/fx_fee_engine/internal/core/ports"
	"github.com/SscSPs/fx_fee_engine/internal/dto"
)

// DirectorySource implements ports.RecordSource over a folder of CSV files.
type DirectorySource struct {
	dir string
}

var _ ports.RecordSource = (*DirectorySource)(nil)

// NewDirectorySource creates a source reading from dir.
func NewDirectorySource(dir string) *DirectorySource {
	return &DirectorySource{dir: strings.TrimRight(dir, "/")}
}

// Path returns the file a section is read from.
func (s *DirectorySource) Path(section string) string {
	return filepath.Join(s.dir, section+".csv")
}

// Records reads the named section.
func (s *DirectorySource) Records(ctx context.Context, section string) ([]dto.Record, error) {
	f, err := os.Open(s.Path(section))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", section, err)
	}
	defer f.Close()

	return ReadRecords(ctx, f)
}

// ReadRecords parses CSV with a header row. Blank lines are skipped, short rows
// are padded with empty values and header names are trimmed.
func ReadRecords(ctx context.Context, r io.Reader) ([]dto.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var (
		header  []string
		records []dto.Record
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if header == nil {
			header = make([]string, len(row))
			for i, h := range row {
				header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
			}
			continue
		}

		fields := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(row) {
				fields[key] = row[i]
			} else {
				fields[key] = ""
			}
		}
		records = append(records, dto.Record{Line: line, Fields: fields})
	}
	return records, nil
}
