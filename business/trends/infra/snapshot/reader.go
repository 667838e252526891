// Package snapshot reads precomputed time series from CSV files with an
// "entity,period,value" header.
package snapshot

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ChiaviniK/ComexioCase/business/trends/domain"
	"github.com/ChiaviniK/ComexioCase/internal/apperror"
)

const SourceName = "snapshot"

//go:embed default.csv
var defaultSnapshot []byte

var header = []string{"entity", "period", "value"}

// Read parses a snapshot. Blank lines are ignored; any malformed row fails
// the whole read.
func Read(r io.Reader) ([]domain.TimeSeriesPoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, apperror.New(apperror.CodeInvalidFormat, apperror.WithCause(err), apperror.WithContext("snapshot header"))
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(first[i]), col) {
			return nil, apperror.New(apperror.CodeInvalidFormat,
				apperror.WithContext(fmt.Sprintf("snapshot header %v, want %v", first, header)))
		}
	}

	var points []domain.TimeSeriesPoint
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperror.New(apperror.CodeInvalidFormat, apperror.WithCause(err))
		}

		line, _ := cr.FieldPos(0)
		entity, period := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		if entity == "" || period == "" {
			return nil, apperror.New(apperror.CodeInvalidFormat,
				apperror.WithContext(fmt.Sprintf("line %d: empty entity or period", line)))
		}
		value, err := decimal.NewFromString(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, apperror.New(apperror.CodeInvalidFormat, apperror.WithCause(err),
				apperror.WithContext(fmt.Sprintf("line %d: value %q", line, row[2])))
		}

		points = append(points, domain.TimeSeriesPoint{EntityKey: entity, Period: period, Value: value})
	}
	return points, nil
}

// Source serves a snapshot file, or the built-in snapshot when no path is set.
type Source struct {
	path string
}

// NewSource creates a Source for path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Name() string { return SourceName }

// Series reads the snapshot on every call so edits to the file are picked up.
func (s *Source) Series(ctx context.Context) ([]domain.TimeSeriesPoint, error) {
	if s.path == "" {
		return Read(bytes.NewReader(defaultSnapshot))
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeSeriesFetchFailed, s.path)
	}
	defer f.Close()

	return Read(f)
}
