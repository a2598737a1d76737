package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"repairshop-orders/internal/domain"
)

type PartWriter interface {
	UpsertPart(ctx context.Context, part domain.Part) (*domain.Part, error)
}

// CSVImporter reads part price lists exported from the old system and
// inserts/updates parts. Expected columns: model_id, name, unit_price,
// unit_service_fee, is_active.
type CSVImporter struct {
	reader   *csv.Reader
	partRepo PartWriter
}

func NewCSVImporter(r io.Reader, repo PartWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, partRepo: repo}
}

// Run parses CSV rows and upserts parts. Returns the number imported.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	required := []string{"model_id", "name", "unit_price"}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("missing required column %q", col)
		}
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		part, err := rowToPart(record, index)
		if err != nil {
			return imported, err
		}
		if part.Name == "" {
			continue
		}
		if _, err := i.partRepo.UpsertPart(ctx, part); err != nil {
			return imported, fmt.Errorf("upsert part %q: %w", part.Name, err)
		}
		imported++
	}

	return imported, nil
}

func rowToPart(record []string, index map[string]int) (domain.Part, error) {
	part := domain.Part{
		ModelID:  field(record, index, "model_id"),
		Name:     field(record, index, "name"),
		IsActive: true,
	}

	price := field(record, index, "unit_price")
	if price != "" {
		parsed, err := strconv.ParseInt(price, 10, 64)
		if err != nil {
			return domain.Part{}, fmt.Errorf("bad unit_price %q for %q", price, part.Name)
		}
		part.UnitPrice = parsed
	}

	fee := field(record, index, "unit_service_fee")
	if fee != "" {
		parsed, err := strconv.ParseInt(fee, 10, 64)
		if err != nil {
			return domain.Part{}, fmt.Errorf("bad unit_service_fee %q for %q", fee, part.Name)
		}
		part.UnitServiceFee = parsed
	}

	if active := field(record, index, "is_active"); active != "" {
		part.IsActive = strings.EqualFold(active, "true") || active == "1"
	}

	return part, nil
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}
