package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"repairshop-orders/internal/domain"
)

type stubPartWriter struct {
	parts []domain.Part
	err   error
}

func (s *stubPartWriter) UpsertPart(_ context.Context, part domain.Part) (*domain.Part, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.parts = append(s.parts, part)
	return &part, nil
}

func TestImporterRun(t *testing.T) {
	csv := strings.Join([]string{
		"model_id,name,unit_price,unit_service_fee,is_active",
		"m1,Screen,120,15,true",
		"m1,Battery,50,10,1",
		"m1,Legacy Part,10,,false",
		"m1,,0,0,true",
	}, "\n")

	repo := &stubPartWriter{}
	imp := NewCSVImporter(strings.NewReader(csv), repo)

	n, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 imported, got %d", n)
	}
	if repo.parts[0].UnitPrice != 120 || repo.parts[0].UnitServiceFee != 15 {
		t.Fatalf("unexpected first part: %+v", repo.parts[0])
	}
	if !repo.parts[1].IsActive {
		t.Fatalf("'1' should parse as active")
	}
	if repo.parts[2].IsActive {
		t.Fatalf("'false' should parse as inactive")
	}
}

func TestImporterMissingColumn(t *testing.T) {
	imp := NewCSVImporter(strings.NewReader("name,unit_price\nScreen,100"), &stubPartWriter{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error for missing model_id column")
	}
}

func TestImporterBadPrice(t *testing.T) {
	csv := "model_id,name,unit_price\nm1,Screen,abc"
	imp := NewCSVImporter(strings.NewReader(csv), &stubPartWriter{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestImporterRepoError(t *testing.T) {
	csv := "model_id,name,unit_price\nm1,Screen,100"
	imp := NewCSVImporter(strings.NewReader(csv), &stubPartWriter{err: errors.New("db down")})
	n, err := imp.Run(context.Background())
	if err == nil {
		t.Fatalf("expected repo error")
	}
	if n != 0 {
		t.Fatalf("expected 0 imported, got %d", n)
	}
}
