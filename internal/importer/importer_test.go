package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storefront/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
	err   error
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `id,name,price_cents,original_price_cents,image,rating,review_count,category,in_stock,description,features,images
7,Stoneware Pitcher,4200,5000,,4.4,12,Ceramics,true,Glazed by hand,Food safe; Lead free,https://example.com/p1.jpg
,,,,,,,,,,,https://example.com/p2.jpg
8,Linen Napkins,1800,,https://example.com/n.jpg,,,Home Decor,false,,,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products imported, got %d", count)
	}
	if len(repo.items) != 2 {
		t.Fatalf("expected 2 products saved, got %d", len(repo.items))
	}

	first := repo.items[0]
	if first.ID != "7" || first.Name != "Stoneware Pitcher" || first.PriceCents != 4200 || first.Category != "Ceramics" {
		t.Fatalf("unexpected product data: %+v", first)
	}
	if first.OriginalPriceCents == nil || *first.OriginalPriceCents != 5000 || !first.OnSale() {
		t.Fatalf("expected original price 5000, got %+v", first.OriginalPriceCents)
	}
	if images := first.Attributes["images"].([]string); len(images) != 2 {
		t.Fatalf("expected 2 images on first product, got %v", images)
	}
	if first.Image != "https://example.com/p1.jpg" {
		t.Fatalf("expected main image from gallery, got %q", first.Image)
	}
	if features := first.Attributes["features"].([]string); len(features) != 2 || features[1] != "Lead free" {
		t.Fatalf("unexpected features %v", features)
	}
	if first.Rating != 4.4 || first.ReviewCount != 12 || !first.InStock {
		t.Fatalf("unexpected rating data: %+v", first)
	}

	second := repo.items[1]
	if second.OriginalPriceCents != nil || second.InStock {
		t.Fatalf("unexpected second product: %+v", second)
	}
	if _, ok := second.Attributes["images"]; ok {
		t.Fatalf("expected no gallery on second product")
	}
}

func TestCSVImporter_RunRejectsMissingPrice(t *testing.T) {
	csvData := `id,name,price_cents
9,Unpriced Thing,`
	imp := NewCSVImporter(strings.NewReader(csvData), &stubProductRepo{})

	count, err := imp.Run(context.Background())
	if err == nil {
		t.Fatalf("expected error for missing price")
	}
	if count != 0 {
		t.Fatalf("expected nothing imported, got %d", count)
	}
}

func TestCSVImporter_RunBadNumber(t *testing.T) {
	csvData := `id,name,price_cents
9,Thing,12.50`
	_, err := NewCSVImporter(strings.NewReader(csvData), &stubProductRepo{}).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "line 2: price_cents") {
		t.Fatalf("expected price_cents parse error, got %v", err)
	}
}

func TestCSVImporter_RunMissingIDColumn(t *testing.T) {
	_, err := NewCSVImporter(strings.NewReader("name,price_cents\nMug,100"), &stubProductRepo{}).Run(context.Background())
	if err == nil {
		t.Fatalf("expected header error")
	}
}

func TestCSVImporter_RunRepoError(t *testing.T) {
	repo := &stubProductRepo{err: errors.New("db down")}
	csvData := `id,name,price_cents
1,Mug,2800`
	_, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), `upsert product "1"`) {
		t.Fatalf("expected upsert error, got %v", err)
	}
}
