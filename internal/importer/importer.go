package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products.
//
// Expected columns: id, name, price_cents, original_price_cents, image, rating,
// review_count, category, in_stock, description, features, images. Rows with an
// empty id and a non-empty images cell add gallery images to the previous product.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

type csvRow struct {
	line          int
	ID            string
	Name          string
	Cents         int64
	OriginalCents int64
	Image         string
	Rating        float64
	ReviewCount   int
	Category      string
	InStock       bool
	Desc          string
	Features      []string
	ImageURLs     []string
}

// Run parses CSV rows and upserts products grouped by product id.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["id"]; !ok {
		return 0, errors.New("read headers: missing id column")
	}

	var (
		current  *csvRow
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		row, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if row == nil {
			continue
		}
		row.line = line

		if row.ID != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		// Continuation rows (images) belong to the current product.
		if current != nil && len(row.ImageURLs) > 0 {
			current.ImageURLs = append(current.ImageURLs, row.ImageURLs...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Name == "" || row.Cents <= 0 {
		return fmt.Errorf("line %d: invalid product row (missing required fields) for id %q", row.line, row.ID)
	}
	if row.Rating < 0 || row.Rating > 5 {
		return fmt.Errorf("line %d: rating out of range for id %q: %v", row.line, row.ID, row.Rating)
	}

	attrs := map[string]interface{}{}
	images := row.ImageURLs
	if row.Image == "" && len(images) > 0 {
		row.Image = images[0]
	}
	if len(images) > 0 {
		attrs["images"] = images
	}
	if len(row.Features) > 0 {
		attrs["features"] = row.Features
	}

	p := domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		PriceCents:  row.Cents,
		Image:       row.Image,
		Rating:      row.Rating,
		ReviewCount: row.ReviewCount,
		Category:    row.Category,
		InStock:     row.InStock,
		Description: row.Desc,
		Attributes:  attrs,
	}
	if row.OriginalCents > 0 {
		original := row.OriginalCents
		p.OriginalPriceCents = &original
	}

	_, err := i.productRepo.Upsert(ctx, p)
	if err != nil {
		return fmt.Errorf("upsert product %q: %w", row.ID, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*csvRow, error) {
	id := pick(record, index, "id")
	imageURL := pick(record, index, "images")
	if id == "" && imageURL == "" {
		return nil, nil
	}

	row := &csvRow{
		ID:       id,
		Name:     pick(record, index, "name"),
		Image:    pick(record, index, "image"),
		Category: pick(record, index, "category"),
		Desc:     pick(record, index, "description"),
		InStock:  true,
	}
	if imageURL != "" {
		row.ImageURLs = []string{imageURL}
	}
	if id == "" {
		return row, nil
	}

	var err error
	if row.Cents, err = parseInt(pick(record, index, "price_cents")); err != nil {
		return nil, fmt.Errorf("price_cents: %w", err)
	}
	if row.OriginalCents, err = parseInt(pick(record, index, "original_price_cents")); err != nil {
		return nil, fmt.Errorf("original_price_cents: %w", err)
	}
	if v := pick(record, index, "rating"); v != "" {
		if row.Rating, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("rating: %w", err)
		}
	}
	count, err := parseInt(pick(record, index, "review_count"))
	if err != nil {
		return nil, fmt.Errorf("review_count: %w", err)
	}
	row.ReviewCount = int(count)
	if v := pick(record, index, "in_stock"); v != "" {
		if row.InStock, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("in_stock: %w", err)
		}
	}
	for _, f := range strings.Split(pick(record, index, "features"), ";") {
		if f = strings.TrimSpace(f); f != "" {
			row.Features = append(row.Features, f)
		}
	}
	return row, nil
}

func parseInt(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
