// Package catalog holds the built-in product set served when the backing
// store is empty or unreachable, plus per-category descriptive metadata.
package catalog

import (
	"time"

	"storefront/internal/domain"
)

const (
	imageMug          = "/assets/product-mug.jpg"
	imageBasket       = "/assets/product-basket.jpg"
	imageCuttingBoard = "/assets/product-cutting-board.jpg"
)

// DefaultProductID identifies the demo product used when a checkout request omits its item.
const DefaultProductID = "1"

var builtinCreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type builtin struct {
	id          string
	name        string
	price       int64
	original    int64
	image       string
	rating      float64
	reviews     int
	category    string
	inStock     bool
	description string
}

var builtins = []builtin{
	{"1", "Handcrafted Ceramic Mug", 2800, 3500, imageMug, 4.8, 42, "Ceramics", true,
		"This beautiful handcrafted ceramic mug is perfect for your morning coffee or evening tea. Each piece is unique, featuring subtle variations that make it truly one-of-a-kind."},
	{"2", "Woven Storage Basket", 4500, 0, imageBasket, 4.6, 28, "Home Decor", true,
		"Beautifully handwoven storage basket perfect for organizing your home. Made from sustainable materials with excellent craftsmanship."},
	{"3", "Live Edge Cutting Board", 6800, 8500, imageCuttingBoard, 4.9, 67, "Kitchen", true,
		"Premium live edge cutting board crafted from sustainably sourced hardwood. Features natural wood grain patterns and smooth finish."},
	{"4", "Artisan Ceramic Bowl Set", 9500, 0, imageMug, 4.7, 35, "Ceramics", false, ""},
	{"5", "Handwoven Placemat Set", 3200, 0, imageBasket, 4.5, 23, "Home Decor", true, ""},
	{"6", "Rustic Serving Tray", 5500, 0, imageCuttingBoard, 4.8, 51, "Kitchen", true, ""},
}

// Products returns a fresh copy of the built-in product set in display order.
func Products() []domain.Product {
	out := make([]domain.Product, 0, len(builtins))
	for _, b := range builtins {
		out = append(out, b.product())
	}
	return out
}

// Product looks up a built-in product by id.
func Product(id string) (domain.Product, bool) {
	for _, b := range builtins {
		if b.id == id {
			return b.product(), true
		}
	}
	return domain.Product{}, false
}

func (b builtin) product() domain.Product {
	p := domain.Product{
		ID:          b.id,
		Name:        b.name,
		PriceCents:  b.price,
		Image:       b.image,
		Rating:      b.rating,
		ReviewCount: b.reviews,
		Category:    b.category,
		InStock:     b.inStock,
		Description: b.description,
		CreatedAt:   builtinCreatedAt,
	}
	if b.original > 0 {
		original := b.original
		p.OriginalPriceCents = &original
	}
	return p
}
