package domain

import "time"

// Product is a catalog entry as shown on the product grid.
type Product struct {
	ID                 string                 `json:"id"`
	Name               string                 `json:"name"`
	PriceCents         int64                  `json:"priceCents"`
	OriginalPriceCents *int64                 `json:"originalPriceCents,omitempty"`
	Image              string                 `json:"image"`
	Rating             float64                `json:"rating"`
	ReviewCount        int                    `json:"reviews"`
	Category           string                 `json:"category"`
	InStock            bool                   `json:"inStock"`
	Description        string                 `json:"description,omitempty"`
	Attributes         map[string]interface{} `json:"-"`
	CreatedAt          time.Time              `json:"createdAt"`
}

// OnSale reports whether the product carries a pre-sale price above its current price.
func (p Product) OnSale() bool {
	return p.OriginalPriceCents != nil && *p.OriginalPriceCents > p.PriceCents
}

// ProductDetail extends Product with gallery and descriptive metadata.
type ProductDetail struct {
	Product
	Sale           bool              `json:"sale"`
	Images         []string          `json:"images"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	Reviews        ReviewSummary     `json:"reviewSummary"`
}
