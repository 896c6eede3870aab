// Package cart aggregates cart line items into subtotal, shipping and total.
package cart

import (
	"errors"

	"storefront/internal/domain"
)

const (
	// FreeShippingThresholdCents is the subtotal above which shipping is free.
	FreeShippingThresholdCents int64 = 5000
	// FlatShippingCents is charged when the subtotal does not exceed the threshold.
	FlatShippingCents int64 = 899

	MinStepperQuantity = 1
	MaxStepperQuantity = 10

	// MaxLineQuantity caps the units of one product in a cart.
	MaxLineQuantity = 99
	// MaxTotalCents is the largest amount a single checkout may charge.
	MaxTotalCents int64 = 99_999_999
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrQuantityTooLarge = errors.New("quantity exceeds the per-item limit")
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrInvalidPrice     = errors.New("product price must not be negative")
	ErrCartTooLarge     = errors.New("cart total exceeds the checkout limit")
)

// Summarize computes totals over items. Lines with quantity 0 are treated as absent.
// Items are expected to respect the Cart limits, which keep every sum in range.
func Summarize(items []domain.CartItem) domain.CartSummary {
	out := domain.CartSummary{Items: make([]domain.CartItem, 0, len(items))}
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		out.Items = append(out.Items, item)
		out.ItemCount += item.Quantity
		out.SubtotalCents += item.LineTotalCents()
	}
	out.ShippingCents = ShippingFor(out.SubtotalCents)
	out.TotalCents = out.SubtotalCents + out.ShippingCents
	return out
}

// ShippingFor returns the shipping charge for subtotalCents.
func ShippingFor(subtotalCents int64) int64 {
	if subtotalCents > FreeShippingThresholdCents {
		return 0
	}
	return FlatShippingCents
}

// StepQuantity applies a product-detail stepper change, keeping current when next
// falls outside [MinStepperQuantity, MaxStepperQuantity].
func StepQuantity(current, next int) int {
	if next < MinStepperQuantity || next > MaxStepperQuantity {
		return current
	}
	return next
}

// Cart holds line items in insertion order. It is owned by a single caller and
// is not safe for concurrent use.
type Cart struct {
	items []domain.CartItem
}

func New() *Cart {
	return &Cart{}
}

// Add puts quantity units of p into the cart, merging with an existing line.
func (c *Cart) Add(p domain.Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !p.InStock {
		return ErrOutOfStock
	}
	if p.PriceCents < 0 {
		return ErrInvalidPrice
	}
	i := c.index(p.ID)
	current := 0
	if i >= 0 {
		current = c.items[i].Quantity
	}
	if quantity > MaxLineQuantity-current {
		return ErrQuantityTooLarge
	}
	if !fits(c.subtotal(), p.PriceCents, quantity) {
		return ErrCartTooLarge
	}

	if i >= 0 {
		c.items[i].Quantity += quantity
		return nil
	}
	c.items = append(c.items, domain.CartItem{
		ProductID:  p.ID,
		Name:       p.Name,
		Image:      p.Image,
		PriceCents: p.PriceCents,
		Quantity:   quantity,
	})
	return nil
}

// UpdateQuantity sets the quantity of productID, clamping at zero. Zero removes the line.
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		c.Remove(productID)
		return nil
	}
	i := c.index(productID)
	if i < 0 {
		return nil
	}
	if quantity > MaxLineQuantity {
		return ErrQuantityTooLarge
	}
	line := c.items[i]
	if !fits(c.subtotal()-line.LineTotalCents(), line.PriceCents, quantity) {
		return ErrCartTooLarge
	}
	c.items[i].Quantity = quantity
	return nil
}

func (c *Cart) Remove(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Items() []domain.CartItem {
	return append([]domain.CartItem(nil), c.items...)
}

func (c *Cart) Summary() domain.CartSummary {
	return Summarize(c.items)
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) index(productID string) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) subtotal() int64 {
	var total int64
	for _, item := range c.items {
		total += item.LineTotalCents()
	}
	return total
}

// fits reports whether quantity units at priceCents can join subtotal without
// passing MaxTotalCents.
func fits(subtotal, priceCents int64, quantity int) bool {
	if priceCents == 0 {
		return true
	}
	return int64(quantity) <= (MaxTotalCents-subtotal)/priceCents
}
