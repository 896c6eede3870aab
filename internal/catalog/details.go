package catalog

// Details is descriptive metadata rendered on the product detail page.
type Details struct {
	Features       []string
	Specifications map[string]string
}

var categoryDetails = map[string]Details{
	"Ceramics": {
		Features: []string{
			"100% handcrafted ceramic",
			"Microwave and dishwasher safe",
			"12 oz capacity",
			"Comfortable ergonomic handle",
			"Lead-free glaze",
		},
		Specifications: map[string]string{
			"Material":   "High-quality ceramic",
			"Capacity":   "12 oz (355ml)",
			"Dimensions": `4.5" H x 3.5" W`,
			"Weight":     "0.8 lbs",
			"Care":       "Dishwasher and microwave safe",
		},
	},
	"Home Decor": {
		Features: []string{
			"Handwoven natural materials",
			"Sustainable and eco-friendly",
			"Sturdy construction",
			"Versatile storage solution",
			"Beautiful decorative accent",
		},
		Specifications: map[string]string{
			"Material":   "Natural woven fibers",
			"Dimensions": `16" L x 12" W x 10" H`,
			"Weight":     "2.5 lbs",
			"Care":       "Spot clean only",
		},
	},
	"Kitchen": {
		Features: []string{
			"Live edge design",
			"Food-safe finish",
			"Sustainably sourced hardwood",
			"Natural wood grain patterns",
			"Dual-purpose: cutting and serving",
		},
		Specifications: map[string]string{
			"Material":   "Hardwood (Walnut/Maple)",
			"Dimensions": `18" L x 12" W x 1.5" H`,
			"Weight":     "4.2 lbs",
			"Care":       "Hand wash only, oil monthly",
		},
	},
}

var genericDetails = Details{
	Features: []string{
		"Handcrafted by independent artisans",
		"Made from sustainable materials",
	},
	Specifications: map[string]string{
		"Care": "See product label",
	},
}

// DetailsFor returns the metadata for category, or a generic set for unknown categories.
// The returned value is a copy and safe to mutate.
func DetailsFor(category string) Details {
	d, ok := categoryDetails[category]
	if !ok {
		d = genericDetails
	}
	specs := make(map[string]string, len(d.Specifications))
	for k, v := range d.Specifications {
		specs[k] = v
	}
	return Details{
		Features:       append([]string(nil), d.Features...),
		Specifications: specs,
	}
}
