package catalog

import "storefront/internal/domain"

var seedReviews = map[string][]domain.Review{
	"1": {
		{ID: "1", Name: "Sarah M.", Rating: 5, Comment: "Absolutely love this mug! The quality is excellent and it feels great in my hands. Perfect for my morning coffee routine.", Date: "2024-01-15"},
		{ID: "2", Name: "John D.", Rating: 4, Comment: "Great mug, very well made. The only reason I'm not giving 5 stars is because it's a bit smaller than I expected.", Date: "2024-01-10"},
	},
	"2": {
		{ID: "3", Name: "Lisa K.", Rating: 5, Comment: "Beautiful basket! Perfect for organizing my living room and looks great as decor too.", Date: "2024-01-12"},
	},
	"3": {
		{ID: "4", Name: "Mike R.", Rating: 5, Comment: "Outstanding cutting board. The live edge design is gorgeous and it's very functional. Worth every penny!", Date: "2024-01-08"},
	},
}

// SeedReviews returns a copy of the initial reviews for productID, newest first.
func SeedReviews(productID string) []domain.Review {
	return append([]domain.Review(nil), seedReviews[productID]...)
}
