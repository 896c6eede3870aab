package domain

// CheckoutSession is the provider-side session created for one checkout attempt.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
