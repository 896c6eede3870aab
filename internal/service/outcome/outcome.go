// Package outcome decides what the payment success and cancellation pages show.
package outcome

import (
	"net/url"
	"sync"
	"time"
)

const (
	// RedirectDelay is how long the interim success page waits before moving on.
	RedirectDelay = 2 * time.Second

	ShippingPath          = "/shipping-details"
	ShippingRecordPath    = "/api/shipping-details"
	ShippingCompleteParam = "shipping_complete"
	SessionIDParam        = "session_id"
)

// Step is one entry of the post-purchase timeline.
type Step struct {
	Title       string
	Description string
}

// NextSteps is shown once shipping details are captured, in order.
var NextSteps = []Step{
	{Title: "Order Processing", Description: "We're preparing your handcrafted item with care."},
	{Title: "Shipping", Description: "You'll receive tracking information within 1-2 business days."},
	{Title: "Delivery", Description: "Your order will arrive within 5-7 business days."},
}

// Success is the view model of the payment success page.
type Success struct {
	// Redirecting is set while shipping details are still missing.
	Redirecting bool
	RedirectTo  string
	Delay       time.Duration
	Steps       []Step
	RecordURL   string
	HomeURL     string
}

// ForSuccess inspects the query of /payment-success.
func ForSuccess(query url.Values) Success {
	if query.Get(ShippingCompleteParam) != "true" {
		target := ShippingPath
		if sid := query.Get(SessionIDParam); sid != "" {
			target += "?" + url.Values{SessionIDParam: {sid}}.Encode()
		}
		return Success{Redirecting: true, RedirectTo: target, Delay: RedirectDelay}
	}
	record := ShippingRecordPath
	if sid := query.Get(SessionIDParam); sid != "" {
		record += "?" + url.Values{SessionIDParam: {sid}}.Encode()
	}
	return Success{Steps: NextSteps, RecordURL: record, HomeURL: "/"}
}

// Canceled is the static view of /payment-canceled.
type Canceled struct {
	Message string
	HomeURL string
}

func ForCanceled() Canceled {
	return Canceled{
		Message: "Your payment was canceled. No charge has been made.",
		HomeURL: "/",
	}
}

// ScheduleRedirect calls navigate with target after delay. The returned stop
// func cancels a pending navigation and reports whether it did so; after stop
// returns, navigate is never called.
func ScheduleRedirect(delay time.Duration, target string, navigate func(string)) (stop func() bool) {
	var (
		mu      sync.Mutex
		stopped bool
	)
	timer := time.AfterFunc(delay, func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		stopped = true
		navigate(target)
	})
	return func() bool {
		mu.Lock()
		defer mu.Unlock()
		timer.Stop()
		if stopped {
			return false
		}
		stopped = true
		return true
	}
}
