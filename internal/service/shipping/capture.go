package shipping

import (
	"context"
	"errors"
	"net/url"
)

type State int

const (
	Collecting State = iota
	Submitting
	Completed
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Submitting:
		return "submitting"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// ConfirmationPath is where a completed capture navigates to.
const ConfirmationPath = "/payment-success"

var ErrCaptureClosed = errors.New("shipping capture already completed")

// Capture drives one shipping form through collecting → submitting → completed.
type Capture struct {
	svc       *Service
	sessionID string
	state     State
	form      Form
	err       error
}

// NewCapture starts a capture for the session carried on the payment redirect.
func (s *Service) NewCapture(sessionID string) *Capture {
	return &Capture{svc: s, sessionID: sessionID, state: Collecting, form: NewForm()}
}

func (c *Capture) State() State { return c.state }

// Form returns the last submitted form, for re-rendering after an error.
func (c *Capture) Form() Form { return c.form }

// Err is the user-visible error from the last failed submission.
func (c *Capture) Err() error { return c.err }

// Submit validates and persists form. On success it returns the redirect target;
// on failure the capture stays in Collecting and the error is returned.
func (c *Capture) Submit(ctx context.Context, form Form) (string, error) {
	if c.state == Completed {
		return "", ErrCaptureClosed
	}
	c.form = form
	c.state = Submitting
	if _, err := c.svc.Save(ctx, form, c.sessionID); err != nil {
		c.state = Collecting
		c.err = err
		return "", err
	}
	c.state = Completed
	c.err = nil
	q := url.Values{}
	q.Set("shipping_complete", "true")
	return ConfirmationPath + "?" + q.Encode(), nil
}
