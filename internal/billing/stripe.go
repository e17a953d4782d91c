// Package billing verifies and decodes Stripe webhook events.
package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/RoyKeane94/toad/internal/entities"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Event types handled by the service.
const (
	EventCheckoutCompleted    = "checkout.session.completed"
	EventSubscriptionCreated  = "customer.subscription.created"
	EventSubscriptionUpdated  = "customer.subscription.updated"
	EventSubscriptionDeleted  = "customer.subscription.deleted"
	EventInvoicePaymentFailed = "invoice.payment_failed"
)

// ErrInvalidSignature is returned when the payload is not signed by Stripe.
var ErrInvalidSignature = errors.New("invalid stripe signature")

// Event is a verified webhook event with its decoded object.
type Event struct {
	ID           string
	Type         string
	Checkout     *Checkout
	Subscription *Subscription
	Invoice      *Invoice
}

// Checkout is a completed checkout session.
type Checkout struct {
	UserID         string
	CustomerID     string
	SubscriptionID string
	Plan           entities.Plan
	GroupName      string
	Seats          int
}

// Subscription is the state of a Stripe subscription.
type Subscription struct {
	ID         string
	CustomerID string
	Status     string
	PriceID    string
	Quantity   int
}

// Live reports whether the subscription currently grants access.
func (s Subscription) Live() bool {
	return s.Status == string(stripe.SubscriptionStatusActive) || s.Status == string(stripe.SubscriptionStatusTrialing)
}

// Ended reports whether the subscription no longer grants access.
func (s Subscription) Ended() bool {
	switch stripe.SubscriptionStatus(s.Status) {
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusUnpaid, stripe.SubscriptionStatusIncompleteExpired:
		return true
	}
	return false
}

// Invoice is a failed invoice notification.
type Invoice struct {
	ID         string
	CustomerID string
}

// Verifier checks Stripe-Signature headers with the endpoint secret.
type Verifier struct {
	secret string
}

// NewVerifier constructs a Verifier.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify validates the payload signature and decodes the event object.
func (v *Verifier) Verify(payload []byte, signature string) (Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return Decode(ev)
}

// Decode converts a Stripe event into an Event.
func Decode(ev stripe.Event) (Event, error) {
	out := Event{ID: ev.ID, Type: string(ev.Type)}
	if ev.Data == nil {
		return out, nil
	}

	switch out.Type {
	case EventCheckoutCompleted:
		var s stripe.CheckoutSession
		if err := json.Unmarshal(ev.Data.Raw, &s); err != nil {
			return out, fmt.Errorf("decode checkout session: %w", err)
		}
		out.Checkout = decodeCheckout(s)
	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionDeleted:
		var s stripe.Subscription
		if err := json.Unmarshal(ev.Data.Raw, &s); err != nil {
			return out, fmt.Errorf("decode subscription: %w", err)
		}
		out.Subscription = decodeSubscription(s)
	case EventInvoicePaymentFailed:
		var inv stripe.Invoice
		if err := json.Unmarshal(ev.Data.Raw, &inv); err != nil {
			return out, fmt.Errorf("decode invoice: %w", err)
		}
		out.Invoice = &Invoice{ID: inv.ID}
		if inv.Customer != nil {
			out.Invoice.CustomerID = inv.Customer.ID
		}
	}
	return out, nil
}

func decodeCheckout(s stripe.CheckoutSession) *Checkout {
	c := &Checkout{
		UserID:    s.ClientReferenceID,
		Plan:      entities.Plan(s.Metadata["plan"]),
		GroupName: s.Metadata["group_name"],
		Seats:     1,
	}
	if s.Customer != nil {
		c.CustomerID = s.Customer.ID
	}
	if s.Subscription != nil {
		c.SubscriptionID = s.Subscription.ID
	}
	if n, err := strconv.Atoi(s.Metadata["seats"]); err == nil && n > 0 {
		c.Seats = n
	}
	return c
}

func decodeSubscription(s stripe.Subscription) *Subscription {
	out := &Subscription{ID: s.ID, Status: string(s.Status)}
	if s.Customer != nil {
		out.CustomerID = s.Customer.ID
	}
	if s.Items != nil && len(s.Items.Data) > 0 {
		item := s.Items.Data[0]
		out.Quantity = int(item.Quantity)
		if item.Price != nil {
			out.PriceID = item.Price.ID
		}
	}
	return out
}
