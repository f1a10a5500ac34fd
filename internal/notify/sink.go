package notify

import "context"

// DeliveryStatus is reported back to the client on submission responses.
// Delivery is best-effort: a failed send never fails the submission.
type DeliveryStatus string

const (
	StatusSent    DeliveryStatus = "sent"
	StatusFailed  DeliveryStatus = "failed"
	StatusNotSent DeliveryStatus = "not_sent"
)

// Sink dispatches a short text message to a phone number.
type Sink interface {
	Send(ctx context.Context, phone, message string) error
}

// Noop discards every message. Used when no SMS provider is configured.
type Noop struct{}

func (Noop) Send(ctx context.Context, phone, message string) error { return nil }
