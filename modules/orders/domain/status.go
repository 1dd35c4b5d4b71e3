package domain

import "fmt"

// Status is the payment lifecycle state of an order.
// PROCESSING is the only non-terminal state; an order settles exactly
// once, to COMPLETED or FAILED.
type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

func (s Status) String() string { return string(s) }

// IsTerminal reports whether the order has settled.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ParseStatus validates a stored status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusProcessing, StatusCompleted, StatusFailed:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown order status %q", s)
	}
}
