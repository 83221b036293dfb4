package otp

import (
	"strings"
	"time"
)

// Channel identifies how a one-time code reaches its owner. Modeled as a
// closed enum so a future channel (push, WhatsApp) extends delivery without
// re-deriving detection heuristics at every call site.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
)

// DetectChannel classifies an identifier. The "contains @" rule is the
// externally observable contract; keep it even when adding channels.
func DetectChannel(identifier string) Channel {
	if strings.Contains(identifier, "@") {
		return ChannelEmail
	}
	return ChannelPhone
}

// Record is a live one-time code. At most one exists per identifier; a
// successful verify consumes it.
type Record struct {
	Code   string
	Expiry time.Time
}

// Result is the caller-visible outcome of a send or verify. Failures carry a
// single generic message so callers cannot distinguish an unknown identifier
// from a wrong code.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
