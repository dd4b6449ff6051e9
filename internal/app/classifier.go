// internal/app/classifier.go
package app

import (
	"strings"

	"shop_notifier/internal/domain/mailer"
)

// FailureKind is the engine's two-bucket verdict on a failed send.
type FailureKind string

const (
	// FailureTransient leaves the record PENDING; the next scheduled cycle
	// retries it with the same content.
	FailureTransient FailureKind = "TRANSIENT"
	// FailurePermanent terminally fails the record; retrying would resend the
	// same broken message forever.
	FailurePermanent FailureKind = "PERMANENT"
)

// Classifier decides whether a transport failure is worth retrying. The code
// set and message markers are configurable because transport wording drifts;
// anything matching neither is permanent, so an unrecognized failure can
// never retry indefinitely.
type Classifier struct {
	transientCodes   map[string]struct{}
	transientMarkers []string
}

func NewClassifier(transientCodes []string, transientMarkers []string) *Classifier {
	codes := make(map[string]struct{}, len(transientCodes))
	for _, c := range transientCodes {
		codes[c] = struct{}{}
	}
	markers := make([]string, len(transientMarkers))
	for i, m := range transientMarkers {
		markers[i] = strings.ToLower(m)
	}
	return &Classifier{transientCodes: codes, transientMarkers: markers}
}

// DefaultClassifier covers envelope/connection level error codes and the
// usual temporary-failure wording of SMTP transports.
func DefaultClassifier() *Classifier {
	return NewClassifier(
		[]string{"ECONNECTION", "EENVELOPE", "ETIMEDOUT", "ECONNRESET", "EDNS", "ESOCKET"},
		[]string{
			"timeout",
			"timed out",
			"connection refused",
			"connection reset",
			"temporarily",
			"try again later",
			"too many connections",
			"network is unreachable",
			"i/o timeout",
			"context canceled",
			"context deadline exceeded",
		},
	)
}

// Classify judges a non-success outcome. Calling it with a successful outcome
// is a programming error and yields PERMANENT, the safe direction.
func (c *Classifier) Classify(outcome mailer.Outcome) FailureKind {
	if _, ok := c.transientCodes[outcome.ErrorCode]; ok {
		return FailureTransient
	}
	msg := strings.ToLower(outcome.ErrorMessage)
	for _, marker := range c.transientMarkers {
		if strings.Contains(msg, marker) {
			return FailureTransient
		}
	}
	return FailurePermanent
}
