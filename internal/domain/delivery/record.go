// internal/domain/delivery/record.go
package delivery

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Family identifies a category of delivery record. Every family shares the
// same scan -> build -> dispatch -> transition pipeline but carries its own
// payload and trigger cadence.
type Family string

const (
	FamilySignup         Family = "signup"
	FamilyOrderPlaced    Family = "order_placed"
	FamilyOrderDelivered Family = "order_delivered"
	FamilyPromotion      Family = "promotion"
	FamilyPlanRequest    Family = "plan_request"
)

// Families lists every known record family, in scan order.
var Families = []Family{
	FamilySignup,
	FamilyOrderPlaced,
	FamilyOrderDelivered,
	FamilyPromotion,
	FamilyPlanRequest,
}

// Status is the delivery lifecycle state of a record.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSent      Status = "SENT"      // terminal success for mail families
	StatusProcessed Status = "PROCESSED" // terminal success for plan requests
	StatusFailed    Status = "FAILED"    // terminal permanent failure
)

// SuccessStatus returns the terminal success status for the family.
func (f Family) SuccessStatus() Status {
	if f == FamilyPlanRequest {
		return StatusProcessed
	}
	return StatusSent
}

// IsTerminal reports whether a record in this status is done forever.
func (s Status) IsTerminal() bool {
	return s == StatusSent || s == StatusProcessed || s == StatusFailed
}

// ValidTransition reports whether moving a record from one status to another
// is allowed. Records only move forward: PENDING to a terminal state. A
// terminal record never becomes eligible again.
func ValidTransition(from, to Status) bool {
	return from == StatusPending && to.IsTerminal()
}

// Record is the unit of work for the notification engine. Records are created
// in PENDING by the storefront's CRUD layer and mutated exclusively through
// Repository.Transition.
type Record struct {
	ID             int64
	Family         Family
	RecipientEmail string
	RecipientName  string
	Status         Status
	Payload        json.RawMessage // family-specific, may be empty
	ProcessedAt    sql.NullTime    // set iff status is terminal
	LastError      sql.NullString  // set only on permanent failure
	CreatedAt      time.Time
}

// OrderItem is a single purchased line item.
type OrderItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderPayload is carried by order_placed and order_delivered records.
type OrderPayload struct {
	OrderID string      `json:"order_id"`
	Items   []OrderItem `json:"items"`
	Total   float64     `json:"total"`
}

// PlanRequestPayload is carried by plan_request records.
type PlanRequestPayload struct {
	SkinType    string   `json:"skin_type"`
	Concerns    []string `json:"concerns"`
	MorningTime string   `json:"morning_time"`
	EveningTime string   `json:"evening_time"`
}

// PromotionPayload carries the campaign text authored in the admin console.
type PromotionPayload struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// OrderPayload decodes the record's payload as an order.
func (r *Record) OrderPayload() (*OrderPayload, error) {
	var p OrderPayload
	if err := json.Unmarshal(r.Payload, &p); err != nil {
		return nil, fmt.Errorf("decoding order payload for record %d: %w", r.ID, err)
	}
	return &p, nil
}

// PlanRequestPayload decodes the record's payload as a plan request.
func (r *Record) PlanRequestPayload() (*PlanRequestPayload, error) {
	var p PlanRequestPayload
	if err := json.Unmarshal(r.Payload, &p); err != nil {
		return nil, fmt.Errorf("decoding plan request payload for record %d: %w", r.ID, err)
	}
	return &p, nil
}

// PromotionPayload decodes the record's payload as a promotion campaign.
func (r *Record) PromotionPayload() (*PromotionPayload, error) {
	var p PromotionPayload
	if err := json.Unmarshal(r.Payload, &p); err != nil {
		return nil, fmt.Errorf("decoding promotion payload for record %d: %w", r.ID, err)
	}
	return &p, nil
}
