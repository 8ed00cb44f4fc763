package budget

import (
	"fmt"
	"time"
)

// Status is the budget lifecycle state. A budget holds exactly one status at
// a time; the transition of interest for the workflow is any -> confirmed.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusConfirmed, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Budget is a catering/event engagement with a client. The engine reads it;
// it never writes one.
type Budget struct {
	ID                  string    `yaml:"id" json:"id"`
	Name                string    `yaml:"name" json:"name"`
	ClientName          string    `yaml:"client_name" json:"clientName"`
	EventType           string    `yaml:"event_type,omitempty" json:"eventType,omitempty"`
	Status              Status    `yaml:"status" json:"status"`
	EventDate           time.Time `yaml:"event_date" json:"eventDate"`
	GuestCount          int       `yaml:"guest_count" json:"guestCount"`
	TotalAmount         float64   `yaml:"total_amount" json:"totalAmount"`
	MealsAmount         float64   `yaml:"meals_amount" json:"mealsAmount"`
	ActivitiesAmount    float64   `yaml:"activities_amount" json:"activitiesAmount"`
	TransportAmount     float64   `yaml:"transport_amount" json:"transportAmount"`
	AccommodationAmount float64   `yaml:"accommodation_amount" json:"accommodationAmount"`
	CreatedAt           time.Time `yaml:"created_at" json:"createdAt"`
	UpdatedAt           time.Time `yaml:"updated_at" json:"updatedAt"`
}

// Validate enforces the generator preconditions: positive guest count and a
// set event date. Violations are rejected here, never tolerated downstream.
func (b *Budget) Validate() error {
	if b.GuestCount <= 0 {
		return fmt.Errorf("guest count must be positive, got %d", b.GuestCount)
	}
	if b.EventDate.IsZero() {
		return fmt.Errorf("event date is not set")
	}
	return nil
}
