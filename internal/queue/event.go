// Package queue defines message payloads exchanged over the message broker.
package queue

// AppointmentScheduledEvent is published when an appointment is created or
// rescheduled. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type AppointmentScheduledEvent struct {
	AppointmentID uint64 `json:"appointment_id"`
	Title         string `json:"title"`
	Type          string `json:"type"`
	Location      string `json:"location"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	CustomerID    uint64 `json:"customer_id"`
	UserID        uint64 `json:"user_id"`
	ContactID     uint64 `json:"contact_id"`
	Action        string `json:"action"` // "created" or "rescheduled"
	OccurredAt    string `json:"occurred_at"`
}
