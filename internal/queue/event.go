// Package queue defines message payloads exchanged over the message broker.
package queue

// OTPRequestedEvent is published when a verification code is issued. The
// mail pipeline consumes it to deliver the code; the HTTP request has
// already succeeded by the time this is published.
type OTPRequestedEvent struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	ExpiresAt   string `json:"expires_at"`
	RequestedAt string `json:"requested_at"`
}

// BookingConfirmedEvent is published when a booking is successfully
// created. It carries enough information for downstream consumers to
// notify the customer without querying the primary database.
type BookingConfirmedEvent struct {
	RefNumber   string `json:"ref_number"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	FamilyName  string `json:"family_name"`
	Date        string `json:"bkg_date"`
	Time        string `json:"bkg_time"`
	ConfirmedAt string `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a booking is deleted by
// reference code.
type BookingCancelledEvent struct {
	RefNumber   string `json:"ref_number"`
	CancelledAt string `json:"cancelled_at"`
}
