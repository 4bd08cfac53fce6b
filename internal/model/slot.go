package model

import "time"

// Slot represents a bookable (date, time-of-day) unit as stored in the
// `bkgsession` table. Slots are created in bulk for a whole month and are
// never deleted individually; SlotLimit bounds how many bookings the slot
// may hold.
//
// Fields:
//  ID        – primary key identifier.
//  Date      – calendar date of the slot.
//  Time      – time of day, "HH:MM:SS" as MySQL returns TIME columns.
//  SlotLimit – maximum simultaneous bookings (capacity, >= 0).
type Slot struct {
	ID        uint64    // bkgsession.id
	Date      time.Time // bkgsession.bkg_date
	Time      string    // bkgsession.bkg_time
	SlotLimit uint32    // bkgsession.slot_limit
}
