package model

import "time"

// Booking records a customer's reservation against a slot as stored in the
// `bookings` table. The reference code is the booking's public identifier:
// customers present it (optionally together with their family name) to
// retrieve, modify or cancel the booking without any account. Many bookings
// reference one slot; the pairing is logical, not a foreign key.
//
// Fields:
//  ID         – primary key identifier.
//  RefNumber  – unique random reference code.
//  Phone      – customer phone number.
//  Email      – customer email address.
//  FamilyName – party label used as the second lookup factor.
//  TableNo    – table preference, 0 when none was expressed.
//  Date       – slot date.
//  Time       – slot time of day, "HH:MM:SS".
//  CreatedAt  – creation timestamp.
type Booking struct {
	ID         uint64    // bookings.id
	RefNumber  string    // bookings.ref_number
	Phone      string    // bookings.phone
	Email      string    // bookings.email
	FamilyName string    // bookings.family_name
	TableNo    int       // bookings.table_no
	Date       time.Time // bookings.bkg_date
	Time       string    // bookings.bkg_time
	CreatedAt  time.Time // bookings.created_at
}
