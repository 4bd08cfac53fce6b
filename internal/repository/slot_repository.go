package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// DailyTimes is the fixed catalog of bookable times of day: on the hour
// from 09:00 to 17:00 inclusive. Month creation crosses every calendar day
// with this list.
var DailyTimes = []string{
	"09:00:00", "10:00:00", "11:00:00", "12:00:00", "13:00:00",
	"14:00:00", "15:00:00", "16:00:00", "17:00:00",
}

// SlotRepo provides access to the bkgsession table, which defines which
// (date, time) pairs are bookable and with what capacity. All dates are
// handled in UTC.
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo returns a new SlotRepo bound to the given database.
func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{db: db} }

// CreateMonth inserts a slot row for every (day, time) combination in the
// given month with the given capacity. The insert is idempotent: rows that
// already exist are skipped and their capacity is left untouched, so the
// operation can be re-run safely. It returns the number of days in the
// month and the number of combinations attempted.
func (r *SlotRepo) CreateMonth(ctx context.Context, month, year int, slotLimit uint32) (days, combos int, err error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days = first.AddDate(0, 1, -1).Day()
	combos = days * len(DailyTimes)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// One multi-row statement for the whole month keeps the bulk insert a
	// single round trip. INSERT IGNORE skips duplicates on the
	// (bkg_date, bkg_time) unique key.
	var b strings.Builder
	b.WriteString(`INSERT IGNORE INTO bkgsession (bkg_date, bkg_time, slot_limit) VALUES `)
	args := make([]interface{}, 0, combos*3)
	for d := 1; d <= days; d++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, d)
		for _, t := range DailyTimes {
			if len(args) > 0 {
				b.WriteString(",")
			}
			b.WriteString("(?, ?, ?)")
			args = append(args, date, t, slotLimit)
		}
	}
	if _, err = tx.ExecContext(ctx, b.String(), args...); err != nil {
		return 0, 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, 0, err
	}
	return days, combos, nil
}

// ListByMonth returns every slot whose date falls inside the given month,
// ordered by date then time.
func (r *SlotRepo) ListByMonth(ctx context.Context, month, year int) ([]model.Slot, error) {
	const q = `SELECT id, bkg_date, bkg_time, slot_limit
	           FROM bkgsession
	           WHERE YEAR(bkg_date) = ? AND MONTH(bkg_date) = ?
	           ORDER BY bkg_date, bkg_time`
	rows, err := r.db.QueryContext(ctx, q, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]model.Slot, 0)
	for rows.Next() {
		var s model.Slot
		if err := rows.Scan(&s.ID, &s.Date, &s.Time, &s.SlotLimit); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// GetByDateTime returns all capacity rows for one (date, time) pair. With
// the unique key in place there is at most one, but the result stays a
// slice to match the public contract of the slot-limit endpoint.
func (r *SlotRepo) GetByDateTime(ctx context.Context, date, timeOfDay string) ([]model.Slot, error) {
	const q = `SELECT id, bkg_date, bkg_time, slot_limit
	           FROM bkgsession
	           WHERE bkg_date = ? AND bkg_time = ?`
	rows, err := r.db.QueryContext(ctx, q, date, timeOfDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]model.Slot, 0)
	for rows.Next() {
		var s model.Slot
		if err := rows.Scan(&s.ID, &s.Date, &s.Time, &s.SlotLimit); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// SlotAvailability pairs a slot with its remaining capacity. Availability
// is capacity minus the current booking count; it is computed with a left
// join for display and is not the write-path capacity gate.
type SlotAvailability struct {
	Date      string
	Time      string
	Available int64
}

// AvailabilityByMonth computes remaining availability for every slot in
// the month, ordered by date then time. slot_limit is cast to SIGNED
// before the subtraction: it is stored unsigned, and unsigned arithmetic
// would make MySQL error out instead of producing a negative value if a
// slot ever ends up over capacity.
func (r *SlotRepo) AvailabilityByMonth(ctx context.Context, month, year int) ([]SlotAvailability, error) {
	const q = `SELECT s.bkg_date, s.bkg_time, CAST(s.slot_limit AS SIGNED) - COUNT(b.id)
	           FROM bkgsession s
	           LEFT JOIN bookings b ON b.bkg_date = s.bkg_date AND b.bkg_time = s.bkg_time
	           WHERE YEAR(s.bkg_date) = ? AND MONTH(s.bkg_date) = ?
	           GROUP BY s.bkg_date, s.bkg_time, s.slot_limit
	           ORDER BY s.bkg_date, s.bkg_time`
	rows, err := r.db.QueryContext(ctx, q, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SlotAvailability, 0)
	for rows.Next() {
		var a SlotAvailability
		var date time.Time
		if err := rows.Scan(&date, &a.Time, &a.Available); err != nil {
			return nil, err
		}
		a.Date = date.Format("2006-01-02")
		out = append(out, a)
	}
	return out, rows.Err()
}
