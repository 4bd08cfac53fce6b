package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// BookingRepo provides CRUD operations for bookings. A booking binds a
// customer (phone, email, family name, table preference) to a slot and is
// publicly identified by its unique reference code. All timestamps are
// stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, ref_number, phone, email, family_name, table_no, bkg_date, bkg_time, created_at`

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// Create inserts a booking, enforcing slot capacity atomically. Inside one
// transaction it locks the slot row, counts existing bookings for the slot
// and inserts only when the count is below the slot's capacity. Concurrent
// creates for the same slot therefore serialize on the row lock and cannot
// overbook. It returns ErrSlotNotFound when no slot exists for the
// (date, time) pair, ErrSlotFull at capacity, and ErrDuplicateRef when the
// reference code collides with an existing booking, in which case the
// caller should allocate a fresh code and retry.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking, date, timeOfDay string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var limit uint32
	err = tx.QueryRowContext(ctx,
		`SELECT slot_limit FROM bkgsession WHERE bkg_date = ? AND bkg_time = ? FOR UPDATE`,
		date, timeOfDay,
	).Scan(&limit)
	if err == sql.ErrNoRows {
		return ErrSlotNotFound
	}
	if err != nil {
		return err
	}

	var count uint32
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE bkg_date = ? AND bkg_time = ?`,
		date, timeOfDay,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count >= limit {
		return ErrSlotFull
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (ref_number, phone, email, family_name, table_no, bkg_date, bkg_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.RefNumber, b.Phone, b.Email, b.FamilyName, b.TableNo, date, timeOfDay,
	)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == mysqlDuplicateEntry {
			return ErrDuplicateRef
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return tx.Commit()
}

// GetByRef loads a booking by its reference code alone. It returns
// ErrBookingNotFound when no row matches.
func (r *BookingRepo) GetByRef(ctx context.Context, ref string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE ref_number = ?`
	return r.getOne(ctx, q, ref)
}

// GetByRefAndFamily loads a booking by the (reference code, family name)
// pair, requiring an exact match on both. This is the stricter default
// lookup: the family name authenticates the caller against data only the
// original booker would know. It returns ErrBookingNotFound when no row
// matches, without distinguishing which factor failed.
func (r *BookingRepo) GetByRefAndFamily(ctx context.Context, ref, familyName string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE ref_number = ? AND family_name = ?`
	return r.getOne(ctx, q, ref, familyName)
}

func (r *BookingRepo) getOne(ctx context.Context, q string, args ...interface{}) (*model.Booking, error) {
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&b.ID, &b.RefNumber, &b.Phone, &b.Email, &b.FamilyName, &b.TableNo,
		&b.Date, &b.Time, &b.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// BookingUpdate carries the optional fields of a partial update. Empty
// strings mean "leave unchanged". TableNo follows the same rule: zero
// counts as not provided, so a table preference cannot be reset to zero
// through this path.
type BookingUpdate struct {
	Date       string
	Time       string
	Phone      string
	Email      string
	FamilyName string
	TableNo    int
}

// empty reports whether no field of the update is set.
func (u BookingUpdate) empty() bool {
	return u.Date == "" && u.Time == "" && u.Phone == "" && u.Email == "" &&
		u.FamilyName == "" && u.TableNo == 0
}

// Update applies a partial update to the booking with the given reference
// code. Only supplied fields are modified. It returns ErrNoFields when the
// update carries nothing and ErrBookingNotFound when the reference does
// not match any row. When the update moves the booking to a different
// slot, the target slot goes through the same capacity gate as Create:
// the slot row is locked, bookings are counted and the move is refused
// with ErrSlotNotFound or ErrSlotFull, so an update cannot push a slot
// past its capacity.
func (r *BookingRepo) Update(ctx context.Context, ref string, u BookingUpdate) (err error) {
	if u.empty() {
		return ErrNoFields
	}

	set := make([]string, 0, 6)
	args := make([]interface{}, 0, 7)
	if u.Date != "" {
		set = append(set, "bkg_date = ?")
		args = append(args, u.Date)
	}
	if u.Time != "" {
		set = append(set, "bkg_time = ?")
		args = append(args, u.Time)
	}
	if u.Phone != "" {
		set = append(set, "phone = ?")
		args = append(args, u.Phone)
	}
	if u.Email != "" {
		set = append(set, "email = ?")
		args = append(args, u.Email)
	}
	if u.FamilyName != "" {
		set = append(set, "family_name = ?")
		args = append(args, u.FamilyName)
	}
	if u.TableNo != 0 {
		set = append(set, "table_no = ?")
		args = append(args, u.TableNo)
	}
	args = append(args, ref)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Check existence first so a missing reference is reported instead of
	// silently succeeding with zero rows affected. The current slot is
	// loaded alongside to detect a move.
	var id uint64
	var curDate time.Time
	var curTime string
	err = tx.QueryRowContext(ctx,
		`SELECT id, bkg_date, bkg_time FROM bookings WHERE ref_number = ?`, ref,
	).Scan(&id, &curDate, &curTime)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}

	targetDate, targetTime := curDate.Format("2006-01-02"), curTime
	if u.Date != "" {
		targetDate = u.Date
	}
	if u.Time != "" {
		targetTime = u.Time
	}
	if targetDate != curDate.Format("2006-01-02") || targetTime != curTime {
		var limit uint32
		err = tx.QueryRowContext(ctx,
			`SELECT slot_limit FROM bkgsession WHERE bkg_date = ? AND bkg_time = ? FOR UPDATE`,
			targetDate, targetTime,
		).Scan(&limit)
		if err == sql.ErrNoRows {
			return ErrSlotNotFound
		}
		if err != nil {
			return err
		}

		// The booking still sits in its old slot, so the count covers
		// everyone already occupying the target.
		var count uint32
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM bookings WHERE bkg_date = ? AND bkg_time = ?`,
			targetDate, targetTime,
		).Scan(&count)
		if err != nil {
			return err
		}
		if count >= limit {
			return ErrSlotFull
		}
	}

	q := `UPDATE bookings SET ` + strings.Join(set, ", ") + ` WHERE ref_number = ?`
	if _, err = tx.ExecContext(ctx, q, args...); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes the booking with the given reference code. It checks
// existence first and returns ErrBookingNotFound when no row matches.
func (r *BookingRepo) Delete(ctx context.Context, ref string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var id uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM bookings WHERE ref_number = ?`, ref).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// ListAll returns every booking ordered by slot date and time. An empty
// slice (not nil) is returned when no bookings exist.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY bkg_date, bkg_time, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.RefNumber, &b.Phone, &b.Email, &b.FamilyName, &b.TableNo,
			&b.Date, &b.Time, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
