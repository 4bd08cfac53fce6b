package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

const (
	testDate = "2025-03-15"
	testTime = "10:00:00"
)

func newMock(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookingRepo(db), mock
}

func expectSlotLock(mock sqlmock.Sqlmock, limit uint32) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT slot_limit FROM bkgsession WHERE bkg_date = ? AND bkg_time = ? FOR UPDATE`)).
		WithArgs(testDate, testTime).
		WillReturnRows(sqlmock.NewRows([]string{"slot_limit"}).AddRow(limit))
}

func expectBookingCount(mock sqlmock.Sqlmock, count uint32) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM bookings WHERE bkg_date = ? AND bkg_time = ?`)).
		WithArgs(testDate, testTime).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func TestBookingCreate_Success(t *testing.T) {
	repo, mock := newMock(t)

	b := model.Booking{RefNumber: "Ab3dEf9hIj", Phone: "5551234", Email: "a@b.com"}
	mock.ExpectBegin()
	expectSlotLock(mock, 5)
	expectBookingCount(mock, 2)
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(b.RefNumber, b.Phone, b.Email, "", 0, testDate, testTime).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), &b, testDate, testTime)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreate_SlotNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT slot_limit FROM bkgsession WHERE bkg_date = ? AND bkg_time = ? FOR UPDATE`)).
		WithArgs(testDate, testTime).
		WillReturnRows(sqlmock.NewRows([]string{"slot_limit"}))
	mock.ExpectRollback()

	b := model.Booking{RefNumber: "Ab3dEf9hIj", Phone: "5551234", Email: "a@b.com"}
	err := repo.Create(context.Background(), &b, testDate, testTime)
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreate_SlotFull(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	expectSlotLock(mock, 3)
	expectBookingCount(mock, 3) // at capacity
	mock.ExpectRollback()

	b := model.Booking{RefNumber: "Ab3dEf9hIj", Phone: "5551234", Email: "a@b.com"}
	err := repo.Create(context.Background(), &b, testDate, testTime)
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreate_DuplicateRef(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	expectSlotLock(mock, 5)
	expectBookingCount(mock, 0)
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	b := model.Booking{RefNumber: "Ab3dEf9hIj", Phone: "5551234", Email: "a@b.com"}
	err := repo.Create(context.Background(), &b, testDate, testTime)
	assert.ErrorIs(t, err, ErrDuplicateRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "ref_number", "phone", "email", "family_name", "table_no", "bkg_date", "bkg_time", "created_at",
	}).AddRow(1, "Ab3dEf9hIj", "5551234", "a@b.com", "Nguyen", 4,
		time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), testTime, time.Now().UTC())
}

func TestBookingGetByRef(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE ref_number = ?").
		WithArgs("Ab3dEf9hIj").
		WillReturnRows(bookingRows())

	b, err := repo.GetByRef(context.Background(), "Ab3dEf9hIj")
	require.NoError(t, err)
	assert.Equal(t, "5551234", b.Phone)
	assert.Equal(t, "a@b.com", b.Email)
	assert.Equal(t, "Nguyen", b.FamilyName)
	assert.Equal(t, 4, b.TableNo)
	assert.Equal(t, "2025-03-15", b.Date.Format("2006-01-02"))
}

func TestBookingGetByRef_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE ref_number = ?").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByRef(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingGetByRefAndFamily_RequiresBoth(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE ref_number = \\? AND family_name = \\?").
		WithArgs("Ab3dEf9hIj", "Wrong").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByRefAndFamily(context.Background(), "Ab3dEf9hIj", "Wrong")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func expectUpdateLookup(mock sqlmock.Sqlmock, ref string) *sqlmock.ExpectedQuery {
	return mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, bkg_date, bkg_time FROM bookings WHERE ref_number = ?`)).
		WithArgs(ref)
}

func currentSlotRow(id uint64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "bkg_date", "bkg_time"}).
		AddRow(id, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), testTime)
}

func TestBookingUpdate_OnlySuppliedFields(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	expectUpdateLookup(mock, "Ab3dEf9hIj").WillReturnRows(currentSlotRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings SET email = ? WHERE ref_number = ?`)).
		WithArgs("x@y.com", "Ab3dEf9hIj").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), "Ab3dEf9hIj", BookingUpdate{Email: "x@y.com"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingUpdate_SameSlotSkipsCapacityCheck(t *testing.T) {
	repo, mock := newMock(t)

	// Re-stating the booking's current date and time is not a move, so no
	// slot lock or count runs.
	mock.ExpectBegin()
	expectUpdateLookup(mock, "Ab3dEf9hIj").WillReturnRows(currentSlotRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings SET bkg_date = ?, bkg_time = ? WHERE ref_number = ?`)).
		WithArgs(testDate, testTime, "Ab3dEf9hIj").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), "Ab3dEf9hIj", BookingUpdate{Date: testDate, Time: testTime})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingUpdate_MoveChecksCapacity(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	expectUpdateLookup(mock, "Ab3dEf9hIj").WillReturnRows(currentSlotRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT slot_limit FROM bkgsession WHERE bkg_date = ? AND bkg_time = ? FOR UPDATE`)).
		WithArgs(testDate, "11:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"slot_limit"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM bookings WHERE bkg_date = ? AND bkg_time = ?`)).
		WithArgs(testDate, "11:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings SET bkg_time = ? WHERE ref_number = ?`)).
		WithArgs("11:00:00", "Ab3dEf9hIj").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), "Ab3dEf9hIj", BookingUpdate{Time: "11:00:00"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingUpdate_MoveToFullSlot(t *testing.T) {
	repo, mock := newMock(t)

	// Moving into a slot already at capacity must be refused, exactly like
	// creating there would be.
	mock.ExpectBegin()
	expectUpdateLookup(mock, "Ab3dEf9hIj").WillReturnRows(currentSlotRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT slot_limit FROM bkgsession WHERE bkg_date = ? AND bkg_time = ? FOR UPDATE`)).
		WithArgs("2025-03-16", testTime).
		WillReturnRows(sqlmock.NewRows([]string{"slot_limit"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM bookings WHERE bkg_date = ? AND bkg_time = ?`)).
		WithArgs("2025-03-16", testTime).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), "Ab3dEf9hIj", BookingUpdate{Date: "2025-03-16"})
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingUpdate_MoveToUnknownSlot(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	expectUpdateLookup(mock, "Ab3dEf9hIj").WillReturnRows(currentSlotRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT slot_limit FROM bkgsession WHERE bkg_date = ? AND bkg_time = ? FOR UPDATE`)).
		WithArgs("2099-01-01", testTime).
		WillReturnRows(sqlmock.NewRows([]string{"slot_limit"}))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), "Ab3dEf9hIj", BookingUpdate{Date: "2099-01-01"})
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingUpdate_NoFields(t *testing.T) {
	repo, _ := newMock(t)

	// A zero table preference counts as "not provided".
	err := repo.Update(context.Background(), "Ab3dEf9hIj", BookingUpdate{TableNo: 0})
	assert.ErrorIs(t, err, ErrNoFields)
}

func TestBookingUpdate_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	expectUpdateLookup(mock, "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "bkg_date", "bkg_time"}))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), "missing", BookingUpdate{Email: "x@y.com"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingDelete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM bookings WHERE ref_number = ?`)).
		WithArgs("Ab3dEf9hIj").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM bookings WHERE id = ?`)).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "Ab3dEf9hIj")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingDelete_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM bookings WHERE ref_number = ?`)).
		WithArgs("never-created").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "never-created")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingListAll_Empty(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings ORDER BY").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "ref_number", "phone", "email", "family_name", "table_no", "bkg_date", "bkg_time", "created_at",
		}))

	bookings, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}
