package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminGetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAdminRepo(db)

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at", "last_login"}).
		AddRow(3, "marta", "$2a$12$hash", time.Now().UTC(), nil)
	mock.ExpectQuery("SELECT id, username, password_hash").
		WithArgs("marta").
		WillReturnRows(rows)

	admin, err := repo.GetByUsername(context.Background(), "marta")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), admin.ID)
	assert.Nil(t, admin.LastLogin)
}

func TestAdminUpsert_ReplacesPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAdminRepo(db)

	mock.ExpectExec("INSERT INTO admins").
		WithArgs("marta", "$2a$12$newhash").
		WillReturnResult(sqlmock.NewResult(0, 2)) // 2 rows: duplicate-key update

	err = repo.Upsert(context.Background(), "marta", "$2a$12$newhash")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminGetByUsername_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAdminRepo(db)

	mock.ExpectQuery("SELECT id, username, password_hash").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
