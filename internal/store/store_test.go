package store

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies the sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}

func TestGormStore_FindOverlapping(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	// The half-open overlap predicate compares the candidate end against
	// start_time and the candidate start against end_time.
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE `).
		WithArgs("room-1", string(model.StatusActive), start.Add(time.Hour), start).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "status"}).
			AddRow("b-1", "room-1", "active"))

	bookings, err := s.FindOverlapping(context.Background(), "room-1", start, end, "")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "b-1", bookings[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_FindOverlappingExcludesSelf(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE .*id <> \$5`).
		WithArgs("room-1", string(model.StatusActive), Any{}, Any{}, "b-edit").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	bookings, err := s.FindOverlapping(context.Background(), "room-1", start, start.Add(time.Hour), "b-edit")
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_CreateBookingRechecksInsideTransaction(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	b := &model.Booking{
		ID:        "b-new",
		RoomID:    "room-1",
		UserID:    "user-1",
		Title:     "standup",
		StartTime: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC),
		Attendees: 3,
		Status:    model.StatusActive,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
		WithArgs("room-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE `).
		WithArgs("room-1", string(model.StatusActive), b.EndTime, b.StartTime).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := s.CreateBooking(context.Background(), b)
	assert.ErrorIs(t, err, ErrOverlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_CancelFutureSiblings(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET `).
		WithArgs(string(model.StatusCancelled), Any{}, "seed-1", "parent-1", now, string(model.StatusActive)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := s.CancelFutureSiblings(context.Background(), []string{"seed-1", "parent-1"}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_CancelFutureSiblingsNoParents(t *testing.T) {
	gormDB, _ := newTestDB(t)
	s := NewGormStore(gormDB)

	n, err := s.CancelFutureSiblings(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGormStore_UpdateStatusNotFound(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET `).
		WithArgs(string(model.StatusCancelled), Any{}, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := s.UpdateStatus(context.Background(), "missing", model.StatusCancelled)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_CompleteElapsed(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET `).
		WithArgs(string(model.StatusCompleted), Any{}, string(model.StatusActive), now).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := s.CompleteElapsed(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
