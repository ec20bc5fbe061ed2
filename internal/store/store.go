package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/model"
)

// Sentinel errors returned by store implementations. Callers map these onto
// their own error taxonomy.
var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrOverlap is returned by transactional writes when an active booking
	// already occupies part of the requested interval.
	ErrOverlap = errors.New("store: overlapping active booking")
)

// Store defines the interface for all database operations.
type Store interface {
	// Rooms
	GetRoom(ctx context.Context, id string) (*model.Room, error)
	ListRooms(ctx context.Context, filter RoomFilter) ([]model.Room, error)
	CreateRoom(ctx context.Context, room *model.Room) error
	UpdateRoom(ctx context.Context, room *model.Room) error
	DeleteRoom(ctx context.Context, id string) error
	CountFutureActiveBookings(ctx context.Context, roomID string, now time.Time) (int64, error)

	// Bookings
	FindOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) ([]model.Booking, error)
	CreateBooking(ctx context.Context, b *model.Booking) error
	SaveBooking(ctx context.Context, b *model.Booking) error
	InsertBatch(ctx context.Context, bookings []model.Booking) error
	FindBookingByID(ctx context.Context, id string) (*model.Booking, error)
	FindByParentSeries(ctx context.Context, seedID string) ([]model.Booking, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error
	CancelFutureSiblings(ctx context.Context, parentIDs []string, now time.Time) (int64, error)
	DeleteBooking(ctx context.Context, id string) error
	CompleteElapsed(ctx context.Context, now time.Time) (int64, error)

	// Push subscriptions
	UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error
	GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscriptionsByUser(ctx context.Context, userID string) ([]model.PushSubscription, error)

	// DB exposes the underlying handle for read-only aggregate queries.
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// lockRoom serialises concurrent writers on one room so that a conflict
// check followed by an insert cannot interleave with another writer's.
// Advisory locks only exist on Postgres; on other dialects the transaction
// itself is the only barrier.
func lockRoom(tx *gorm.DB, roomID string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", roomID).Error
}
