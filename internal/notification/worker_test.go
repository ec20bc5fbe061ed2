package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/model"
	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/store"
)

// mockSender is a mock implementation of the Sender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// Send calls the mock SendFunc.
func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.Room{}, &model.Booking{}, &model.PushSubscription{}))
	return store.NewGormStore(db)
}

func seedCancelledBooking(t *testing.T, s store.Store, userID string) *model.Booking {
	t.Helper()
	ctx := context.Background()
	b := &model.Booking{
		ID:        uuid.NewString(),
		RoomID:    uuid.NewString(),
		UserID:    userID,
		Title:     "Design review",
		StartTime: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC),
		Attendees: 4,
		Status:    model.StatusCancelled,
	}
	require.NoError(t, s.InsertBatch(ctx, []model.Booking{*b}))
	return b
}

func TestWorkerPool_Dispatch(t *testing.T) {
	wp := NewWorkerPool(1, newTestStore(t), &webpush.Options{})

	wp.Dispatch("booking-123")

	select {
	case job := <-wp.jobs:
		assert.Equal(t, "booking-123", job)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_WorkerLogic(t *testing.T) {
	s := newTestStore(t)
	wp := NewWorkerPool(1, s, &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	t.Run("sends notice to every owner subscription", func(t *testing.T) {
		b := seedCancelledBooking(t, s, "user-1")
		require.NoError(t, s.UpsertSubscription(ctx, &model.PushSubscription{
			Endpoint: "https://example.com/push",
			UserID:   "user-1",
			P256DH:   "test_p256dh",
			Auth:     "test_auth",
		}))

		var wg sync.WaitGroup
		wg.Add(1)
		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				assert.Equal(t, "https://example.com/push", sub.Endpoint)
				assert.Contains(t, string(payload), b.ID)
				assert.Contains(t, string(payload), "cancelled")
				wg.Done()
				return &http.Response{
					StatusCode: http.StatusCreated,
					Body:       io.NopCloser(bytes.NewBufferString("")),
				}, nil
			},
		}

		wp.Dispatch(b.ID)
		wg.Wait()
	})

	t.Run("deletes expired subscription", func(t *testing.T) {
		b := seedCancelledBooking(t, s, "user-2")
		require.NoError(t, s.UpsertSubscription(ctx, &model.PushSubscription{
			Endpoint: "https://example.com/expired",
			UserID:   "user-2",
			P256DH:   "test_p256dh_expired",
			Auth:     "test_auth_expired",
		}))

		var wg sync.WaitGroup
		wg.Add(1)
		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				wg.Done()
				return &http.Response{
					StatusCode: http.StatusGone,
					Body:       io.NopCloser(bytes.NewBufferString("")),
				}, nil
			},
		}

		wp.Dispatch(b.ID)
		wg.Wait()

		// The worker deletes the subscription after observing 410 Gone.
		assert.Eventually(t, func() bool {
			_, err := s.GetSubscription(ctx, "https://example.com/expired")
			return err != nil
		}, 2*time.Second, 10*time.Millisecond)
	})
}
