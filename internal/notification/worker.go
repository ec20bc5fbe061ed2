package notification

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"github.com/singhnaman320/Meeting-Room-Booking-System-Backend/internal/store"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// cancellationPayload is the JSON body pushed to the browser when a booking
// is cancelled.
type cancellationPayload struct {
	BookingID string `json:"bookingId"`
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	Status    string `json:"status"`
}

// WorkerPool sends cancellation notices to booking owners off the request
// path. Jobs are cancelled booking ids.
type WorkerPool struct {
	size    int
	jobs    chan string
	store   store.Store
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, s store.Store, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size),
		store:   s,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("notification worker %d started", id)
	for {
		select {
		case bookingID := <-wp.jobs:
			wp.notifyCancellation(ctx, bookingID)
		case <-ctx.Done():
			log.Printf("notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a cancelled booking for notification.
func (wp *WorkerPool) Dispatch(bookingID string) {
	wp.jobs <- bookingID
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan string {
	return wp.jobs
}

// notifyCancellation pushes a cancellation notice to every subscription the
// booking's owner holds.
func (wp *WorkerPool) notifyCancellation(ctx context.Context, bookingID string) {
	b, err := wp.store.FindBookingByID(ctx, bookingID)
	if err != nil {
		log.Printf("Error loading cancelled booking %s: %v", bookingID, err)
		return
	}

	subscriptions, err := wp.store.SubscriptionsByUser(ctx, b.UserID)
	if err != nil {
		log.Printf("Error fetching subscriptions for user %s: %v", b.UserID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(cancellationPayload{
		BookingID: b.ID,
		Title:     b.Title,
		StartTime: b.StartTime.UTC().Format(time.RFC3339),
		Status:    string(b.Status),
	})
	if err != nil {
		log.Printf("Error encoding notification payload for booking %s: %v", b.ID, err)
		return
	}

	log.Printf("Sending %d cancellation notices for booking %s", len(subscriptions), b.ID)
	for _, sub := range subscriptions {
		wpSub := &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.P256DH,
				Auth:   sub.Auth,
			},
		}

		resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
		if err != nil {
			log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
			continue
		}
		resp.Body.Close()

		// Handle expired subscriptions
		if resp.StatusCode == http.StatusGone {
			log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
			if err := wp.store.DeleteSubscription(ctx, sub.Endpoint); err != nil {
				log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
			}
		}
	}
}
