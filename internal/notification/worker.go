package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"alumni-portal-backend/internal/model"
)

// EventKind identifies what happened; workers decide who gets notified.
type EventKind string

const (
	// KindUserApproved notifies the approved member's own subscriptions.
	KindUserApproved EventKind = "user.approved"
	// KindWorkshopCreated notifies approved members of the workshop's
	// university, except the creator.
	KindWorkshopCreated EventKind = "workshop.created"
)

// Event is a unit of notification work.
type Event struct {
	Kind EventKind
	ID   int64
}

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// webPushSender is the real Sender backed by the webpush library.
type webPushSender struct{}

func (s *webPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers delivering push notifications.
type WorkerPool struct {
	size    int
	jobs    chan Event
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Event, size*4),
		db:      db,
		webpush: webpushOptions,
		sender:  &webPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case evt := <-wp.jobs:
			wp.process(ctx, evt)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues an event without blocking the request path. A nil pool
// (push not configured) and a full queue both drop the event.
func (wp *WorkerPool) Dispatch(evt Event) {
	if wp == nil {
		return
	}
	select {
	case wp.jobs <- evt:
	default:
		log.Printf("Notification queue full, dropping event %s/%d", evt.Kind, evt.ID)
	}
}

func (wp *WorkerPool) process(ctx context.Context, evt Event) {
	switch evt.Kind {
	case KindUserApproved:
		wp.notifyUserApproved(ctx, evt.ID)
	case KindWorkshopCreated:
		wp.notifyWorkshopCreated(ctx, evt.ID)
	default:
		log.Printf("Unknown notification event kind %q", evt.Kind)
	}
}

func (wp *WorkerPool) notifyUserApproved(ctx context.Context, userID int64) {
	var user model.User
	if err := wp.db.WithContext(ctx).Preload("University").First(&user, userID).Error; err != nil {
		log.Printf("Error fetching user %d for approval notification: %v", userID, err)
		return
	}

	var subscriptions []model.PushSubscription
	if err := wp.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&subscriptions).Error; err != nil {
		log.Printf("Error fetching subscriptions for user %d: %v", userID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload := fmt.Sprintf("Your account has been approved by %s.", user.University.Name)
	for _, sub := range subscriptions {
		wp.send(ctx, sub, []byte(payload))
	}
}

func (wp *WorkerPool) notifyWorkshopCreated(ctx context.Context, workshopID int64) {
	var workshop model.Workshop
	if err := wp.db.WithContext(ctx).First(&workshop, workshopID).Error; err != nil {
		log.Printf("Error fetching workshop %d: %v", workshopID, err)
		return
	}

	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN users ON users.id = push_subscriptions.user_id").
		Where("users.university_id = ? AND users.status = ? AND users.id <> ?",
			workshop.UniversityID, model.StatusApproved, workshop.UserID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for workshop %d: %v", workshopID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	log.Printf("Sending %d notifications for workshop %d", len(subscriptions), workshopID)
	payload := fmt.Sprintf("New workshop: %s on %s", workshop.Title, workshop.Date)
	for _, sub := range subscriptions {
		wp.send(ctx, sub, []byte(payload))
	}
}

// send delivers a single web push notification, removing the subscription if
// the push service reports it gone.
func (wp *WorkerPool) send(ctx context.Context, sub model.PushSubscription, payload []byte) {
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
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
