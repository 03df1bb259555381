package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/fims-api/pkg/jobs"
	"github.com/noah-isme/fims-api/pkg/notify"
)

type notificationPublisher interface {
	Publish(ctx context.Context, n notify.Notification) error
}

// NotificationService hands notification events to the external collaborator
// off the request path. Delivery is at-most-once: enqueueing never blocks and
// publish failures are logged by the dispatcher, never surfaced to callers.
type NotificationService struct {
	dispatcher *jobs.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService builds the service and its dispatcher.
func NewNotificationService(publisher notificationPublisher, cfg jobs.DispatcherConfig) *NotificationService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{logger: logger}
	s.dispatcher = jobs.NewDispatcher("notifications", func(ctx context.Context, job jobs.Job) error {
		n, ok := job.Payload.(notify.Notification)
		if !ok {
			return fmt.Errorf("unexpected payload type %T", job.Payload)
		}
		return publisher.Publish(ctx, n)
	}, cfg)
	return s
}

// Start launches the dispatcher workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.dispatcher.Start(ctx)
}

// Stop drains the dispatcher.
func (s *NotificationService) Stop() {
	s.dispatcher.Stop()
}

// NotifyUser targets a single user's channel.
func (s *NotificationService) NotifyUser(userID int64, message string, entityID int64) {
	s.dispatcher.Enqueue(jobs.Job{
		Type: "user",
		Payload: notify.Notification{
			Type:        "user",
			RecipientID: &userID,
			Message:     message,
			EntityID:    entityID,
		},
	})
}

// NotifySupervisors targets the supervisory channel.
func (s *NotificationService) NotifySupervisors(message string, entityID int64) {
	s.dispatcher.Enqueue(jobs.Job{
		Type: "supervisors",
		Payload: notify.Notification{
			Type:     "supervisors",
			Message:  message,
			EntityID: entityID,
		},
	})
}
