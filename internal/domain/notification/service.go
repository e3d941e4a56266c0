package notification

import "context"

// Service is the messaging collaborator the scoring pipeline publishes to.
// Constructed explicitly and passed by dependency injection; Stop must be
// called on shutdown to drain the queue.
type Service interface {
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error

	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)

	GetUnreadCount(ctx context.Context, userID string) (int, error)

	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error

	MarkAllAsRead(ctx context.Context, userID string) error

	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())

	Stop()
}
