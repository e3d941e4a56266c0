package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error

	CreateBatch(ctx context.Context, notifications []*Notification) error

	GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*Notification, int64, error)

	GetUnreadCount(ctx context.Context, userID string) (int, error)

	MarkAsRead(ctx context.Context, notificationIDs []string, userID string) error

	MarkAllAsRead(ctx context.Context, userID string) error
}
