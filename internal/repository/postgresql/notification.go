package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/notification"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create implements notification.Repository.
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	data, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal notification data: %w", err)
	}

	query := `
		INSERT INTO notifications (company_id, recipient_id, sender_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err = q.QueryRow(ctx, query,
		n.CompanyID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message, data,
	).Scan(&n.ID, &n.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// CreateBatch implements notification.Repository. Used by the queue worker
// to flush buffered notifications in one round trip.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (company_id, recipient_id, sender_id, type, title, message, data)
		SELECT * FROM unnest($1::text[], $2::text[], $3::text[], $4::text[], $5::text[], $6::text[], $7::jsonb[])
	`

	var (
		companyIDs   = make([]string, 0, len(notifications))
		recipientIDs = make([]string, 0, len(notifications))
		senderIDs    = make([]*string, 0, len(notifications))
		types        = make([]string, 0, len(notifications))
		titles       = make([]string, 0, len(notifications))
		messages     = make([]string, 0, len(notifications))
		datas        = make([][]byte, 0, len(notifications))
	)
	for _, n := range notifications {
		data, err := json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %w", err)
		}
		companyIDs = append(companyIDs, n.CompanyID)
		recipientIDs = append(recipientIDs, n.RecipientID)
		senderIDs = append(senderIDs, n.SenderID)
		types = append(types, string(n.Type))
		titles = append(titles, n.Title)
		messages = append(messages, n.Message)
		datas = append(datas, data)
	}

	if _, err := q.Exec(ctx, query, companyIDs, recipientIDs, senderIDs, types, titles, messages, datas); err != nil {
		return fmt.Errorf("failed to create notification batch: %w", err)
	}

	return nil
}

// GetByUserID implements notification.Repository.
func (r *notificationRepository) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, recipient_id, sender_id, type, title, message, data,
			   is_read, read_at, created_at,
			   COUNT(*) OVER() AS total_count
		FROM notifications
		WHERE recipient_id = $1
		  AND ($2 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	offset := (page - 1) * pageSize
	rows, err := q.Query(ctx, query, userID, unreadOnly, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var (
		notifications []*notification.Notification
		totalCount    int64
	)
	for rows.Next() {
		var (
			n    notification.Notification
			data []byte
		)
		if err := rows.Scan(
			&n.ID, &n.CompanyID, &n.RecipientID, &n.SenderID, &n.Type, &n.Title, &n.Message, &data,
			&n.IsRead, &n.ReadAt, &n.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal notification data: %w", err)
			}
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return notifications, totalCount, nil
}

// GetUnreadCount implements notification.Repository.
func (r *notificationRepository) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkAsRead implements notification.Repository.
func (r *notificationRepository) MarkAsRead(ctx context.Context, notificationIDs []string, userID string) error {
	if len(notificationIDs) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = ANY($1)
		  AND recipient_id = $2
		  AND is_read = FALSE
	`

	if _, err := q.Exec(ctx, query, notificationIDs, userID); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	return nil
}

// MarkAllAsRead implements notification.Repository.
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE recipient_id = $1
		  AND is_read = FALSE
	`

	if _, err := q.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	return nil
}
