package notification

import "time"

type NotificationType string

const (
	TypeDayScored           NotificationType = "day_scored"
	TypeScheduleChanged     NotificationType = "schedule_changed"
	TypeSummaryRecalculated NotificationType = "summary_recalculated"
)

func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeDayScored,
		TypeScheduleChanged,
		TypeSummaryRecalculated,
	}
}

type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
