package models

type NotificationType string

const (
	NotificationBookingConfirmation NotificationType = "booking_confirmation"
	NotificationPaymentSuccess      NotificationType = "payment_success"
	NotificationBookingCancellation NotificationType = "booking_cancellation"
	NotificationScheduleChange      NotificationType = "schedule_change"
	NotificationRefundProcessed     NotificationType = "refund_processed"
	NotificationTripReminder        NotificationType = "trip_reminder"
	NotificationPromotional         NotificationType = "promotional"
	NotificationRewardEarned        NotificationType = "reward_earned"
	NotificationSystemAlert         NotificationType = "system_alert"
	NotificationBookingAnalytics    NotificationType = "booking_analytics"
	NotificationRevenueReport       NotificationType = "revenue_report"
	NotificationSecurityAlert       NotificationType = "security_alert"
	NotificationVehicleUpdate       NotificationType = "vehicle_update"
	NotificationScheduleUpdate      NotificationType = "schedule_update"
	NotificationUserFeedback        NotificationType = "user_feedback"
	NotificationAnnouncement        NotificationType = "announcement"
	NotificationSystemMessage       NotificationType = "system_message"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type NotificationStatus string

const (
	StatusUnread   NotificationStatus = "unread"
	StatusRead     NotificationStatus = "read"
	StatusArchived NotificationStatus = "archived"
)

// SystemNotificationID is shared by every server-generated system message.
const SystemNotificationID FlexibleID = "system"

// Notification IDs are strings because server-generated system messages
// use the literal id "system".
type Notification struct {
	ID        FlexibleID         `json:"id"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Type      NotificationType   `json:"type"`
	Priority  Priority           `json:"priority"`
	ActionURL string             `json:"action_url,omitempty"`
	BookingID *int64             `json:"booking_id,omitempty"`
	PaymentID *int64             `json:"payment_id,omitempty"`
	CreatedAt string             `json:"created_at"`
	Status    NotificationStatus `json:"status,omitempty"`
}

type UnreadNotifications struct {
	Notifications []Notification `json:"notifications"`
	Count         int            `json:"count"`
}
