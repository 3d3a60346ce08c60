package notify

import (
	"time"

	"github.com/dharmasatrya/ticketkini/internal/models"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

const ToastDuration = 5 * time.Second

// Toast is a banner shown to the user. Persistent toasts stay until the
// user dismisses them; others disappear after Duration.
type Toast struct {
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	Level      Level         `json:"level"`
	Duration   time.Duration `json:"duration"`
	Persistent bool          `json:"persistent"`
}

// Presenter draws notification state for the user.
type Presenter interface {
	Toast(Toast)
	UpdateBadge(unread int)
	UpdateDropdown(items []models.Notification)
}

type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// DesktopNotifier is the operating system's notification capability.
type DesktopNotifier interface {
	Permission() Permission
	Notify(n models.Notification) error
}

type NopPresenter struct{}

func (NopPresenter) Toast(Toast) {}
func (NopPresenter) UpdateBadge(int) {}
func (NopPresenter) UpdateDropdown([]models.Notification) {}

type NopDesktop struct{}

func (NopDesktop) Permission() Permission { return PermissionDenied }
func (NopDesktop) Notify(models.Notification) error { return nil }

// ToastFor is the transient toast shown when n arrives.
func ToastFor(n models.Notification) Toast {
	return Toast{
		Title:    n.Title,
		Message:  n.Message,
		Level:    levelFor(n),
		Duration: ToastDuration,
	}
}

func levelFor(n models.Notification) Level {
	switch n.Priority {
	case models.PriorityUrgent:
		return LevelError
	case models.PriorityHigh:
		return LevelWarning
	}
	switch n.Type {
	case models.NotificationBookingConfirmation, models.NotificationPaymentSuccess,
		models.NotificationRefundProcessed, models.NotificationRewardEarned:
		return LevelSuccess
	case models.NotificationSecurityAlert, models.NotificationSystemAlert:
		return LevelWarning
	}
	return LevelInfo
}
