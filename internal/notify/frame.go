package notify

import "github.com/dharmasatrya/ticketkini/internal/models"

// Frame types sent by the notification socket.
const (
	FrameNotification          = "notification"
	FrameAdminNotification     = "admin_notification"
	FrameOperatorNotification  = "operator_notification"
	FrameBroadcastNotification = "broadcast_notification"
	FramePong                  = "pong"
	FrameUnreadCount           = "unread_count"
	FrameError                 = "error"
	FrameConnectionSuccess     = "connection_success"

	FramePing = "ping"
)

type Frame struct {
	Type      string               `json:"type"`
	Data      *models.Notification `json:"data,omitempty"`
	Count     *int                 `json:"count,omitempty"`
	Message   string               `json:"message,omitempty"`
	Timestamp string               `json:"timestamp,omitempty"`
}

// CarriesNotification reports whether the frame announces a new
// notification for the user.
func (f Frame) CarriesNotification() bool {
	switch f.Type {
	case FrameNotification, FrameAdminNotification, FrameOperatorNotification, FrameBroadcastNotification:
		return f.Data != nil
	}
	return false
}
