package realtime

import "foodshare/internal/models"

// Event is the envelope pushed over a websocket connection.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// ClaimEventData mirrors the persisted notification so the donor's client
// can render it without a follow-up fetch.
type ClaimEventData struct {
	Message         string `json:"message"`
	ListingID       uint   `json:"listing_id"`
	ListingTitle    string `json:"listing_title"`
	ReceiverID      uint   `json:"receiver_id"`
	ReceiverName    string `json:"receiver_name"`
	ReceiverEmail   string `json:"receiver_email"`
	ReceiverPhone   string `json:"receiver_phone"`
	ReceiverAddress string `json:"receiver_address"`
	ClaimQuantity   int    `json:"claim_quantity"`
	NotificationID  uint   `json:"notification_id"`
}

// ListingClaimed wraps a committed claim notification as a push event.
func ListingClaimed(notification *models.Notification) Event {
	return Event{
		Event: "listingClaimed",
		Data: ClaimEventData{
			Message:         notification.Message,
			ListingID:       notification.ListingID,
			ListingTitle:    notification.ListingTitle,
			ReceiverID:      notification.ReceiverID,
			ReceiverName:    notification.ReceiverName,
			ReceiverEmail:   notification.ReceiverEmail,
			ReceiverPhone:   notification.ReceiverPhone,
			ReceiverAddress: notification.ReceiverAddress,
			ClaimQuantity:   notification.ClaimQuantity,
			NotificationID:  notification.ID,
		},
	}
}
