package dto

import (
	"hotel/infras/mail"
	"hotel/internal/domains/notification/model"
	"hotel/shared/constant"
	"hotel/shared/timezone"
)

// NotificationRequest is the event published to the notification topic.
type NotificationRequest struct {
	Recipient        string `json:"recipient"         validate:"required,email"`
	Subject          string `json:"subject"           validate:"required"`
	Body             string `json:"body"              validate:"required"`
	BookingReference string `json:"booking_reference"`
	Type             string `json:"type"`
}

func (n *NotificationRequest) ChannelType() string {
	if n.Type == constant.Empty {
		return model.TypeEmail
	}

	return n.Type
}

func (n *NotificationRequest) ToEmail() mail.Email {
	return mail.Email{
		To:      n.Recipient,
		Subject: n.Subject,
		Body:    n.Body,
	}
}

func (n *NotificationRequest) ToModel() model.Notification {
	return model.Notification{
		Recipient:        n.Recipient,
		Subject:          n.Subject,
		Body:             n.Body,
		BookingReference: n.BookingReference,
		Type:             n.ChannelType(),
		CreatedAt:        timezone.Now(),
	}
}
