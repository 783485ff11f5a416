// AngelaMos | 2026
// dto.go

package message

import (
	"time"
)

type SendMessageRequest struct {
	ReceiverID      string  `json:"receiver_id"       validate:"required,uuid4"`
	ListingID       *string `json:"listing_id"        validate:"omitempty,uuid4"`
	Subject         string  `json:"subject"           validate:"max=255"`
	Body            string  `json:"body"              validate:"required,min=1,max=5000"`
	MessageType     string  `json:"message_type"      validate:"omitempty,oneof=inquiry response general"`
	ParentMessageID *string `json:"parent_message_id" validate:"omitempty,uuid4"`
}

type SendMessageResponse struct {
	MessageID string `json:"message_id"`
	ThreadID  string `json:"thread_id"`
}

type MessageView struct {
	ID           string    `json:"id"`
	SenderID     string    `json:"sender_id"`
	SenderName   string    `json:"sender_name"`
	SenderRole   string    `json:"sender_role"`
	Subject      string    `json:"subject,omitempty"`
	Body         string    `json:"body"`
	MessageType  string    `json:"message_type"`
	ListingTitle *string   `json:"listing_title,omitempty"`
	IsOwn        bool      `json:"is_own"`
	IsRead       bool      `json:"is_read"`
	SentAt       time.Time `json:"sent_at"`
}

type ThreadResponse struct {
	ThreadID string        `json:"thread_id"`
	Messages []MessageView `json:"messages"`
}

type ConversationView struct {
	ThreadID      string    `json:"thread_id"`
	ContactUserID string    `json:"contact_user_id"`
	ContactName   string    `json:"contact_name"`
	ListingTitle  *string   `json:"listing_title,omitempty"`
	Subject       string    `json:"subject,omitempty"`
	Preview       string    `json:"preview"`
	SentAt        time.Time `json:"sent_at"`
	UnreadCount   int       `json:"unread_count"`
	IsUnread      bool      `json:"is_unread"`
}

type InboxResponse struct {
	Conversations []ConversationView `json:"conversations"`
	TotalUnread   int                `json:"total_unread"`
}

type ThreadInfoResponse struct {
	ThreadID      string  `json:"thread_id"`
	ContactUserID string  `json:"contact_user_id"`
	ContactName   string  `json:"contact_name"`
	Subject       string  `json:"subject,omitempty"`
	ListingTitle  *string `json:"listing_title,omitempty"`
	ListingSlug   *string `json:"listing_slug,omitempty"`
}

type UnreadCountResponse struct {
	TotalUnread int `json:"total_unread"`
}

type InboxParams struct {
	Page     int
	PageSize int
}

func (p *InboxParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *InboxParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
