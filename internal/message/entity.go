// AngelaMos | 2026
// entity.go

package message

import (
	"time"
)

const (
	TypeInquiry  = "inquiry"
	TypeResponse = "response"
	TypeGeneral  = "general"
)

// Message rows are append-only; only the receiver's read state ever changes
// after insert.
type Message struct {
	ID              string     `db:"id"`
	SenderID        string     `db:"sender_id"`
	ReceiverID      string     `db:"receiver_id"`
	ListingID       *string    `db:"business_listing_id"`
	ThreadID        string     `db:"thread_id"`
	Subject         string     `db:"subject"`
	Body            string     `db:"message"`
	MessageType     string     `db:"message_type"`
	ParentMessageID *string    `db:"parent_message_id"`
	IsRead          bool       `db:"is_read"`
	ReadAt          *time.Time `db:"read_at"`
	SentAt          time.Time  `db:"sent_at"`
}

// ThreadMessage is a message joined with its sender's display fields and the
// listing title for rendering a conversation.
type ThreadMessage struct {
	Message
	SenderName   string  `db:"sender_name"`
	SenderRole   string  `db:"sender_role"`
	ListingTitle *string `db:"listing_title"`
}

// Conversation is one inbox row: the latest message of a thread plus the
// computed unread count. Nothing here is a persisted counter.
type Conversation struct {
	ThreadID      string    `db:"thread_id"`
	ListingID     *string   `db:"business_listing_id"`
	Subject       string    `db:"subject"`
	Preview       string    `db:"preview"`
	SentAt        time.Time `db:"sent_at"`
	ContactUserID string    `db:"contact_user_id"`
	ContactName   string    `db:"contact_name"`
	ListingTitle  *string   `db:"listing_title"`
	UnreadCount   int       `db:"unread_count"`
}

// ThreadInfo is the conversation header: who the counterpart is and which
// listing the thread hangs off.
type ThreadInfo struct {
	ThreadID      string  `db:"thread_id"`
	Subject       string  `db:"subject"`
	ListingID     *string `db:"business_listing_id"`
	ContactUserID string  `db:"contact_user_id"`
	ContactName   string  `db:"contact_name"`
	ListingTitle  *string `db:"listing_title"`
	ListingSlug   *string `db:"listing_slug"`
}
