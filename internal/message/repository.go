// AngelaMos | 2026
// repository.go

package message

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isowebtech/fundify-api/internal/core"
)

type Repository interface {
	Insert(ctx context.Context, msg *Message) error
	GetByID(ctx context.Context, id string) (*Message, error)
	ListByThread(ctx context.Context, threadID string) ([]ThreadMessage, error)
	HasParticipant(
		ctx context.Context,
		threadID, userID string,
	) (bool, error)
	MarkThreadRead(ctx context.Context, threadID, userID string) error
	TotalUnread(ctx context.Context, userID string) (int, error)
	Inbox(
		ctx context.Context,
		userID string,
		previewLen int,
		params InboxParams,
	) ([]Conversation, int, error)
	ThreadInfo(
		ctx context.Context,
		threadID, userID string,
	) (*ThreadInfo, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, msg *Message) error {
	query := `
		INSERT INTO messages (
			id, sender_id, receiver_id, business_listing_id, thread_id,
			subject, message, message_type, parent_message_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING sent_at`

	err := r.db.GetContext(ctx, &msg.SentAt, query,
		msg.ID,
		msg.SenderID,
		msg.ReceiverID,
		msg.ListingID,
		msg.ThreadID,
		msg.Subject,
		msg.Body,
		msg.MessageType,
		msg.ParentMessageID,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Message, error) {
	query := `
		SELECT id, sender_id, receiver_id, business_listing_id, thread_id,
		       subject, message, message_type, parent_message_id,
		       is_read, read_at, sent_at
		FROM messages
		WHERE id = $1`

	var msg Message
	err := r.db.GetContext(ctx, &msg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get message: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}

	return &msg, nil
}

func (r *repository) ListByThread(
	ctx context.Context,
	threadID string,
) ([]ThreadMessage, error) {
	query := `
		SELECT m.id, m.sender_id, m.receiver_id, m.business_listing_id,
		       m.thread_id, m.subject, m.message, m.message_type,
		       m.parent_message_id, m.is_read, m.read_at, m.sent_at,
		       u.full_name AS sender_name,
		       u.role AS sender_role,
		       bl.title AS listing_title
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		LEFT JOIN business_listings bl ON m.business_listing_id = bl.id
		WHERE m.thread_id = $1
		ORDER BY m.sent_at ASC`

	var messages []ThreadMessage
	if err := r.db.SelectContext(ctx, &messages, query, threadID); err != nil {
		return nil, fmt.Errorf("list thread messages: %w", err)
	}

	return messages, nil
}

func (r *repository) HasParticipant(
	ctx context.Context,
	threadID, userID string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM messages
			WHERE thread_id = $1 AND (sender_id = $2 OR receiver_id = $2)
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, threadID, userID); err != nil {
		return false, fmt.Errorf("check thread access: %w", err)
	}

	return exists, nil
}

func (r *repository) MarkThreadRead(
	ctx context.Context,
	threadID, userID string,
) error {
	query := `
		UPDATE messages
		SET is_read = TRUE, read_at = NOW()
		WHERE thread_id = $1 AND receiver_id = $2 AND is_read = FALSE`

	if _, err := r.db.ExecContext(ctx, query, threadID, userID); err != nil {
		return fmt.Errorf("mark thread read: %w", err)
	}

	return nil
}

func (r *repository) TotalUnread(
	ctx context.Context,
	userID string,
) (int, error) {
	query := `
		SELECT COUNT(*) FROM messages
		WHERE receiver_id = $1 AND is_read = FALSE`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}

	return count, nil
}

// Inbox returns the latest message per thread with an unread count computed
// by a correlated subquery, newest activity first.
func (r *repository) Inbox(
	ctx context.Context,
	userID string,
	previewLen int,
	params InboxParams,
) ([]Conversation, int, error) {
	params.Normalize()

	countQuery := `
		SELECT COUNT(DISTINCT thread_id) FROM messages
		WHERE sender_id = $1 OR receiver_id = $1`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("count conversations: %w", err)
	}

	query := `
		SELECT
			m.thread_id,
			m.business_listing_id,
			m.subject,
			LEFT(m.message, $2) AS preview,
			m.sent_at,
			CASE WHEN m.sender_id = $1
				THEN receiver_u.full_name
				ELSE sender_u.full_name
			END AS contact_name,
			CASE WHEN m.sender_id = $1
				THEN m.receiver_id
				ELSE m.sender_id
			END AS contact_user_id,
			bl.title AS listing_title,
			(SELECT COUNT(*) FROM messages m2
			 WHERE m2.thread_id = m.thread_id
			   AND m2.receiver_id = $1
			   AND m2.is_read = FALSE) AS unread_count
		FROM messages m
		JOIN users sender_u ON m.sender_id = sender_u.id
		JOIN users receiver_u ON m.receiver_id = receiver_u.id
		LEFT JOIN business_listings bl ON m.business_listing_id = bl.id
		WHERE (m.sender_id = $1 OR m.receiver_id = $1)
		  AND m.sent_at = (
			SELECT MAX(sent_at) FROM messages m3
			WHERE m3.thread_id = m.thread_id
		  )
		ORDER BY m.sent_at DESC
		LIMIT $3 OFFSET $4`

	var conversations []Conversation
	err := r.db.SelectContext(ctx, &conversations, query,
		userID, previewLen, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("load inbox: %w", err)
	}

	return conversations, total, nil
}

func (r *repository) ThreadInfo(
	ctx context.Context,
	threadID, userID string,
) (*ThreadInfo, error) {
	query := `
		SELECT
			m.thread_id,
			m.subject,
			m.business_listing_id,
			CASE WHEN m.sender_id = $2
				THEN receiver_u.full_name
				ELSE sender_u.full_name
			END AS contact_name,
			CASE WHEN m.sender_id = $2
				THEN m.receiver_id
				ELSE m.sender_id
			END AS contact_user_id,
			bl.title AS listing_title,
			bl.slug AS listing_slug
		FROM messages m
		JOIN users sender_u ON m.sender_id = sender_u.id
		JOIN users receiver_u ON m.receiver_id = receiver_u.id
		LEFT JOIN business_listings bl ON m.business_listing_id = bl.id
		WHERE m.thread_id = $1
		ORDER BY m.sent_at ASC
		LIMIT 1`

	var info ThreadInfo
	err := r.db.GetContext(ctx, &info, query, threadID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("thread info: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("thread info: %w", err)
	}

	return &info, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM messages WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete message: %w", core.ErrNotFound)
	}

	return nil
}
