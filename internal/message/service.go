// AngelaMos | 2026
// service.go

package message

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/google/uuid"

	"github.com/isowebtech/fundify-api/internal/config"
	"github.com/isowebtech/fundify-api/internal/core"
)

// UserDirectory is the slice of the accounts service messaging needs.
type UserDirectory interface {
	ExistsActive(ctx context.Context, userID string) (bool, error)
	GetContact(ctx context.Context, userID string) (name, email string, err error)
}

// ListingCatalog validates listing references and resolves titles for
// notifications.
type ListingCatalog interface {
	ExistsActive(ctx context.Context, listingID string) (bool, error)
	Title(ctx context.Context, listingID string) (string, error)
}

type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type Service struct {
	repo     Repository
	users    UserDirectory
	listings ListingCatalog
	notifier Notifier
	cfg      config.MessageConfig
	logger   *slog.Logger
}

func NewService(
	repo Repository,
	users UserDirectory,
	listings ListingCatalog,
	notifier Notifier,
	cfg config.MessageConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		listings: listings,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Send validates both participants and the optional listing reference,
// derives the thread id and appends the message. The email notification is
// best-effort: its failure is logged and never surfaces to the sender.
func (s *Service) Send(
	ctx context.Context,
	senderID string,
	req SendMessageRequest,
) (*SendMessageResponse, error) {
	if len(req.Body) == 0 || len(req.Body) > s.cfg.MaxBodyLength {
		return nil, fmt.Errorf(
			"send message: body must be 1..%d characters: %w",
			s.cfg.MaxBodyLength,
			core.ErrInvalidInput,
		)
	}

	senderActive, err := s.users.ExistsActive(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	if !senderActive {
		return nil, fmt.Errorf(
			"send message: sender not active: %w",
			core.ErrForbidden,
		)
	}

	receiverActive, err := s.users.ExistsActive(ctx, req.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	if !receiverActive {
		return nil, fmt.Errorf(
			"send message: recipient not found: %w",
			core.ErrNotFound,
		)
	}

	var listingID *string
	if req.ListingID != nil && *req.ListingID != "" {
		active, err := s.listings.ExistsActive(ctx, *req.ListingID)
		if err != nil {
			return nil, fmt.Errorf("send message: %w", err)
		}
		if !active {
			return nil, fmt.Errorf(
				"send message: listing not found: %w",
				core.ErrNotFound,
			)
		}
		listingID = req.ListingID
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = TypeInquiry
	}

	msg := &Message{
		ID:              uuid.New().String(),
		SenderID:        senderID,
		ReceiverID:      req.ReceiverID,
		ListingID:       listingID,
		ThreadID:        ThreadID(senderID, req.ReceiverID, deref(listingID)),
		Subject:         req.Subject,
		Body:            req.Body,
		MessageType:     messageType,
		ParentMessageID: req.ParentMessageID,
	}

	if err := s.repo.Insert(ctx, msg); err != nil {
		return nil, err
	}

	if err := s.notifyReceiver(ctx, msg); err != nil {
		s.logger.Warn("message notification failed",
			"message_id", msg.ID,
			"error", err,
		)
	}

	return &SendMessageResponse{
		MessageID: msg.ID,
		ThreadID:  msg.ThreadID,
	}, nil
}

// GetThread returns every message in the thread, oldest first. Callers who
// never appear in the thread get ErrForbidden regardless of whether the
// thread exists.
func (s *Service) GetThread(
	ctx context.Context,
	threadID, userID string,
) (*ThreadResponse, error) {
	if err := s.requireParticipant(ctx, threadID, userID); err != nil {
		return nil, err
	}

	messages, err := s.repo.ListByThread(ctx, threadID)
	if err != nil {
		return nil, err
	}

	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, MessageView{
			ID:           m.ID,
			SenderID:     m.SenderID,
			SenderName:   m.SenderName,
			SenderRole:   m.SenderRole,
			Subject:      m.Subject,
			Body:         m.Body,
			MessageType:  m.MessageType,
			ListingTitle: m.ListingTitle,
			IsOwn:        m.SenderID == userID,
			IsRead:       m.IsRead,
			SentAt:       m.SentAt,
		})
	}

	return &ThreadResponse{ThreadID: threadID, Messages: views}, nil
}

func (s *Service) GetThreadInfo(
	ctx context.Context,
	threadID, userID string,
) (*ThreadInfoResponse, error) {
	if err := s.requireParticipant(ctx, threadID, userID); err != nil {
		return nil, err
	}

	info, err := s.repo.ThreadInfo(ctx, threadID, userID)
	if err != nil {
		return nil, err
	}

	return &ThreadInfoResponse{
		ThreadID:      info.ThreadID,
		ContactUserID: info.ContactUserID,
		ContactName:   info.ContactName,
		Subject:       info.Subject,
		ListingTitle:  info.ListingTitle,
		ListingSlug:   info.ListingSlug,
	}, nil
}

// MarkThreadAsRead flips the caller's unread messages in the thread. A
// thread with nothing unread is a no-op, not an error.
func (s *Service) MarkThreadAsRead(
	ctx context.Context,
	threadID, userID string,
) error {
	if err := s.requireParticipant(ctx, threadID, userID); err != nil {
		return err
	}

	return s.repo.MarkThreadRead(ctx, threadID, userID)
}

func (s *Service) Inbox(
	ctx context.Context,
	userID string,
	params InboxParams,
) (*InboxResponse, int, error) {
	conversations, total, err := s.repo.Inbox(
		ctx,
		userID,
		s.cfg.PreviewLength,
		params,
	)
	if err != nil {
		return nil, 0, err
	}

	views := make([]ConversationView, 0, len(conversations))
	for _, c := range conversations {
		views = append(views, ConversationView{
			ThreadID:      c.ThreadID,
			ContactUserID: c.ContactUserID,
			ContactName:   c.ContactName,
			ListingTitle:  c.ListingTitle,
			Subject:       c.Subject,
			Preview:       c.Preview,
			SentAt:        c.SentAt,
			UnreadCount:   c.UnreadCount,
			IsUnread:      c.UnreadCount > 0,
		})
	}

	totalUnread, err := s.repo.TotalUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return &InboxResponse{
		Conversations: views,
		TotalUnread:   totalUnread,
	}, total, nil
}

func (s *Service) TotalUnread(
	ctx context.Context,
	userID string,
) (int, error) {
	return s.repo.TotalUnread(ctx, userID)
}

// Delete removes a single message; only its author may do so.
func (s *Service) Delete(ctx context.Context, messageID, userID string) error {
	msg, err := s.repo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if msg.SenderID != userID {
		return fmt.Errorf(
			"delete message: not the author: %w",
			core.ErrForbidden,
		)
	}

	return s.repo.Delete(ctx, messageID)
}

func (s *Service) requireParticipant(
	ctx context.Context,
	threadID, userID string,
) error {
	ok, err := s.repo.HasParticipant(ctx, threadID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf(
			"thread access: not a participant: %w",
			core.ErrForbidden,
		)
	}
	return nil
}

func (s *Service) notifyReceiver(ctx context.Context, msg *Message) error {
	_, receiverEmail, err := s.users.GetContact(ctx, msg.ReceiverID)
	if err != nil {
		return err
	}

	senderName, _, err := s.users.GetContact(ctx, msg.SenderID)
	if err != nil {
		return err
	}

	subject := "New Message on Fundify"
	listingText := ""
	if msg.ListingID != nil {
		title, err := s.listings.Title(ctx, *msg.ListingID)
		if err == nil && title != "" {
			subject += " - " + title
			listingText = " regarding the listing " + html.EscapeString(title)
		}
	}

	preview := msg.Body
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}

	body := fmt.Sprintf(
		`<p>You have received a new message from <strong>%s</strong>%s.</p>
<p><strong>Subject:</strong> %s</p>
<p>%s</p>
<p><a href="%s?thread=%s">View the full conversation</a></p>`,
		html.EscapeString(senderName),
		listingText,
		html.EscapeString(msg.Subject),
		html.EscapeString(preview),
		s.cfg.ThreadBaseURL,
		msg.ThreadID,
	)

	return s.notifier.Send(ctx, receiverEmail, subject, body)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
