// AngelaMos | 2026
// service_test.go

package message

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isowebtech/fundify-api/internal/config"
	"github.com/isowebtech/fundify-api/internal/core"
)

type fakeMessageRepo struct {
	messages []Message
}

func (f *fakeMessageRepo) Insert(_ context.Context, msg *Message) error {
	msg.SentAt = time.Now()
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeMessageRepo) GetByID(
	_ context.Context,
	id string,
) (*Message, error) {
	for i := range f.messages {
		if f.messages[i].ID == id {
			copied := f.messages[i]
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeMessageRepo) ListByThread(
	_ context.Context,
	threadID string,
) ([]ThreadMessage, error) {
	var out []ThreadMessage
	for _, m := range f.messages {
		if m.ThreadID == threadID {
			out = append(out, ThreadMessage{Message: m})
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) HasParticipant(
	_ context.Context,
	threadID, userID string,
) (bool, error) {
	for _, m := range f.messages {
		if m.ThreadID == threadID &&
			(m.SenderID == userID || m.ReceiverID == userID) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMessageRepo) MarkThreadRead(
	_ context.Context,
	threadID, userID string,
) error {
	now := time.Now()
	for i := range f.messages {
		m := &f.messages[i]
		if m.ThreadID == threadID && m.ReceiverID == userID && !m.IsRead {
			m.IsRead = true
			m.ReadAt = &now
		}
	}
	return nil
}

func (f *fakeMessageRepo) TotalUnread(
	_ context.Context,
	userID string,
) (int, error) {
	count := 0
	for _, m := range f.messages {
		if m.ReceiverID == userID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeMessageRepo) Inbox(
	_ context.Context,
	userID string,
	previewLen int,
	_ InboxParams,
) ([]Conversation, int, error) {
	latest := map[string]Message{}
	for _, m := range f.messages {
		if m.SenderID != userID && m.ReceiverID != userID {
			continue
		}
		if prev, ok := latest[m.ThreadID]; !ok || m.SentAt.After(prev.SentAt) {
			latest[m.ThreadID] = m
		}
	}

	var out []Conversation
	for threadID, m := range latest {
		unread := 0
		for _, m2 := range f.messages {
			if m2.ThreadID == threadID && m2.ReceiverID == userID && !m2.IsRead {
				unread++
			}
		}
		preview := m.Body
		if len(preview) > previewLen {
			preview = preview[:previewLen]
		}
		out = append(out, Conversation{
			ThreadID:    threadID,
			Subject:     m.Subject,
			Preview:     preview,
			SentAt:      m.SentAt,
			UnreadCount: unread,
		})
	}
	return out, len(out), nil
}

func (f *fakeMessageRepo) ThreadInfo(
	_ context.Context,
	threadID, _ string,
) (*ThreadInfo, error) {
	for _, m := range f.messages {
		if m.ThreadID == threadID {
			return &ThreadInfo{ThreadID: threadID, Subject: m.Subject}, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeMessageRepo) Delete(_ context.Context, id string) error {
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

type fakeDirectory struct {
	active map[string]bool
}

func (f *fakeDirectory) ExistsActive(
	_ context.Context,
	userID string,
) (bool, error) {
	return f.active[userID], nil
}

func (f *fakeDirectory) GetContact(
	_ context.Context,
	userID string,
) (string, string, error) {
	return "User " + userID, userID + "@example.com", nil
}

type fakeCatalog struct {
	active map[string]bool
}

func (f *fakeCatalog) ExistsActive(
	_ context.Context,
	listingID string,
) (bool, error) {
	return f.active[listingID], nil
}

func (f *fakeCatalog) Title(_ context.Context, _ string) (string, error) {
	return "TechnoLogic Solutions", nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Send(
	_ context.Context,
	to, _, _ string,
) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func newTestService(
	repo Repository,
	notifier Notifier,
) *Service {
	return NewService(
		repo,
		&fakeDirectory{active: map[string]bool{
			"alice": true,
			"bob":   true,
		}},
		&fakeCatalog{active: map[string]bool{"lst-1": true}},
		notifier,
		config.MessageConfig{
			MaxBodyLength: 5000,
			PreviewLength: 150,
			ThreadBaseURL: "https://fundify.example/messages",
		},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestSendRoundTrip(t *testing.T) {
	repo := &fakeMessageRepo{}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	listingID := "lst-1"
	resp, err := svc.Send(context.Background(), "alice", SendMessageRequest{
		ReceiverID: "bob",
		ListingID:  &listingID,
		Subject:    "Interested in your listing",
		Body:       "Tell me more about the equity terms.",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice-bob-listing-lst-1", resp.ThreadID)
	assert.Equal(t, []string{"bob@example.com"}, notifier.sent)

	thread, err := svc.GetThread(context.Background(), resp.ThreadID, "bob")
	require.NoError(t, err)
	require.Len(t, thread.Messages, 1)
	assert.Equal(t, "Tell me more about the equity terms.", thread.Messages[0].Body)
	assert.False(t, thread.Messages[0].IsOwn)
}

func TestSendRejectsUnknownRecipient(t *testing.T) {
	svc := newTestService(&fakeMessageRepo{}, &fakeNotifier{})

	_, err := svc.Send(context.Background(), "alice", SendMessageRequest{
		ReceiverID: "nobody",
		Body:       "hello",
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSendRejectsInactiveListing(t *testing.T) {
	svc := newTestService(&fakeMessageRepo{}, &fakeNotifier{})

	listingID := "lst-gone"
	_, err := svc.Send(context.Background(), "alice", SendMessageRequest{
		ReceiverID: "bob",
		ListingID:  &listingID,
		Body:       "hello",
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSendRejectsOversizedBody(t *testing.T) {
	svc := newTestService(&fakeMessageRepo{}, &fakeNotifier{})

	_, err := svc.Send(context.Background(), "alice", SendMessageRequest{
		ReceiverID: "bob",
		Body:       strings.Repeat("x", 5001),
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestSendSurvivesNotifierFailure(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := newTestService(repo, &fakeNotifier{err: errors.New("smtp down")})

	resp, err := svc.Send(context.Background(), "alice", SendMessageRequest{
		ReceiverID: "bob",
		Body:       "still goes through",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.MessageID)
	assert.Len(t, repo.messages, 1)
}

func TestThreadAccessDeniedForOutsiders(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := newTestService(repo, &fakeNotifier{})

	resp, err := svc.Send(context.Background(), "alice", SendMessageRequest{
		ReceiverID: "bob",
		Body:       "private",
	})
	require.NoError(t, err)

	_, err = svc.GetThread(context.Background(), resp.ThreadID, "mallory")
	assert.ErrorIs(t, err, core.ErrForbidden)

	err = svc.MarkThreadAsRead(context.Background(), resp.ThreadID, "mallory")
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestUnreadAccounting(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := newTestService(repo, &fakeNotifier{})

	resp, err := svc.Send(context.Background(), "alice", SendMessageRequest{
		ReceiverID: "bob",
		Body:       "first",
	})
	require.NoError(t, err)

	_, err = svc.Send(context.Background(), "alice", SendMessageRequest{
		ReceiverID: "bob",
		Body:       "second",
	})
	require.NoError(t, err)

	count, err := svc.TotalUnread(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Sender has nothing unread.
	count, err = svc.TotalUnread(context.Background(), "alice")
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(
		t,
		svc.MarkThreadAsRead(context.Background(), resp.ThreadID, "bob"),
	)

	count, err = svc.TotalUnread(context.Background(), "bob")
	require.NoError(t, err)
	assert.Zero(t, count)

	// Marking again is a no-op.
	require.NoError(
		t,
		svc.MarkThreadAsRead(context.Background(), resp.ThreadID, "bob"),
	)
}

func TestDeleteRequiresAuthorship(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := newTestService(repo, &fakeNotifier{})

	resp, err := svc.Send(context.Background(), "alice", SendMessageRequest{
		ReceiverID: "bob",
		Body:       "to be removed",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), resp.MessageID, "bob")
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Len(t, repo.messages, 1)

	require.NoError(
		t,
		svc.Delete(context.Background(), resp.MessageID, "alice"),
	)
	assert.Empty(t, repo.messages)
}

func TestInboxUnreadFlag(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.Send(context.Background(), "alice", SendMessageRequest{
		ReceiverID: "bob",
		Subject:    "hello",
		Body:       "first contact",
	})
	require.NoError(t, err)

	inbox, total, err := svc.Inbox(
		context.Background(),
		"bob",
		InboxParams{Page: 1, PageSize: 20},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, inbox.Conversations, 1)
	assert.True(t, inbox.Conversations[0].IsUnread)
	assert.Equal(t, 1, inbox.Conversations[0].UnreadCount)
	assert.Equal(t, 1, inbox.TotalUnread)
}
