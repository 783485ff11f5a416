// AngelaMos | 2026
// handler.go

package message

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/isowebtech/fundify-api/internal/core"
	"github.com/isowebtech/fundify-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/messages", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Send)
		r.Get("/inbox", h.Inbox)
		r.Get("/unread-count", h.UnreadCount)
		r.Get("/threads/{threadID}", h.GetThread)
		r.Get("/threads/{threadID}/info", h.GetThreadInfo)
		r.Post("/threads/{threadID}/read", h.MarkRead)
		r.Delete("/{messageID}", h.Delete)
	})
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Send(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, err.Error())
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "recipient or listing")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "account is not active")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Inbox(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	params := InboxParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
	}
	params.Normalize()

	resp, total, err := h.service.Inbox(r.Context(), userID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, resp, params.Page, params.PageSize, total)
}

func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	count, err := h.service.TotalUnread(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, UnreadCountResponse{TotalUnread: count})
}

// GetThread serves the conversation and then marks the caller's side read,
// mirroring how opening a conversation behaves in the UI. The read flip is
// best-effort once the fetch succeeded.
func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	threadID := chi.URLParam(r, "threadID")

	resp, err := h.service.GetThread(r.Context(), threadID, userID)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "you are not part of this conversation")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	//nolint:errcheck // best-effort read marking on open
	_ = h.service.MarkThreadAsRead(r.Context(), threadID, userID)

	core.OK(w, resp)
}

func (h *Handler) GetThreadInfo(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	threadID := chi.URLParam(r, "threadID")

	resp, err := h.service.GetThreadInfo(r.Context(), threadID, userID)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "you are not part of this conversation")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "thread")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	threadID := chi.URLParam(r, "threadID")

	if err := h.service.MarkThreadAsRead(r.Context(), threadID, userID); err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "you are not part of this conversation")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	messageID := chi.URLParam(r, "messageID")

	if err := h.service.Delete(r.Context(), messageID, userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "message")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "only the sender can delete a message")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
