// AngelaMos | 2026
// handler.go

package listing

import (
	"encoding/json"
	"errors"
	"net"
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

// RegisterRoutes mounts the listing endpoints. Reads rely on the group-wide
// optional auth so anonymous visitors get the masked projection; creation
// requires a session.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/listings", func(r chi.Router) {
		r.Get("/", h.Browse)
		r.Get("/search", h.Search)
		r.Get("/{slug}", h.Get)
		r.Get("/{slug}/files/{fileID}", h.DownloadFile)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Post("/", h.Create)
		})
	})
}

func (h *Handler) Browse(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r.Context())
	params := parseBrowseParams(r)

	views, total, err := h.service.Browse(r.Context(), viewer, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, views, params.Page, params.PageSize, total)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r.Context())
	params := parseBrowseParams(r)
	query := r.URL.Query().Get("q")

	views, total, err := h.service.Search(r.Context(), viewer, query, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, views, params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r.Context())
	slug := chi.URLParam(r, "slug")

	view, err := h.service.Get(r.Context(), viewer, slug, ViewContext{
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "listing")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, view)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	role := middleware.GetUserRole(r.Context())

	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Create(r.Context(), userID, role, req)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "only entrepreneurs can create listings")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r.Context())
	slug := chi.URLParam(r, "slug")
	fileID := chi.URLParam(r, "fileID")

	download, err := h.service.GetFileDownload(r.Context(), viewer, slug, fileID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "file")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "your plan does not include this file")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, download)
}

func parseBrowseParams(r *http.Request) BrowseParams {
	q := r.URL.Query()

	params := BrowseParams{
		Industry:      q.Get("industry"),
		BusinessStage: q.Get("stage"),
		Location:      q.Get("location"),
		Page:          parseIntQuery(r, "page", 1),
		PageSize:      parseIntQuery(r, "page_size", 20),
	}

	if v, err := strconv.ParseInt(q.Get("min_funding"), 10, 64); err == nil {
		params.MinFunding = v
	}
	if v, err := strconv.ParseInt(q.Get("max_funding"), 10, 64); err == nil {
		params.MaxFunding = v
	}

	params.Normalize()
	return params
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

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}
