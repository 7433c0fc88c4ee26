package handlers

import (
	"net/http"

	"github.com/bargainhunt/backend/internal/api/request"
	"github.com/bargainhunt/backend/internal/api/response"
	"github.com/bargainhunt/backend/internal/models"
	"github.com/bargainhunt/backend/internal/service"
)

// UserHandler serves the anonymous user lifecycle and quota endpoints
type UserHandler struct {
	users *service.UserService
	quota *service.QuotaService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService, quota *service.QuotaService) *UserHandler {
	return &UserHandler{users: users, quota: quota}
}

type userIDRequest struct {
	UserID string `json:"userId"`
}

func decodeUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req userIDRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return "", false
	}
	return req.UserID, true
}

// Init handles POST /api/user/init
func (h *UserHandler) Init(w http.ResponseWriter, r *http.Request) {
	userID, ok := decodeUserID(w, r)
	if !ok {
		return
	}

	user, err := h.users.EnsureUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, msgUserIDMissing)
		return
	}
	h.writeStatus(w, r, user)
}

// Get handles GET /api/user/{userId}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), request.GetURLParam(r, "userId"))
	if err != nil {
		writeError(w, r, err, msgUserIDMissing)
		return
	}
	h.writeStatus(w, r, user)
}

func (h *UserHandler) writeStatus(w http.ResponseWriter, r *http.Request, user *models.User) {
	status, err := h.quota.Status(r.Context(), user)
	if err != nil {
		writeError(w, r, err, msgUserIDMissing)
		return
	}
	response.OK(w, status)
}

// Upgrade handles POST /api/user/upgrade
func (h *UserHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := decodeUserID(w, r)
	if !ok {
		return
	}
	if err := h.users.Upgrade(r.Context(), userID); err != nil {
		writeError(w, r, err, msgUserIDMissing)
		return
	}
	response.Success(w, "")
}

// Reset handles POST /api/user/reset
func (h *UserHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID, ok := decodeUserID(w, r)
	if !ok {
		return
	}
	if err := h.users.Reset(r.Context(), userID); err != nil {
		writeError(w, r, err, msgUserIDMissing)
		return
	}
	response.Success(w, "User reset to free tier")
}

// LogSearch handles POST /api/user/log-search
func (h *UserHandler) LogSearch(w http.ResponseWriter, r *http.Request) {
	userID, ok := decodeUserID(w, r)
	if !ok {
		return
	}
	count, err := h.quota.Consume(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, msgUserIDMissing)
		return
	}
	response.OK(w, response.SuccessResponse{Success: true, NewCount: &count})
}
