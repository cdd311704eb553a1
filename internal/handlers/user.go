package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/retro-board-api/internal/dto"
	apierrors "github.com/yukikurage/retro-board-api/internal/errors"
	"github.com/yukikurage/retro-board-api/internal/middleware"
	"github.com/yukikurage/retro-board-api/internal/services"
)

// UserHandler serves user lookups and keeps the session's remembered user.
type UserHandler struct {
	userService *services.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

// GetUsers returns the user with ?email=, or the newest users without it.
func (h *UserHandler) GetUsers(c *gin.Context) {
	if email := c.Query("email"); email != "" {
		user, err := h.userService.FindByEmail(c.Request.Context(), email)
		if err != nil {
			respondServiceError(c, h.logger, err, "Unable to fetch users")
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	users, err := h.userService.ListRecentUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpsertUser creates or updates the user by email and remembers them in the
// session.
func (h *UserHandler) UpsertUser(c *gin.Context) {
	var req dto.UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondBindError(c, err)
		return
	}

	user, err := h.userService.UpsertUser(c.Request.Context(), services.UpsertUserInput{
		Email:     req.Email,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to create user")
		return
	}

	if err := middleware.RememberUser(c, user.ID); err != nil {
		h.logger.Warn("Failed to save session", zap.String("user_id", user.ID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, user)
}

// GetCurrentUser returns the user remembered in the session.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		apierrors.NotFound(c, "No user remembered in this session")
		return
	}

	user, err := h.userService.FindByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Unable to fetch users", zap.String("user_id", userID))
		return
	}
	c.JSON(http.StatusOK, user)
}
