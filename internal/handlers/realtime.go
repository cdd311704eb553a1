package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/retro-board-api/internal/dto"
	apierrors "github.com/yukikurage/retro-board-api/internal/errors"
	"github.com/yukikurage/retro-board-api/internal/realtime"
)

// RealtimeHandler signs hosted presence subscriptions and serves the
// self-hosted board stream.
type RealtimeHandler struct {
	auth   *realtime.Authenticator
	hub    *realtime.Hub
	logger *zap.Logger
}

// NewRealtimeHandler creates the handler. hub may be nil when the stream is
// disabled.
func NewRealtimeHandler(auth *realtime.Authenticator, hub *realtime.Hub, logger *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{auth: auth, hub: hub, logger: logger}
}

// Authenticate accepts a JSON or form-encoded subscription request.
func (h *RealtimeHandler) Authenticate(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		apierrors.BadRequest(c, "Missing authentication data")
		return
	}

	req := parseRealtimeAuth(raw)
	if !req.Complete() {
		apierrors.BadRequest(c, "Missing authentication data")
		return
	}

	if !h.auth.Configured() {
		apierrors.ServiceUnavailable(c, "Pusher is not configured")
		return
	}

	response, err := h.auth.Authenticate(req)
	if err != nil {
		h.logger.Warn("Unable to authenticate presence subscription",
			zap.String("channel", req.ChannelName),
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)
		apierrors.InternalError(c, "Failed to authenticate")
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", response)
}

// parseRealtimeAuth reads a JSON object or a form body. JSON fields count only
// when they are strings; other types are treated as absent.
func parseRealtimeAuth(raw []byte) dto.RealtimeAuthRequest {
	if len(raw) == 0 {
		return dto.RealtimeAuthRequest{}
	}
	if json.Valid(raw) {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return dto.RealtimeAuthRequest{}
		}
		return dto.RealtimeAuthRequest{
			SocketID:    stringField(fields, "socket_id"),
			ChannelName: stringField(fields, "channel_name"),
			UserID:      stringField(fields, "user_id"),
			UserName:    stringField(fields, "user_name"),
			UserEmail:   stringField(fields, "user_email"),
		}
	}

	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return dto.RealtimeAuthRequest{}
	}
	return dto.RealtimeAuthRequest{
		SocketID:    values.Get("socket_id"),
		ChannelName: values.Get("channel_name"),
		UserID:      values.Get("user_id"),
		UserName:    values.Get("user_name"),
		UserEmail:   values.Get("user_email"),
	}
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

// Stream upgrades to a websocket carrying the board's events.
func (h *RealtimeHandler) Stream(c *gin.Context) {
	if h.hub == nil {
		apierrors.ServiceUnavailable(c, "Live stream is disabled")
		return
	}

	boardID := c.Param("id")
	if err := h.hub.ServeBoard(c.Writer, c.Request, boardID); err != nil {
		h.logger.Warn("Stream upgrade failed", zap.String("board_id", boardID), zap.Error(err))
	}
}
