package dto

import "github.com/yukikurage/retro-board-api/internal/models"

type UpsertParticipantRequest struct {
	UserID string                  `json:"userId" binding:"required"`
	Role   *models.ParticipantRole `json:"role"`
}

type UpsertUserRequest struct {
	Email     string  `json:"email" binding:"required"`
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

// RealtimeAuthRequest is a presence-channel subscription request. It arrives
// as JSON or as a form post from the hosted client library.
type RealtimeAuthRequest struct {
	SocketID    string `json:"socket_id" form:"socket_id"`
	ChannelName string `json:"channel_name" form:"channel_name"`
	UserID      string `json:"user_id" form:"user_id"`
	UserName    string `json:"user_name" form:"user_name"`
	UserEmail   string `json:"user_email" form:"user_email"`
}

// Complete reports whether the three required fields are present.
func (r RealtimeAuthRequest) Complete() bool {
	return r.SocketID != "" && r.ChannelName != "" && r.UserID != ""
}
