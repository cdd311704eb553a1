package realtime

import (
	"context"
	"net/url"
	"strings"

	"github.com/pusher/pusher-http-go/v5"

	"github.com/yukikurage/retro-board-api/internal/config"
	"github.com/yukikurage/retro-board-api/internal/dto"
	"github.com/yukikurage/retro-board-api/internal/events"
)

// NewPusherClient builds the hosted pub/sub client. All four credentials are
// required.
func NewPusherClient(cfg config.PusherConfig) (*pusher.Client, error) {
	if !cfg.Complete() {
		return nil, ErrTransportNotConfigured
	}
	return &pusher.Client{
		AppID:   cfg.AppID,
		Key:     cfg.Key,
		Secret:  cfg.Secret,
		Cluster: cfg.Cluster,
		Secure:  true,
	}, nil
}

// PusherTransport triggers events on the hosted presence channels.
type PusherTransport struct {
	client *pusher.Client
}

func NewPusherTransport(client *pusher.Client) *PusherTransport {
	return &PusherTransport{client: client}
}

func (t *PusherTransport) Name() string {
	return "pusher"
}

func (t *PusherTransport) Trigger(ctx context.Context, channel string, event events.Name, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.client.Trigger(channel, string(event), payload)
}

// Authenticator signs presence-channel subscriptions for the hosted client.
type Authenticator struct {
	client *pusher.Client
}

// NewAuthenticator wraps client, which may be nil when unconfigured.
func NewAuthenticator(client *pusher.Client) *Authenticator {
	return &Authenticator{client: client}
}

// Configured reports whether subscriptions can be signed.
func (a *Authenticator) Configured() bool {
	return a != nil && a.client != nil
}

// Authenticate returns the signed auth response for req. Presence channels
// carry the user's id and display fields as member data.
func (a *Authenticator) Authenticate(req dto.RealtimeAuthRequest) ([]byte, error) {
	if !a.Configured() {
		return nil, ErrTransportNotConfigured
	}

	params := []byte(url.Values{
		"socket_id":    {req.SocketID},
		"channel_name": {req.ChannelName},
	}.Encode())

	if !strings.HasPrefix(req.ChannelName, "presence-") {
		return a.client.AuthorizePrivateChannel(params)
	}

	info := map[string]string{}
	if req.UserName != "" {
		info["name"] = req.UserName
	}
	if req.UserEmail != "" {
		info["email"] = req.UserEmail
	}
	return a.client.AuthorizePresenceChannel(params, pusher.MemberData{
		UserID:   req.UserID,
		UserInfo: info,
	})
}
