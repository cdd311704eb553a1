package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/retro-board-api/internal/models"
)

func TestUpdateBoardRequest_FieldPresence(t *testing.T) {
	var req UpdateBoardRequest
	require.NoError(t, json.Unmarshal([]byte(`{"summary":null,"facilitatorId":"u1"}`), &req))

	assert.Nil(t, req.Title)
	assert.True(t, req.Summary.Set)
	assert.Nil(t, req.Summary.Value)
	assert.True(t, req.FacilitatorID.Set)
	require.NotNil(t, req.FacilitatorID.Value)
	assert.Equal(t, "u1", *req.FacilitatorID.Value)
	assert.False(t, req.ScheduledFor.Set)
}

func TestUpdateBoardRequest_UnknownStatus(t *testing.T) {
	var req UpdateBoardRequest
	err := json.Unmarshal([]byte(`{"status":"NOT_A_REAL_STATUS"}`), &req)

	var enumErr *models.EnumError
	require.True(t, errors.As(err, &enumErr))
	assert.Equal(t, "NOT_A_REAL_STATUS", enumErr.Value)
}

func TestUpdateCardRequest_NullableType(t *testing.T) {
	var req UpdateCardRequest
	require.NoError(t, json.Unmarshal([]byte(`{"type":"ACTION_ITEM"}`), &req))
	require.NotNil(t, req.Type.Value)
	assert.Equal(t, models.CardTypeActionItem, *req.Type.Value)

	req = UpdateCardRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"type":null}`), &req))
	assert.True(t, req.Type.Set)
	assert.Nil(t, req.Type.Value)
}

func TestRealtimeAuthRequest_Complete(t *testing.T) {
	assert.False(t, RealtimeAuthRequest{SocketID: "1.2", ChannelName: "c"}.Complete())
	assert.True(t, RealtimeAuthRequest{SocketID: "1.2", ChannelName: "c", UserID: "u"}.Complete())
}

func TestNewBoardDetail_EncodesEmptyCollections(t *testing.T) {
	detail := NewBoardDetail(&models.Board{ID: "b1", Title: "Sprint 1", Cards: []models.Card{{ID: "c1"}}})

	raw, err := json.Marshal(detail)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Sprint 1", decoded["title"])
	assert.Equal(t, []any{}, decoded["stages"])
	assert.Equal(t, []any{}, decoded["participants"])

	cards := decoded["cards"].([]any)
	require.Len(t, cards, 1)
	assert.Equal(t, []any{}, cards[0].(map[string]any)["reactions"])
}
