package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/retro-board-api/internal/models"
)

type bindTarget struct {
	Content string           `json:"content" binding:"required"`
	StageID string           `json:"stageId" binding:"required"`
	Type    *models.CardType `json:"type"`
}

func bind(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	UseJSONFieldNames()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var target bindTarget
	err := c.ShouldBindJSON(&target)
	require.Error(t, err)
	RespondBindError(c, err)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondBindError_Malformed(t *testing.T) {
	w := bind(t, `{"content":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid JSON body", decode(t, w).Message)
}

func TestRespondBindError_MissingFields(t *testing.T) {
	w := bind(t, `{"type":"START"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode(t, w)
	assert.Equal(t, ErrCodeMissingField, body.Code)
	assert.Equal(t, "content and stageId are required", body.Message)
}

func TestRespondBindError_UnknownEnum(t *testing.T) {
	w := bind(t, `{"content":"x","stageId":"s","type":"LOL"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode(t, w)
	assert.Equal(t, ErrCodeInvalidEnum, body.Code)
	assert.Equal(t, `Invalid card type "LOL"`, body.Message)
}
