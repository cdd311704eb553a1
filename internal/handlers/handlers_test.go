package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pusher/pusher-http-go/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"github.com/yukikurage/retro-board-api/internal/events"
	"github.com/yukikurage/retro-board-api/internal/metrics"
	"github.com/yukikurage/retro-board-api/internal/models"
	"github.com/yukikurage/retro-board-api/internal/realtime"
	"github.com/yukikurage/retro-board-api/internal/services"
	"github.com/yukikurage/retro-board-api/internal/testutil"
)

type notification struct {
	boardID string
	event   events.Name
	payload any
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []notification
}

func (p *recordingPublisher) Notify(boardID string, event events.Name, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, notification{boardID: boardID, event: event, payload: payload})
}

func (p *recordingPublisher) last() notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sent[len(p.sent)-1]
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

type boardBody struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Stages []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Order int    `json:"order"`
	} `json:"stages"`
	Participants []struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	} `json:"participants"`
	Cards []json.RawMessage `json:"cards"`
}

type cardBody struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	StageID   string `json:"stageId"`
	Type      string `json:"type"`
	Reactions []struct {
		ID     string `json:"id"`
		UserID string `json:"userId"`
		Type   string `json:"type"`
	} `json:"reactions"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HandlerTestSuite drives the full router against an in-memory database.
type HandlerTestSuite struct {
	suite.Suite
	db        *gorm.DB
	publisher *recordingPublisher
	router    *gin.Engine
	auth      *realtime.Authenticator
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.db = testutil.NewSQLite(suite.T())
	suite.publisher = &recordingPublisher{}
	suite.auth = realtime.NewAuthenticator(nil)

	suite.router = suite.newRouter()
}

func (suite *HandlerTestSuite) newRouter() *gin.Engine {
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry, zap.NewNop())
	return NewRouter(RouterConfig{
		Logger:       zap.NewNop(),
		Metrics:      m,
		Gatherer:     registry,
		SessionStore: cookie.NewStore([]byte("test-secret")),
		Services:     services.New(suite.db, suite.publisher, nil, m),
		Auth:         suite.auth,
	})
}

func (suite *HandlerTestSuite) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (suite *HandlerTestSuite) createBoard(title string) boardBody {
	w := suite.do(http.MethodPost, "/api/boards", gin.H{"title": title})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var board boardBody
	suite.decode(w, &board)
	return board
}

func (suite *HandlerTestSuite) createCard(board boardBody, content string) cardBody {
	w := suite.do(http.MethodPost, "/api/boards/"+board.ID+"/cards", gin.H{
		"content": content,
		"stageId": board.Stages[0].ID,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var card cardBody
	suite.decode(w, &card)
	return card
}

func (suite *HandlerTestSuite) assertError(w *httptest.ResponseRecorder, status int, message string) {
	suite.Equal(status, w.Code, w.Body.String())
	var body errorBody
	suite.decode(w, &body)
	suite.Equal(message, body.Error)
}

func (suite *HandlerTestSuite) TestSprintScenario() {
	board := suite.createBoard("Sprint 1")
	suite.Require().Len(board.Stages, 3)
	for i, name := range []string{"Start", "Stop", "Continue"} {
		suite.Equal(name, board.Stages[i].Name)
		suite.Equal(i, board.Stages[i].Order)
	}
	suite.Equal("DRAFT", board.Status)
	suite.NotNil(board.Cards)

	card := suite.createCard(board, "Too many meetings")
	suite.Equal("Too many meetings", card.Content)
	suite.Equal(board.Stages[0].ID, card.StageID)
	suite.Equal(events.CardCreated, suite.publisher.last().event)

	w := suite.do(http.MethodPost, "/api/cards/"+card.ID+"/reactions", gin.H{"type": "UPVOTE", "userId": "u1"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodGet, "/api/boards/"+board.ID+"/cards", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var cards []cardBody
	suite.decode(w, &cards)
	suite.Require().Len(cards, 1)
	suite.Require().Len(cards[0].Reactions, 1)
	suite.Equal("UPVOTE", cards[0].Reactions[0].Type)
}

func (suite *HandlerTestSuite) TestCreateBoard_CustomStagesAndOwnerEmail() {
	w := suite.do(http.MethodPost, "/api/boards", gin.H{
		"title":      "Quarterly",
		"ownerEmail": "ada@example.com",
		"ownerName":  "Ada",
		"stages": []gin.H{
			{"name": "Glad"},
			{"name": "Sad"},
			{"name": "Mad", "order": 7},
		},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var board boardBody
	suite.decode(w, &board)
	suite.Require().Len(board.Stages, 3)
	suite.Equal("Glad", board.Stages[0].Name)
	suite.Equal(7, board.Stages[2].Order)
	suite.Require().Len(board.Participants, 1)
	suite.Equal("OWNER", board.Participants[0].Role)

	var owner models.User
	suite.Require().NoError(suite.db.Where("email = ?", "ada@example.com").First(&owner).Error)
	suite.Equal(owner.ID, board.Participants[0].UserID)
}

func (suite *HandlerTestSuite) TestCreateBoard_Validation() {
	suite.assertError(suite.do(http.MethodPost, "/api/boards", `{"title":`), http.StatusBadRequest, "Invalid JSON body")
	suite.assertError(suite.do(http.MethodPost, "/api/boards", gin.H{"summary": "x"}), http.StatusUnprocessableEntity, "title is required")
	suite.assertError(suite.do(http.MethodPost, "/api/boards", gin.H{"title": "x", "status": "LIVE"}),
		http.StatusUnprocessableEntity, `Invalid board status "LIVE"`)

	var count int64
	suite.db.Model(&models.Board{}).Count(&count)
	suite.Zero(count)
}

func (suite *HandlerTestSuite) TestListBoards_OwnerFilterAndLimit() {
	suite.createBoard("First")
	w := suite.do(http.MethodPost, "/api/boards", gin.H{"title": "Mine", "ownerEmail": "me@example.com"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var mine boardBody
	suite.decode(w, &mine)

	var owner models.User
	suite.Require().NoError(suite.db.Where("email = ?", "me@example.com").First(&owner).Error)

	w = suite.do(http.MethodGet, "/api/boards?ownerId="+owner.ID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var boards []boardBody
	suite.decode(w, &boards)
	suite.Require().Len(boards, 1)
	suite.Equal(mine.ID, boards[0].ID)

	w = suite.do(http.MethodGet, "/api/boards?limit=1", nil)
	suite.decode(w, &boards)
	suite.Require().Len(boards, 1)
	suite.Equal("Mine", boards[0].Title)
}

func (suite *HandlerTestSuite) TestGetBoard_NotFound() {
	suite.assertError(suite.do(http.MethodGet, "/api/boards/missing", nil), http.StatusNotFound, "Board not found")
}

func (suite *HandlerTestSuite) TestUpdateBoard_InvalidStatusLeavesBoardUnchanged() {
	board := suite.createBoard("Sprint 1")

	w := suite.do(http.MethodPatch, "/api/boards/"+board.ID, gin.H{"status": "NOT_A_REAL_STATUS", "title": "Renamed"})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var body errorBody
	suite.decode(w, &body)
	suite.NotEmpty(body.Error)

	w = suite.do(http.MethodGet, "/api/boards/"+board.ID, nil)
	var fetched boardBody
	suite.decode(w, &fetched)
	suite.Equal("Sprint 1", fetched.Title)
	suite.Equal("DRAFT", fetched.Status)
}

func (suite *HandlerTestSuite) TestUpdateBoard_Partial() {
	board := suite.createBoard("Sprint 1")

	w := suite.do(http.MethodPatch, "/api/boards/"+board.ID, gin.H{"status": "ACTIVE", "summary": "Went well"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(http.MethodPatch, "/api/boards/"+board.ID, `{"summary":null}`)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var stored models.Board
	suite.Require().NoError(suite.db.First(&stored, "id = ?", board.ID).Error)
	suite.Equal(models.BoardStatusActive, stored.Status)
	suite.Equal("Sprint 1", stored.Title)
	suite.Nil(stored.Summary)

	suite.assertError(suite.do(http.MethodPatch, "/api/boards/missing", gin.H{"title": "x"}), http.StatusNotFound, "Board not found")
}

func (suite *HandlerTestSuite) TestDeleteBoard() {
	board := suite.createBoard("Sprint 1")
	suite.createCard(board, "Too many meetings")

	w := suite.do(http.MethodDelete, "/api/boards/"+board.ID, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"success":true}`, w.Body.String())

	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/boards/"+board.ID, nil).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodDelete, "/api/boards/"+board.ID, nil).Code)
}

func (suite *HandlerTestSuite) TestSummarizeBoard_Unconfigured() {
	board := suite.createBoard("Sprint 1")
	suite.assertError(suite.do(http.MethodPost, "/api/boards/"+board.ID+"/summary", nil),
		http.StatusServiceUnavailable, "AI service is not configured")
}

func (suite *HandlerTestSuite) TestStages() {
	board := suite.createBoard("Sprint 1")

	suite.assertError(suite.do(http.MethodPost, "/api/boards/"+board.ID+"/stages", gin.H{}), http.StatusUnprocessableEntity, "name is required")

	w := suite.do(http.MethodPost, "/api/boards/"+board.ID+"/stages", gin.H{"name": "Kudos"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var stage struct {
		Name  string `json:"name"`
		Order int    `json:"order"`
	}
	suite.decode(w, &stage)
	suite.Equal(3, stage.Order)

	w = suite.do(http.MethodGet, "/api/boards/"+board.ID+"/stages", nil)
	var stages []struct {
		Name string `json:"name"`
	}
	suite.decode(w, &stages)
	suite.Require().Len(stages, 4)
	suite.Equal("Kudos", stages[3].Name)

	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/boards/missing/stages", nil).Code)
}

func (suite *HandlerTestSuite) TestCreateCard_Validation() {
	board := suite.createBoard("Sprint 1")
	other := suite.createBoard("Sprint 2")
	path := "/api/boards/" + board.ID + "/cards"

	suite.assertError(suite.do(http.MethodPost, path, gin.H{}), http.StatusUnprocessableEntity, "content and stageId are required")
	suite.assertError(suite.do(http.MethodPost, path, gin.H{"content": "x", "stageId": board.Stages[0].ID, "type": "LOL"}),
		http.StatusUnprocessableEntity, `Invalid card type "LOL"`)
	suite.assertError(suite.do(http.MethodPost, path, gin.H{"content": "x", "stageId": other.Stages[0].ID}),
		http.StatusUnprocessableEntity, "Stage does not belong to this board")
	suite.assertError(suite.do(http.MethodPost, "/api/boards/missing/cards", gin.H{"content": "x", "stageId": "s"}),
		http.StatusNotFound, "Board not found")

	suite.Zero(suite.publisher.count())
}

func (suite *HandlerTestSuite) TestUpdateAndDeleteCard() {
	board := suite.createBoard("Sprint 1")
	card := suite.createCard(board, "Too many meetings")
	path := "/api/boards/" + board.ID + "/cards/" + card.ID

	w := suite.do(http.MethodPatch, path, gin.H{"content": "Fewer meetings", "type": "ACTION_ITEM", "stageId": board.Stages[1].ID},
		"X-User-Id", "u7")
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var updated cardBody
	suite.decode(w, &updated)
	suite.Equal("Fewer meetings", updated.Content)
	suite.Equal("ACTION_ITEM", updated.Type)
	suite.Equal(board.Stages[1].ID, updated.StageID)

	sent := suite.publisher.last()
	suite.Equal(events.CardUpdated, sent.event)
	suite.Equal(board.ID, sent.boardID)
	suite.Equal("u7", *sent.payload.(events.CardUpdatedPayload).InitiatorID)

	suite.assertError(suite.do(http.MethodPatch, path, gin.H{"type": "LOL"}), http.StatusUnprocessableEntity, `Invalid card type "LOL"`)

	w = suite.do(http.MethodDelete, path, nil, "X-User-Id", "u7")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"success":true}`, w.Body.String())
	suite.Equal(events.CardDeleted, suite.publisher.last().event)

	suite.assertError(suite.do(http.MethodDelete, path, nil), http.StatusNotFound, "Card not found")
	suite.assertError(suite.do(http.MethodPatch, path, gin.H{"content": "x"}), http.StatusNotFound, "Card not found")
}

func (suite *HandlerTestSuite) TestComments() {
	board := suite.createBoard("Sprint 1")
	card := suite.createCard(board, "Too many meetings")
	author := testutil.CreateUser(suite.T(), suite.db, "bo@example.com")
	path := "/api/cards/" + card.ID + "/comments"

	suite.assertError(suite.do(http.MethodPost, path, gin.H{"body": "agreed"}), http.StatusUnprocessableEntity, "authorId is required")

	for _, body := range []string{"first", "second"} {
		w := suite.do(http.MethodPost, path, gin.H{"body": body, "authorId": author.ID})
		suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	}

	w := suite.do(http.MethodGet, path, nil)
	var comments []struct {
		Body string `json:"body"`
	}
	suite.decode(w, &comments)
	suite.Require().Len(comments, 2)
	suite.Equal("first", comments[0].Body)

	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/cards/missing/comments", nil).Code)
}

func (suite *HandlerTestSuite) TestReactions() {
	board := suite.createBoard("Sprint 1")
	card := suite.createCard(board, "Too many meetings")
	path := "/api/cards/" + card.ID + "/reactions"

	for i := 0; i < 2; i++ {
		w := suite.do(http.MethodPost, path, gin.H{"type": "UPVOTE", "userId": "u1"})
		suite.Require().Equal(http.StatusCreated, w.Code)
	}
	var count int64
	suite.db.Model(&models.Reaction{}).Where("card_id = ?", card.ID).Count(&count)
	suite.EqualValues(1, count)

	added := suite.publisher.last()
	suite.Equal(events.CardReactionAdded, added.event)
	suite.Equal(board.ID, added.boardID)

	suite.assertError(suite.do(http.MethodPost, path, gin.H{"type": "UPVOTE"}), http.StatusUnprocessableEntity, "userId is required")
	suite.assertError(suite.do(http.MethodDelete, path+"?type=UPVOTE", nil),
		http.StatusUnprocessableEntity, "type and userId query params are required")
	suite.assertError(suite.do(http.MethodDelete, path+"?type=HEART&userId=u1", nil), http.StatusNotFound, "Reaction not found")

	w := suite.do(http.MethodDelete, path+"?type=UPVOTE&userId=u1", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"success":true}`, w.Body.String())

	removed := suite.publisher.last()
	suite.Equal(events.CardReactionRemoved, removed.event)
	payload := removed.payload.(events.ReactionRemovedPayload)
	suite.Equal("u1", payload.Reaction.UserID)
	suite.Equal("u1", *payload.InitiatorID)

	suite.assertError(suite.do(http.MethodPost, "/api/cards/missing/reactions", gin.H{"type": "UPVOTE", "userId": "u1"}),
		http.StatusNotFound, "Card not found")
}

func (suite *HandlerTestSuite) TestParticipants() {
	board := suite.createBoard("Sprint 1")
	path := "/api/boards/" + board.ID + "/participants"

	suite.assertError(suite.do(http.MethodPost, path, gin.H{}), http.StatusUnprocessableEntity, "userId is required")
	suite.assertError(suite.do(http.MethodPost, path, gin.H{"userId": "u1", "role": "KING"}),
		http.StatusUnprocessableEntity, `Invalid participant role "KING"`)

	w := suite.do(http.MethodPost, path, gin.H{"userId": "u1"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	w = suite.do(http.MethodPost, path, gin.H{"userId": "u1", "role": "FACILITATOR"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodGet, path, nil)
	var participants []struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	suite.decode(w, &participants)
	suite.Require().Len(participants, 1)
	suite.Equal("FACILITATOR", participants[0].Role)
}

func (suite *HandlerTestSuite) TestUsersAndSession() {
	suite.assertError(suite.do(http.MethodPost, "/api/users", gin.H{"name": "Ada"}), http.StatusUnprocessableEntity, "email is required")
	suite.assertError(suite.do(http.MethodGet, "/api/users/me", nil), http.StatusNotFound, "No user remembered in this session")

	w := suite.do(http.MethodPost, "/api/users", gin.H{"email": "ada@example.com", "name": "Ada"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	suite.decode(w, &user)
	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.AddCookie(cookies[0])
	me := httptest.NewRecorder()
	suite.router.ServeHTTP(me, req)
	suite.Equal(http.StatusOK, me.Code)
	suite.Contains(me.Body.String(), user.ID)

	w = suite.do(http.MethodGet, "/api/users?email=ada@example.com", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), user.ID)

	suite.assertError(suite.do(http.MethodGet, "/api/users?email=nobody@example.com", nil), http.StatusNotFound, "User not found")

	w = suite.do(http.MethodGet, "/api/users", nil)
	var users []json.RawMessage
	suite.decode(w, &users)
	suite.Len(users, 1)
}

func (suite *HandlerTestSuite) TestRealtimeAuth() {
	suite.assertError(suite.do(http.MethodPost, "/api/realtime/auth", gin.H{"socket_id": "1.1"}),
		http.StatusBadRequest, "Missing authentication data")
	suite.assertError(suite.do(http.MethodPost, "/api/realtime/auth", gin.H{
		"socket_id": "1.1", "channel_name": "presence-retro-board-b1", "user_id": "u1",
	}), http.StatusServiceUnavailable, "Pusher is not configured")

	*suite.auth = *realtime.NewAuthenticator(&pusher.Client{AppID: "1", Key: "key", Secret: "secret", Cluster: "eu"})

	w := suite.do(http.MethodPost, "/api/realtime/auth", gin.H{
		"socket_id": "1234.5678", "channel_name": "presence-retro-board-b1", "user_id": "u1", "user_name": "Ada",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"auth":"key:`)
	suite.Contains(w.Body.String(), "channel_data")

	form := "socket_id=1234.5678&channel_name=presence-retro-board-b1&user_id=u1"
	req := httptest.NewRequest(http.MethodPost, "/api/realtime/auth", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	formResp := httptest.NewRecorder()
	suite.router.ServeHTTP(formResp, req)
	suite.Equal(http.StatusOK, formResp.Code, formResp.Body.String())

	suite.assertError(suite.do(http.MethodPost, "/api/realtime/auth", gin.H{
		"socket_id": "not-a-socket", "channel_name": "presence-retro-board-b1", "user_id": "u1",
	}), http.StatusInternalServerError, "Failed to authenticate")
}

func (suite *HandlerTestSuite) TestRealtimeAuth_NonStringDisplayFieldsIgnored() {
	*suite.auth = *realtime.NewAuthenticator(&pusher.Client{AppID: "1", Key: "key", Secret: "secret", Cluster: "eu"})

	w := suite.do(http.MethodPost, "/api/realtime/auth", gin.H{
		"socket_id": "123.456", "channel_name": "presence-retro-board-b1", "user_id": "u1", "user_name": 42,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Auth        string `json:"auth"`
		ChannelData string `json:"channel_data"`
	}
	suite.decode(w, &body)
	suite.True(strings.HasPrefix(body.Auth, "key:"))

	var member struct {
		UserID   string         `json:"user_id"`
		UserInfo map[string]any `json:"user_info"`
	}
	suite.Require().NoError(json.Unmarshal([]byte(body.ChannelData), &member))
	suite.Equal("u1", member.UserID)
	suite.NotContains(member.UserInfo, "name")

	suite.assertError(suite.do(http.MethodPost, "/api/realtime/auth", gin.H{
		"socket_id": "123.456", "channel_name": "presence-retro-board-b1", "user_id": 7,
	}), http.StatusBadRequest, "Missing authentication data")
}

func (suite *HandlerTestSuite) TestStream_DisabledOrMissingBoard() {
	board := suite.createBoard("Sprint 1")
	suite.assertError(suite.do(http.MethodGet, "/api/boards/missing/stream", nil), http.StatusNotFound, "Board not found")
	suite.assertError(suite.do(http.MethodGet, "/api/boards/"+board.ID+"/stream", nil),
		http.StatusServiceUnavailable, "Live stream is disabled")
}

func (suite *HandlerTestSuite) TestHealthAndMetrics() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)

	suite.do(http.MethodGet, "/api/boards", nil)
	w = suite.do(http.MethodGet, "/metrics", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `retro_board_http_requests_total{endpoint="/api/boards",method="GET",status="2xx"} 1`)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func TestListBoards_StoreFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := testutil.NewMock(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	core, logs := observer.New(zapcore.ErrorLevel)
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	router := NewRouter(RouterConfig{
		Logger:   zap.New(core),
		Metrics:  m,
		Services: services.New(db, nil, nil, m),
		Auth:     realtime.NewAuthenticator(nil),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/boards", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Unable to fetch boards","code":"INTERNAL_ERROR"}`, w.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("Unable to fetch boards").Len())
	assert.NotContains(t, w.Body.String(), "connection reset")
}
