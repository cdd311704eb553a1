package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apierrors "github.com/yukikurage/retro-board-api/internal/errors"
	"github.com/yukikurage/retro-board-api/internal/metrics"
	"github.com/yukikurage/retro-board-api/internal/middleware"
	"github.com/yukikurage/retro-board-api/internal/realtime"
	"github.com/yukikurage/retro-board-api/internal/services"
)

const sessionName = "retro_session"

// RouterConfig carries everything the HTTP surface depends on.
type RouterConfig struct {
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	SessionStore sessions.Store
	Services     *services.Services
	Auth         *realtime.Authenticator
	// Hub is nil when the self-hosted stream is disabled.
	Hub *realtime.Hub
}

// NewRouter builds the gin engine with middleware and every API route.
func NewRouter(cfg RouterConfig) *gin.Engine {
	apierrors.UseJSONFieldNames()

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(cfg.Metrics))
	if cfg.SessionStore != nil {
		r.Use(sessions.Sessions(sessionName, cfg.SessionStore))
	}
	r.Use(middleware.CurrentUser())

	svc := cfg.Services
	boardHandler := NewBoardHandler(svc.Boards, logger)
	stageHandler := NewStageHandler(svc.Stages, logger)
	cardHandler := NewCardHandler(svc.Cards, logger)
	commentHandler := NewCommentHandler(svc.Comments, logger)
	reactionHandler := NewReactionHandler(svc.Reactions, logger)
	participantHandler := NewParticipantHandler(svc.Participants, logger)
	userHandler := NewUserHandler(svc.Users, logger)
	realtimeHandler := NewRealtimeHandler(cfg.Auth, cfg.Hub, logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Retro Board API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		boards := api.Group("/boards")
		{
			boards.GET("", boardHandler.ListBoards)
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("/:id", boardHandler.GetBoard)
			boards.PATCH("/:id", boardHandler.UpdateBoard)
			boards.DELETE("/:id", boardHandler.DeleteBoard)
			boards.POST("/:id/summary", boardHandler.SummarizeBoard)

			boards.GET("/:id/stages", stageHandler.ListStages)
			boards.POST("/:id/stages", stageHandler.CreateStage)

			boards.GET("/:id/cards", cardHandler.ListCards)
			boards.POST("/:id/cards", cardHandler.CreateCard)
			boards.PATCH("/:id/cards/:cardId", cardHandler.UpdateCard)
			boards.DELETE("/:id/cards/:cardId", cardHandler.DeleteCard)

			boards.GET("/:id/participants", participantHandler.ListParticipants)
			boards.POST("/:id/participants", participantHandler.UpsertParticipant)

			boards.GET("/:id/stream", middleware.RequireBoard(svc.Boards, logger), realtimeHandler.Stream)
		}

		cards := api.Group("/cards")
		{
			cards.GET("/:id/comments", commentHandler.ListComments)
			cards.POST("/:id/comments", commentHandler.CreateComment)
			cards.POST("/:id/reactions", reactionHandler.AddReaction)
			cards.DELETE("/:id/reactions", reactionHandler.RemoveReaction)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.POST("", userHandler.UpsertUser)
			users.GET("/me", userHandler.GetCurrentUser)
		}

		api.POST("/realtime/auth", realtimeHandler.Authenticate)
	}

	return r
}
