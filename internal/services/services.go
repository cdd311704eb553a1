package services

import (
	"gorm.io/gorm"

	"github.com/yukikurage/retro-board-api/internal/metrics"
	"github.com/yukikurage/retro-board-api/internal/repository"
)

// Services bundles every service over one database handle.
type Services struct {
	Boards       *BoardService
	Stages       *StageService
	Cards        *CardService
	Comments     *CommentService
	Reactions    *ReactionService
	Participants *ParticipantService
	Users        *UserService
}

// New wires the gorm repositories into the services. publisher receives the
// board events of card and reaction mutations; ai may be nil.
func New(db *gorm.DB, publisher EventPublisher, ai *AIService, m *metrics.Metrics) *Services {
	userRepo := repository.NewUserRepository(db)
	stageRepo := repository.NewStageRepository(db)

	boards := NewBoardService(repository.NewBoardRepository(db), userRepo, ai, m)
	cards := NewCardService(repository.NewCardRepository(db), stageRepo, boards, publisher, m)

	return &Services{
		Boards:       boards,
		Stages:       NewStageService(stageRepo, boards),
		Cards:        cards,
		Comments:     NewCommentService(repository.NewCommentRepository(db), cards),
		Reactions:    NewReactionService(repository.NewReactionRepository(db), cards, publisher, m),
		Participants: NewParticipantService(repository.NewParticipantRepository(db), boards),
		Users:        NewUserService(userRepo),
	}
}
