package dto

import "github.com/yukikurage/retro-board-api/internal/models"

// BoardDetail is the single-board response. Its collections always encode as
// arrays, even when empty.
type BoardDetail struct {
	*models.Board
	Stages       []models.Stage       `json:"stages"`
	Participants []models.Participant `json:"participants"`
	Cards        []models.Card        `json:"cards"`
}

func NewBoardDetail(board *models.Board) BoardDetail {
	detail := BoardDetail{
		Board:        board,
		Stages:       board.Stages,
		Participants: board.Participants,
		Cards:        board.Cards,
	}
	if detail.Stages == nil {
		detail.Stages = []models.Stage{}
	}
	if detail.Participants == nil {
		detail.Participants = []models.Participant{}
	}
	if detail.Cards == nil {
		detail.Cards = []models.Card{}
	}
	for i := range detail.Cards {
		detail.Cards[i].EnsureCollections()
	}
	return detail
}
