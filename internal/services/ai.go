package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/yukikurage/retro-board-api/internal/models"
)

type AIService struct {
	client *openai.Client
	model  string
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4o,
	}
}

// NewAIServiceWithConfig builds the service on a custom client config, e.g. a
// different base URL.
func NewAIServiceWithConfig(config openai.ClientConfig) *AIService {
	return &AIService{
		client: openai.NewClientWithConfig(config),
		model:  openai.GPT4o,
	}
}

// SummarizeBoard writes a short retrospective summary of the board's cards
// grouped by stage, most upvoted first.
func (s *AIService) SummarizeBoard(ctx context.Context, board *models.Board) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are facilitating a team retrospective titled %q.
Summarize the feedback below in at most five short bullet points, then list the agreed action items.
Give more weight to cards with more upvotes. Reply with plain text only.

%s`, board.Title, digest(board))

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("empty summary from OpenAI")
	}
	return summary, nil
}

// digest renders the board as "## Stage" sections with one card per line.
func digest(board *models.Board) string {
	byStage := make(map[string][]models.Card, len(board.Stages))
	for _, card := range board.Cards {
		byStage[card.StageID] = append(byStage[card.StageID], card)
	}

	var b strings.Builder
	for _, stage := range board.Stages {
		cards := byStage[stage.ID]
		if len(cards) == 0 {
			continue
		}
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].UpvoteCount() > cards[j].UpvoteCount()
		})
		fmt.Fprintf(&b, "## %s\n", stage.Name)
		for _, card := range cards {
			fmt.Fprintf(&b, "- %s (%d upvotes)\n", card.Content, card.UpvoteCount())
		}
	}
	return b.String()
}
