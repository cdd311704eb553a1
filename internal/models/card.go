package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const ReactionUpvote = "UPVOTE"

type Card struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	BoardID   string    `gorm:"type:varchar(36);index;not null" json:"boardId"`
	StageID   string    `gorm:"type:varchar(36);index;not null" json:"stageId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Type      *CardType `gorm:"type:varchar(20)" json:"type"`
	AuthorID  *string   `gorm:"type:varchar(36);index" json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Author    *User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"author"`
	Stage     *Stage     `gorm:"foreignKey:StageID" json:"stage,omitempty"`
	Comments  []Comment  `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"comments"`
	Reactions []Reaction `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"reactions"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// EnsureCollections replaces nil relation slices so they encode as [].
func (c *Card) EnsureCollections() {
	if c.Comments == nil {
		c.Comments = []Comment{}
	}
	if c.Reactions == nil {
		c.Reactions = []Reaction{}
	}
}

// UpvoteCount is derived from the reaction rows; there is no stored counter.
func (c *Card) UpvoteCount() int {
	n := 0
	for _, r := range c.Reactions {
		if r.Type == ReactionUpvote {
			n++
		}
	}
	return n
}

type Comment struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CardID    string    `gorm:"type:varchar(36);index;not null" json:"cardId"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	AuthorID  string    `gorm:"type:varchar(36);index;not null" json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Reaction is unique per (card, user, type). UserID is an opaque identifier.
type Reaction struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CardID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_reactions_card_user_type" json:"cardId"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_reactions_card_user_type" json:"userId"`
	Type      string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_reactions_card_user_type" json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
