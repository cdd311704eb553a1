package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Participant is unique per (board, user).
type Participant struct {
	ID       string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	BoardID  string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_participants_board_user" json:"boardId"`
	UserID   string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_participants_board_user" json:"userId"`
	Role     ParticipantRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt time.Time       `json:"joinedAt"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Role == "" {
		p.Role = RoleMember
	}
	if p.JoinedAt.IsZero() {
		p.JoinedAt = time.Now()
	}
	return nil
}
