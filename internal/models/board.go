package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Board struct {
	ID            string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title         string      `gorm:"type:varchar(255);not null" json:"title"`
	Summary       *string     `gorm:"type:text" json:"summary"`
	Status        BoardStatus `gorm:"type:varchar(20);not null" json:"status"`
	ScheduledFor  *time.Time  `json:"scheduledFor"`
	OwnerID       *string     `gorm:"type:varchar(36);index" json:"ownerId"`
	FacilitatorID *string     `gorm:"type:varchar(36)" json:"facilitatorId"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`

	// Relations
	Owner        *User         `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"owner,omitempty"`
	Facilitator  *User         `gorm:"foreignKey:FacilitatorID;constraint:OnDelete:SET NULL" json:"facilitator,omitempty"`
	Stages       []Stage       `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"stages,omitempty"`
	Participants []Participant `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
	Cards        []Card        `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = BoardStatusDraft
	}
	return nil
}

// Stage is an ordered column of a board. Order is zero-based; gaps are allowed.
type Stage struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	BoardID   string    `gorm:"type:varchar(36);index;not null" json:"boardId"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Order     int       `gorm:"column:position;not null" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Stage) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
