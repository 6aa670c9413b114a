package model

import "time"

type Event struct {
	BaseModel
	Name          string    `gorm:"size:150;not null" json:"name"`
	About         string    `gorm:"type:text" json:"about"`
	Date          time.Time `gorm:"not null" json:"date"`
	Venue         string    `gorm:"size:150" json:"venue"`
	EventType     string    `gorm:"size:50" json:"event_type"`
	EventCategory string    `gorm:"size:50" json:"event_category"`
	MinMembers    int       `gorm:"not null;default:1" json:"min_members"`
	MaxMembers    int       `gorm:"not null;default:1" json:"max_members"`
	Poster        *string   `gorm:"size:255" json:"poster,omitempty"`
}

// OrganizingClub links an event to the single club that owns it. The row is
// created in the same transaction as the event.
type OrganizingClub struct {
	BaseModel
	EventID uint `gorm:"uniqueIndex;not null" json:"event_id"`
	ClubID  uint `gorm:"index;not null" json:"club_id"`

	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Club  Club  `gorm:"foreignKey:ClubID" json:"club,omitempty"`
}

// EventConvenor marks a user as an organizing point-of-contact for an event.
type EventConvenor struct {
	BaseModel
	EventID uint `gorm:"uniqueIndex:uq_event_convenor;not null" json:"event_id"`
	UserID  uint `gorm:"uniqueIndex:uq_event_convenor;not null" json:"user_id"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type EventWinner struct {
	BaseModel
	EventID  uint `gorm:"index;not null" json:"event_id"`
	TeamID   uint `gorm:"not null" json:"team_id"`
	Position int  `gorm:"not null" json:"position"`

	Team Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

type Feedback struct {
	BaseModel
	UserID   uint   `gorm:"uniqueIndex:uq_user_event_feedback;not null" json:"user_id"`
	EventID  uint   `gorm:"uniqueIndex:uq_user_event_feedback;not null" json:"event_id"`
	Rating   int    `gorm:"not null" json:"rating"`
	Feedback string `gorm:"type:text" json:"feedback"`
}
