package model

// Team exists only in the context of one event. Its member count must never
// exceed the owning event's MaxMembers.
type Team struct {
	BaseModel
	Name    string `gorm:"size:100;not null" json:"name"`
	EventID uint   `gorm:"index;not null" json:"event_id"`

	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

// TeamMember records a user's membership in a team for an event and carries
// the attendance flag. The (user, event) pair is unique: a user cannot belong
// to two teams for the same event.
type TeamMember struct {
	BaseModel
	UserID    uint `gorm:"uniqueIndex:uq_user_event;not null" json:"user_id"`
	TeamID    uint `gorm:"index;not null" json:"team_id"`
	EventID   uint `gorm:"uniqueIndex:uq_user_event;not null" json:"event_id"`
	IsPresent bool `gorm:"default:false" json:"is_present"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// EventRegistration links a team to the event it registered for, created once
// per team at team-creation time.
type EventRegistration struct {
	BaseModel
	EventID uint `gorm:"index;not null" json:"event_id"`
	TeamID  uint `gorm:"uniqueIndex;not null" json:"team_id"`

	Team Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

// Invitation is a pending offer for a user to join a team for an event.
// Deleted on accept or reject; no history kept.
type Invitation struct {
	BaseModel
	FromTeamID uint `gorm:"uniqueIndex:uq_invite;not null" json:"from_team_id"`
	ToUserID   uint `gorm:"uniqueIndex:uq_invite;not null" json:"to_user_id"`
	EventID    uint `gorm:"uniqueIndex:uq_invite;not null" json:"event_id"`
}
