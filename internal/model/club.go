package model

import "gorm.io/datatypes"

type Club struct {
	BaseModel
	Name    string         `gorm:"uniqueIndex;size:100;not null" json:"name"`
	About   string         `gorm:"type:text" json:"about"`
	Socials datatypes.JSON `json:"socials,omitempty"`

	Members []ClubMember `gorm:"foreignKey:ClubID" json:"members,omitempty"`
}

// ClubMember relates a user to a club. A user may hold memberships, possibly
// admin, in several clubs at once.
type ClubMember struct {
	BaseModel
	ClubID  uint   `gorm:"uniqueIndex:uq_club_user;not null" json:"club_id"`
	UserID  uint   `gorm:"uniqueIndex:uq_club_user;not null" json:"user_id"`
	Role    string `gorm:"size:50;default:'member'" json:"role"`
	IsAdmin bool   `gorm:"default:false" json:"is_admin"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Club Club `gorm:"foreignKey:ClubID" json:"club,omitempty"`
}
