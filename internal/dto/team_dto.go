package dto

type RegisterForEventReq struct {
	EventID  uint   `json:"event_id" binding:"required"`
	TeamName string `json:"team_name"`
}

type RegisterForEventResp struct {
	TeamID   uint   `json:"team_id"`
	TeamName string `json:"team_name"`
}

type SendInvitationReq struct {
	FromTeamID uint `json:"from_team_id" binding:"required"`
	ToUserID   uint `json:"to_user_id" binding:"required"`
	EventID    uint `json:"event_id" binding:"required"`
}

type SendInvitationResp struct {
	InvitationID uint `json:"invitation_id"`
}

type AcceptInvitationReq struct {
	FromTeamID uint `json:"from_team_id" binding:"required"`
	EventID    uint `json:"event_id" binding:"required"`
}

type RejectInvitationReq struct {
	FromTeamID uint `json:"from_team_id" binding:"required"`
	EventID    uint `json:"event_id" binding:"required"`
}

type MarkAttendanceReq struct {
	EventID   uint  `json:"event_id" binding:"required"`
	UserID    uint  `json:"user_id" binding:"required"`
	IsPresent *bool `json:"is_present" binding:"required"`
}
