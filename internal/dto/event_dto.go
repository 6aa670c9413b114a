package dto

import "time"

type CreateEventReq struct {
	Name          string    `json:"name" binding:"required"`
	About         string    `json:"about"`
	Date          time.Time `json:"date" binding:"required"`
	Venue         string    `json:"venue"`
	EventType     string    `json:"event_type"`
	EventCategory string    `json:"event_category"`
	MinMembers    int       `json:"min_members" binding:"required,min=1"`
	MaxMembers    int       `json:"max_members" binding:"required,min=1"`
	ConvenorIDs   []uint    `json:"convenor_ids"`
}

type EventResp struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	About         string    `json:"about"`
	Date          time.Time `json:"date"`
	Venue         string    `json:"venue"`
	EventType     string    `json:"event_type"`
	EventCategory string    `json:"event_category"`
	MinMembers    int       `json:"min_members"`
	MaxMembers    int       `json:"max_members"`
	Poster        *string   `json:"poster,omitempty"`
	ClubID        uint      `json:"club_id,omitempty"`
	ClubName      string    `json:"club_name,omitempty"`
}

type AddWinnersReq struct {
	EventID uint          `json:"event_id" binding:"required"`
	Winners []WinnerEntry `json:"winners" binding:"required,dive"`
}

type WinnerEntry struct {
	TeamID   uint `json:"team_id" binding:"required"`
	Position int  `json:"position" binding:"required,min=1"`
}

type SubmitFeedbackReq struct {
	EventID  uint   `json:"event_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

// PastEventResp is one row of the events-history aggregation.
type PastEventResp struct {
	EventResp
	AverageRating        float64        `json:"average_rating"`
	TotalFeedbacks       int64          `json:"total_feedbacks"`
	TotalRegisteredTeams int64          `json:"total_registered_teams"`
	TotalAttendance      int64          `json:"total_attendance"`
	Convenors            []ConvenorResp `json:"convenors"`
	Winners              []WinnerResp   `json:"winners"`
}

type ConvenorResp struct {
	Name        string `json:"name"`
	Department  string `json:"department"`
	YearOfStudy int    `json:"year_of_study"`
}

type WinnerResp struct {
	TeamName string `json:"team_name"`
	Position int    `json:"position"`
}
