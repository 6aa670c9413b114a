package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/apperr"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/dto"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegistrationService creates teams and event registrations. The three writes
// (Team, EventRegistration, first TeamMember) happen in one transaction so a
// partial failure never leaves an orphan team.
type RegistrationService struct {
	db *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{db: db}
}

// lockForUpdate takes a row lock on the queried rows so capacity checks and
// the membership write that follows them serialize across requests. SQLite
// (used by the test suite) has a single writer and rejects FOR UPDATE, so the
// clause is only added on dialects that support it.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (s *RegistrationService) RegisterForEvent(ctx context.Context, userID uint, req dto.RegisterForEventReq) (*dto.RegisterForEventResp, error) {
	var resp dto.RegisterForEventResp

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event model.Event
		if err := lockForUpdate(tx).First(&event, req.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("event not found")
			}
			return apperr.Internal(err)
		}

		var existing model.TeamMember
		err := tx.Where("user_id = ? AND event_id = ?", userID, req.EventID).First(&existing).Error
		if err == nil {
			var team model.Team
			if err := tx.First(&team, existing.TeamID).Error; err != nil {
				return apperr.Internal(err)
			}
			return apperr.Conflict("already registered for this event with team " + team.Name)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Internal(err)
		}

		teamName := strings.TrimSpace(req.TeamName)
		if event.MaxMembers == 1 {
			// Solo event: the roll number is the team name, whatever the
			// caller supplied.
			var user model.User
			if err := tx.First(&user, userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("user not found")
				}
				return apperr.Internal(err)
			}
			teamName = user.RollNumber
		} else if teamName == "" {
			return apperr.BadRequest("team name is required for team events")
		}

		team := model.Team{Name: teamName, EventID: event.ID}
		if err := tx.Create(&team).Error; err != nil {
			return apperr.Internal(err)
		}
		registration := model.EventRegistration{EventID: event.ID, TeamID: team.ID}
		if err := tx.Create(&registration).Error; err != nil {
			return apperr.Internal(err)
		}
		member := model.TeamMember{UserID: userID, TeamID: team.ID, EventID: event.ID, IsPresent: false}
		if err := tx.Create(&member).Error; err != nil {
			return apperr.Internal(err)
		}

		resp = dto.RegisterForEventResp{TeamID: team.ID, TeamName: team.Name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
