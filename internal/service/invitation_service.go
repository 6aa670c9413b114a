package service

import (
	"context"
	"errors"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/apperr"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/dto"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/mailer"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"

	"gorm.io/gorm"
)

// InvitationService owns the invitation lifecycle: send, accept, reject.
// Accepted and rejected invitations are deleted, not archived.
type InvitationService struct {
	db   *gorm.DB
	mail mailer.Mailer
}

func NewInvitationService(db *gorm.DB, mail mailer.Mailer) *InvitationService {
	return &InvitationService{db: db, mail: mail}
}

// Send validates in order: event, team, invitee, inviter membership, capacity.
// The notification email is best-effort and never fails the operation.
func (s *InvitationService) Send(ctx context.Context, inviterID uint, req dto.SendInvitationReq) (*dto.SendInvitationResp, error) {
	db := s.db.WithContext(ctx)

	var event model.Event
	if err := db.First(&event, req.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("event not found")
		}
		return nil, apperr.Internal(err)
	}

	var team model.Team
	if err := db.First(&team, req.FromTeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("team not found")
		}
		return nil, apperr.Internal(err)
	}

	var invitee model.User
	if err := db.First(&invitee, req.ToUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}

	var inviterMembership model.TeamMember
	err := db.Where("user_id = ? AND team_id = ?", inviterID, req.FromTeamID).First(&inviterMembership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BadRequest("inviter is not part of this team")
		}
		return nil, apperr.Internal(err)
	}

	var memberCount int64
	if err := db.Model(&model.TeamMember{}).Where("team_id = ?", req.FromTeamID).Count(&memberCount).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if memberCount >= int64(event.MaxMembers) {
		return nil, apperr.BadRequest("team has reached max members")
	}

	var existing model.Invitation
	err = db.Where("from_team_id = ? AND to_user_id = ? AND event_id = ?",
		req.FromTeamID, req.ToUserID, req.EventID).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("invitation already sent")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err)
	}

	invitation := model.Invitation{
		FromTeamID: req.FromTeamID,
		ToUserID:   req.ToUserID,
		EventID:    req.EventID,
	}
	if err := db.Create(&invitation).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	s.mail.SendInvitationEmail(ctx, invitee.Email, team.Name, event.Name)

	return &dto.SendInvitationResp{InvitationID: invitation.ID}, nil
}

// Accept re-checks team capacity at acceptance time under a row lock on the
// event: the count can change between send and accept, and two concurrent
// accepts must not both squeeze into the last slot. If the accepting user is
// already on another team for this event the membership row is moved in place,
// which deliberately carries the is_present flag over.
func (s *InvitationService) Accept(ctx context.Context, userID uint, req dto.AcceptInvitationReq) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event model.Event
		if err := lockForUpdate(tx).First(&event, req.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("event not found")
			}
			return apperr.Internal(err)
		}

		var invitation model.Invitation
		err := tx.Where("from_team_id = ? AND event_id = ? AND to_user_id = ?",
			req.FromTeamID, req.EventID, userID).First(&invitation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("invite not found")
			}
			return apperr.Internal(err)
		}

		var memberCount int64
		if err := tx.Model(&model.TeamMember{}).Where("team_id = ?", req.FromTeamID).Count(&memberCount).Error; err != nil {
			return apperr.Internal(err)
		}
		if memberCount >= int64(event.MaxMembers) {
			return apperr.BadRequest("team has reached max members")
		}

		var existing model.TeamMember
		err = tx.Where("user_id = ? AND event_id = ?", userID, req.EventID).First(&existing).Error
		switch {
		case err == nil:
			// Team switch: move the row, keep its flags.
			if err := tx.Model(&existing).Update("team_id", req.FromTeamID).Error; err != nil {
				return apperr.Internal(err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			member := model.TeamMember{
				UserID:    userID,
				TeamID:    req.FromTeamID,
				EventID:   req.EventID,
				IsPresent: false,
			}
			if err := tx.Create(&member).Error; err != nil {
				return apperr.Internal(err)
			}
		default:
			return apperr.Internal(err)
		}

		if err := tx.Delete(&invitation).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

// Reject deletes the invitation. No side effect on team membership.
func (s *InvitationService) Reject(ctx context.Context, userID uint, req dto.RejectInvitationReq) error {
	result := s.db.WithContext(ctx).
		Where("from_team_id = ? AND event_id = ? AND to_user_id = ?", req.FromTeamID, req.EventID, userID).
		Delete(&model.Invitation{})
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("invite not found")
	}
	return nil
}
