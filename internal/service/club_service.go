package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/apperr"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/dto"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ClubService struct {
	db *gorm.DB
}

func NewClubService(db *gorm.DB) *ClubService {
	return &ClubService{db: db}
}

func (s *ClubService) CreateClub(ctx context.Context, req dto.CreateClubReq) (*dto.ClubResp, error) {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&model.Club{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if count > 0 {
		return nil, apperr.Conflict("club name already exists")
	}

	club := model.Club{Name: req.Name, About: req.About}
	if len(req.Socials) > 0 {
		payload, err := json.Marshal(req.Socials)
		if err != nil {
			return nil, apperr.BadRequest("invalid socials")
		}
		club.Socials = datatypes.JSON(payload)
	}

	if err := db.Create(&club).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	return &dto.ClubResp{ID: club.ID, Name: club.Name, About: club.About}, nil
}

// AddClubAdmin attaches a user to a club with admin rights, upgrading an
// existing membership in place.
func (s *ClubService) AddClubAdmin(ctx context.Context, req dto.AddClubAdminReq) error {
	db := s.db.WithContext(ctx)

	var club model.Club
	if err := db.First(&club, req.ClubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("club not found")
		}
		return apperr.Internal(err)
	}
	var user model.User
	if err := db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal(err)
	}

	role := req.Role
	if role == "" {
		role = "admin"
	}

	var membership model.ClubMember
	err := db.Where("club_id = ? AND user_id = ?", req.ClubID, req.UserID).First(&membership).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{"is_admin": true, "role": role}
		if err := db.Model(&membership).Updates(updates).Error; err != nil {
			return apperr.Internal(err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		membership = model.ClubMember{ClubID: req.ClubID, UserID: req.UserID, Role: role, IsAdmin: true}
		if err := db.Create(&membership).Error; err != nil {
			return apperr.Internal(err)
		}
	default:
		return apperr.Internal(err)
	}
	return nil
}

func (s *ClubService) GetClub(ctx context.Context, clubID uint) (*model.Club, error) {
	var club model.Club
	err := s.db.WithContext(ctx).Preload("Members.User").First(&club, clubID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("club not found")
		}
		return nil, apperr.Internal(err)
	}
	return &club, nil
}
