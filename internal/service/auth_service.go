package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/apperr"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/dto"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/mailer"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/utils"

	"gorm.io/gorm"
)

const securityCodeTTL = 10 * time.Minute

var codeRand = rand.New(rand.NewSource(time.Now().UnixNano()))

type AuthService struct {
	db         *gorm.DB
	codes      CodeStore
	mail       mailer.Mailer
	jwtSecret  []byte
	mailDomain string
}

func NewAuthService(db *gorm.DB, codes CodeStore, mail mailer.Mailer, jwtSecret, mailDomain string) *AuthService {
	return &AuthService{
		db:         db,
		codes:      codes,
		mail:       mail,
		jwtSecret:  []byte(jwtSecret),
		mailDomain: mailDomain,
	}
}

// DeriveEmail maps a roll number to the institute address. The roll number is
// the identity; the email is never independently settable.
func DeriveEmail(rollNumber, domain string) string {
	return strings.ToLower(rollNumber) + "@" + domain
}

func (s *AuthService) Signup(ctx context.Context, req dto.SignupReq) (uint, error) {
	// Roll numbers are matched case-insensitively, so store them normalized.
	roll := strings.ToLower(strings.TrimSpace(req.RollNumber))
	if roll == "" {
		return 0, apperr.BadRequest("roll number is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("roll_number = ?", roll).Count(&count).Error; err != nil {
		return 0, apperr.Internal(err)
	}
	if count > 0 {
		return 0, apperr.Conflict("roll number already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return 0, apperr.Internal(err)
	}

	user := model.User{
		Name:         req.Name,
		RollNumber:   roll,
		PasswordHash: hash,
		Department:   req.Department,
		PhoneNumber:  req.PhoneNumber,
		YearOfStudy:  req.YearOfStudy,
		Email:        DeriveEmail(roll, s.mailDomain),
		Role:         model.RoleUser,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return 0, apperr.Internal(err)
	}
	return user.ID, nil
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginReq) (*dto.LoginResp, error) {
	roll := strings.ToLower(strings.TrimSpace(req.RollNumber))

	var user model.User
	err := s.db.WithContext(ctx).Where("roll_number = ?", roll).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BadRequest("invalid roll number or password")
		}
		return nil, apperr.Internal(err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperr.BadRequest("invalid roll number or password")
	}

	var adminClubIDs []uint
	err = s.db.WithContext(ctx).Model(&model.ClubMember{}).
		Where("user_id = ? AND is_admin = ?", user.ID, true).
		Pluck("club_id", &adminClubIDs).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}

	token, err := utils.GenerateToken(s.jwtSecret, user, adminClubIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &dto.LoginResp{
		Token:      token,
		UserID:     user.ID,
		Name:       user.Name,
		RollNumber: user.RollNumber,
		Role:       string(user.Role),
	}, nil
}

// GetSecurityCode issues a short-lived reset code and emails it. The code
// expires on its own; there is no cleanup to schedule.
func (s *AuthService) GetSecurityCode(ctx context.Context, req dto.SecurityCodeReq) error {
	roll := strings.ToLower(strings.TrimSpace(req.RollNumber))

	var user model.User
	err := s.db.WithContext(ctx).Where("roll_number = ?", roll).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal(err)
	}

	code := fmt.Sprintf("%06d", codeRand.Intn(1000000))
	if err := s.codes.Set(ctx, roll, code, securityCodeTTL); err != nil {
		return apperr.Internal(err)
	}

	s.mail.SendSecurityCode(ctx, user.Email, code)
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordReq) error {
	roll := strings.ToLower(strings.TrimSpace(req.RollNumber))

	stored, err := s.codes.Get(ctx, roll)
	if err != nil {
		return apperr.Internal(err)
	}
	if stored == "" || stored != req.Code {
		return apperr.BadRequest("invalid or expired security code")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	result := s.db.WithContext(ctx).Model(&model.User{}).
		Where("roll_number = ?", roll).
		Update("password_hash", hash)
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}

	if err := s.codes.Del(ctx, roll); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
