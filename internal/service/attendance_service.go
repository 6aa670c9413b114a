package service

import (
	"context"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/apperr"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"

	"gorm.io/gorm"
)

type AttendanceService struct {
	db *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

// MarkAttendance sets the attendance flag on every team-member row matching
// (event, user). The one-team-per-event invariant means at most one row, but
// the operation is defined over the affected count, not a fetched record.
func (s *AttendanceService) MarkAttendance(ctx context.Context, eventID, userID uint, isPresent bool) error {
	result := s.db.WithContext(ctx).
		Model(&model.TeamMember{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Update("is_present", isPresent)
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("no matching registration record")
	}
	return nil
}
