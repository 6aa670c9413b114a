package service

import (
	"context"
	"errors"
	"time"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/apperr"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/dto"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type FeedbackService struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewFeedbackService(db *gorm.DB, cache *redis.Client) *FeedbackService {
	return &FeedbackService{db: db, cache: cache}
}

// Submit records feedback for a completed event. Only participants may leave
// feedback, and only once per event: the average-rating analytics weigh each
// participant equally.
func (s *FeedbackService) Submit(ctx context.Context, userID uint, req dto.SubmitFeedbackReq) error {
	db := s.db.WithContext(ctx)

	var event model.Event
	if err := db.First(&event, req.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("event not found")
		}
		return apperr.Internal(err)
	}
	if event.Date.After(time.Now()) {
		return apperr.BadRequest("event is not over yet")
	}

	var membership model.TeamMember
	err := db.Where("user_id = ? AND event_id = ?", userID, req.EventID).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.BadRequest("user did not participate in this event")
		}
		return apperr.Internal(err)
	}

	var existing model.Feedback
	err = db.Where("user_id = ? AND event_id = ?", userID, req.EventID).First(&existing).Error
	if err == nil {
		return apperr.Conflict("feedback already submitted for this event")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Internal(err)
	}

	feedback := model.Feedback{
		UserID:   userID,
		EventID:  req.EventID,
		Rating:   req.Rating,
		Feedback: req.Feedback,
	}
	if err := db.Create(&feedback).Error; err != nil {
		return apperr.Internal(err)
	}

	invalidateHistoryCache(ctx, s.db, s.cache, req.EventID)
	return nil
}
