package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/apperr"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/dto"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const historyCacheTTL = 5 * time.Minute

func historyCacheKey(clubID uint) string {
	return fmt.Sprintf("events:history:%d", clubID)
}

// HistoryService computes the read-side analytics for a club's past events.
// The aggregation is cached in Redis per club; writes that change the numbers
// (feedback, winners) drop the key.
type HistoryService struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewHistoryService(db *gorm.DB, cache *redis.Client) *HistoryService {
	return &HistoryService{db: db, cache: cache}
}

func (s *HistoryService) ListPastEvents(ctx context.Context, clubID uint) ([]dto.PastEventResp, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, historyCacheKey(clubID)).Result(); err == nil {
			var cached []dto.PastEventResp
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	db := s.db.WithContext(ctx)

	var club model.Club
	if err := db.First(&club, clubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BadRequest("club not found")
		}
		return nil, apperr.Internal(err)
	}

	var events []model.Event
	err := db.
		Joins("JOIN organizing_clubs ON organizing_clubs.event_id = events.id").
		Where("organizing_clubs.club_id = ? AND events.date < ?", clubID, time.Now()).
		Order("events.date desc").
		Find(&events).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}

	result := make([]dto.PastEventResp, 0, len(events))
	for _, event := range events {
		row, err := s.aggregate(db, club, event)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, historyCacheKey(clubID), payload, historyCacheTTL).Err(); err != nil {
				log.Printf("history cache write failed for club %d: %v", clubID, err)
			}
		}
	}

	return result, nil
}

func (s *HistoryService) aggregate(db *gorm.DB, club model.Club, event model.Event) (dto.PastEventResp, error) {
	row := dto.PastEventResp{
		EventResp: dto.EventResp{
			ID:            event.ID,
			Name:          event.Name,
			About:         event.About,
			Date:          event.Date,
			Venue:         event.Venue,
			EventType:     event.EventType,
			EventCategory: event.EventCategory,
			MinMembers:    event.MinMembers,
			MaxMembers:    event.MaxMembers,
			Poster:        event.Poster,
			ClubID:        club.ID,
			ClubName:      club.Name,
		},
		Convenors: []dto.ConvenorResp{},
		Winners:   []dto.WinnerResp{},
	}

	var stats struct {
		Count int64
		Avg   float64
	}
	err := db.Model(&model.Feedback{}).
		Select("COUNT(*) as count, COALESCE(AVG(rating), 0) as avg").
		Where("event_id = ?", event.ID).
		Scan(&stats).Error
	if err != nil {
		return row, apperr.Internal(err)
	}
	row.TotalFeedbacks = stats.Count
	row.AverageRating = math.Round(stats.Avg*100) / 100

	if err := db.Model(&model.EventRegistration{}).Where("event_id = ?", event.ID).Count(&row.TotalRegisteredTeams).Error; err != nil {
		return row, apperr.Internal(err)
	}
	if err := db.Model(&model.TeamMember{}).Where("event_id = ? AND is_present = ?", event.ID, true).Count(&row.TotalAttendance).Error; err != nil {
		return row, apperr.Internal(err)
	}

	var convenors []model.EventConvenor
	if err := db.Preload("User").Where("event_id = ?", event.ID).Find(&convenors).Error; err != nil {
		return row, apperr.Internal(err)
	}
	for _, c := range convenors {
		row.Convenors = append(row.Convenors, dto.ConvenorResp{
			Name:        c.User.Name,
			Department:  c.User.Department,
			YearOfStudy: c.User.YearOfStudy,
		})
	}

	var winners []model.EventWinner
	if err := db.Preload("Team").Where("event_id = ?", event.ID).Order("position asc").Find(&winners).Error; err != nil {
		return row, apperr.Internal(err)
	}
	for _, w := range winners {
		row.Winners = append(row.Winners, dto.WinnerResp{
			TeamName: w.Team.Name,
			Position: w.Position,
		})
	}

	return row, nil
}

// invalidateHistoryCache drops the cached aggregation for the club that
// organized the given event. Safe to call with a nil cache.
func invalidateHistoryCache(ctx context.Context, db *gorm.DB, cache *redis.Client, eventID uint) {
	if cache == nil {
		return
	}
	var link model.OrganizingClub
	if err := db.WithContext(ctx).Where("event_id = ?", eventID).First(&link).Error; err != nil {
		return
	}
	if err := cache.Del(ctx, historyCacheKey(link.ClubID)).Err(); err != nil {
		log.Printf("history cache invalidation failed for club %d: %v", link.ClubID, err)
	}
}
