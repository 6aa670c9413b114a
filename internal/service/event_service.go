package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/apperr"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/dto"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type EventService struct {
	db     *gorm.DB
	cache  *redis.Client
	minio  *minio.Client
	bucket string
}

func NewEventService(db *gorm.DB, cache *redis.Client, minioClient *minio.Client, bucket string) *EventService {
	return &EventService{db: db, cache: cache, minio: minioClient, bucket: bucket}
}

// CreateEvent creates the event, its organizing-club link and its convenor
// rows in one transaction; the event never exists without an owner club.
func (s *EventService) CreateEvent(ctx context.Context, clubID uint, req dto.CreateEventReq) (*dto.EventResp, error) {
	if req.MaxMembers < req.MinMembers {
		return nil, apperr.BadRequest("max members cannot be less than min members")
	}

	var club model.Club
	if err := s.db.WithContext(ctx).First(&club, clubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("club not found")
		}
		return nil, apperr.Internal(err)
	}

	event := model.Event{
		Name:          req.Name,
		About:         req.About,
		Date:          req.Date,
		Venue:         req.Venue,
		EventType:     req.EventType,
		EventCategory: req.EventCategory,
		MinMembers:    req.MinMembers,
		MaxMembers:    req.MaxMembers,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return apperr.Internal(err)
		}
		if err := tx.Create(&model.OrganizingClub{EventID: event.ID, ClubID: clubID}).Error; err != nil {
			return apperr.Internal(err)
		}
		for _, userID := range req.ConvenorIDs {
			var user model.User
			if err := tx.First(&user, userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.BadRequest("convenor user not found")
				}
				return apperr.Internal(err)
			}
			if err := tx.Create(&model.EventConvenor{EventID: event.ID, UserID: userID}).Error; err != nil {
				return apperr.Internal(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.EventResp{
		ID:            event.ID,
		Name:          event.Name,
		About:         event.About,
		Date:          event.Date,
		Venue:         event.Venue,
		EventType:     event.EventType,
		EventCategory: event.EventCategory,
		MinMembers:    event.MinMembers,
		MaxMembers:    event.MaxMembers,
		ClubID:        clubID,
		ClubName:      club.Name,
	}, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID uint) (*dto.EventResp, error) {
	var event model.Event
	if err := s.db.WithContext(ctx).First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("event not found")
		}
		return nil, apperr.Internal(err)
	}

	resp := dto.EventResp{
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
	}

	var link model.OrganizingClub
	if err := s.db.WithContext(ctx).Preload("Club").Where("event_id = ?", eventID).First(&link).Error; err == nil {
		resp.ClubID = link.ClubID
		resp.ClubName = link.Club.Name
	}

	return &resp, nil
}

func (s *EventService) ListUpcomingEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	err := s.db.WithContext(ctx).
		Where("date >= ?", time.Now()).
		Order("date asc").
		Find(&events).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return events, nil
}

func (s *EventService) ListClubEvents(ctx context.Context, clubID uint) ([]model.Event, error) {
	var events []model.Event
	err := s.db.WithContext(ctx).
		Joins("JOIN organizing_clubs ON organizing_clubs.event_id = events.id").
		Where("organizing_clubs.club_id = ?", clubID).
		Order("events.date desc").
		Find(&events).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return events, nil
}

// ownedBy reports whether the event is organized by the given club.
func (s *EventService) ownedBy(ctx context.Context, eventID, clubID uint) error {
	var link model.OrganizingClub
	err := s.db.WithContext(ctx).Where("event_id = ? AND club_id = ?", eventID, clubID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.BadRequest("event is not organized by this club")
		}
		return apperr.Internal(err)
	}
	return nil
}

// UploadPoster stores the poster in object storage and records its path on
// the event. Object names are random so re-uploads never collide.
func (s *EventService) UploadPoster(ctx context.Context, clubID, eventID uint, reader io.Reader, size int64, contentType, ext string) (string, error) {
	var event model.Event
	if err := s.db.WithContext(ctx).First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("event not found")
		}
		return "", apperr.Internal(err)
	}
	if err := s.ownedBy(ctx, eventID, clubID); err != nil {
		return "", err
	}

	objectName := "posters/" + uuid.New().String() + ext
	_, err := s.minio.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", apperr.Internal(err)
	}

	path := "/" + s.bucket + "/" + objectName
	if err := s.db.WithContext(ctx).Model(&event).Update("poster", path).Error; err != nil {
		return "", apperr.Internal(err)
	}
	return path, nil
}

// AddWinners records the final standings for a completed event. Every winner
// team must hold a registration for the event.
func (s *EventService) AddWinners(ctx context.Context, clubID uint, req dto.AddWinnersReq) error {
	var event model.Event
	if err := s.db.WithContext(ctx).First(&event, req.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("event not found")
		}
		return apperr.Internal(err)
	}
	if err := s.ownedBy(ctx, req.EventID, clubID); err != nil {
		return err
	}
	if event.Date.After(time.Now()) {
		return apperr.BadRequest("event is not over yet")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range req.Winners {
			var registration model.EventRegistration
			err := tx.Where("event_id = ? AND team_id = ?", req.EventID, entry.TeamID).First(&registration).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.BadRequest("team is not registered for this event")
				}
				return apperr.Internal(err)
			}
			winner := model.EventWinner{EventID: req.EventID, TeamID: entry.TeamID, Position: entry.Position}
			if err := tx.Create(&winner).Error; err != nil {
				return apperr.Internal(err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateHistoryCache(ctx, s.db, s.cache, req.EventID)
	return nil
}
