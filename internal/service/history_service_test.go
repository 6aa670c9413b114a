package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/apperr"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedFeedback(t *testing.T, db *gorm.DB, eventID uint, ratings ...int) {
	t.Helper()
	for i, rating := range ratings {
		user := seedUser(t, db, "Rater", fmt.Sprintf("fbk%d-%d", eventID, i))
		require.NoError(t, db.Create(&model.Feedback{UserID: user.ID, EventID: eventID, Rating: rating}).Error)
	}
}

func TestListPastEvents_AverageRatingRounding(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(db, nil)

	club := seedClub(t, db, "Computer Science Club")
	past := time.Now().Add(-48 * time.Hour)

	eventA := seedEvent(t, db, "Hackathon", 2, 4, past)
	eventB := seedEvent(t, db, "Quiz", 1, 1, past.Add(time.Hour))
	eventC := seedEvent(t, db, "Workshop", 1, 1, past.Add(2*time.Hour))
	linkEventToClub(t, db, eventA.ID, club.ID)
	linkEventToClub(t, db, eventB.ID, club.ID)
	linkEventToClub(t, db, eventC.ID, club.ID)

	seedFeedback(t, db, eventA.ID, 5, 3) // mean 4.00
	seedFeedback(t, db, eventB.ID, 4)    // mean 4.00
	// eventC has no feedback: mean 0.00

	result, err := svc.ListPastEvents(context.Background(), club.ID)
	require.NoError(t, err)
	require.Len(t, result, 3)

	byName := map[string]float64{}
	counts := map[string]int64{}
	for _, row := range result {
		byName[row.Name] = row.AverageRating
		counts[row.Name] = row.TotalFeedbacks
	}
	assert.Equal(t, 4.00, byName["Hackathon"])
	assert.Equal(t, 4.00, byName["Quiz"])
	assert.Equal(t, 0.00, byName["Workshop"])
	assert.EqualValues(t, 2, counts["Hackathon"])
	assert.EqualValues(t, 1, counts["Quiz"])
	assert.EqualValues(t, 0, counts["Workshop"])
}

func TestListPastEvents_RoundsToTwoDecimals(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(db, nil)

	club := seedClub(t, db, "Robotics Club")
	event := seedEvent(t, db, "Line Follower", 1, 2, time.Now().Add(-24*time.Hour))
	linkEventToClub(t, db, event.ID, club.ID)

	seedFeedback(t, db, event.ID, 5, 4, 4) // mean 4.333... -> 4.33

	result, err := svc.ListPastEvents(context.Background(), club.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 4.33, result[0].AverageRating)
}

func TestListPastEvents_TotalsConvenorsAndWinners(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(db, nil)

	club := seedClub(t, db, "Computer Science Club")
	event := seedEvent(t, db, "Hackathon", 2, 4, time.Now().Add(-24*time.Hour))
	linkEventToClub(t, db, event.ID, club.ID)

	convenor := seedUser(t, db, "Anita", "22z201")
	require.NoError(t, db.Create(&model.EventConvenor{EventID: event.ID, UserID: convenor.ID}).Error)

	alpha := seedUser(t, db, "Bala", "22z202")
	beta := seedUser(t, db, "Chitra", "22z203")
	teamAlpha := seedTeamWithMember(t, db, "alpha", event.ID, alpha.ID)
	teamBeta := seedTeamWithMember(t, db, "beta", event.ID, beta.ID)

	// Only alpha's member showed up.
	require.NoError(t, db.Model(&model.TeamMember{}).
		Where("team_id = ?", teamAlpha.ID).Update("is_present", true).Error)

	require.NoError(t, db.Create(&model.EventWinner{EventID: event.ID, TeamID: teamAlpha.ID, Position: 1}).Error)
	require.NoError(t, db.Create(&model.EventWinner{EventID: event.ID, TeamID: teamBeta.ID, Position: 2}).Error)

	result, err := svc.ListPastEvents(context.Background(), club.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)

	row := result[0]
	assert.EqualValues(t, 2, row.TotalRegisteredTeams)
	assert.EqualValues(t, 1, row.TotalAttendance)

	require.Len(t, row.Convenors, 1)
	assert.Equal(t, "Anita", row.Convenors[0].Name)
	assert.Equal(t, "CSE", row.Convenors[0].Department)
	assert.Equal(t, 3, row.Convenors[0].YearOfStudy)

	require.Len(t, row.Winners, 2)
	assert.Equal(t, "alpha", row.Winners[0].TeamName)
	assert.Equal(t, 1, row.Winners[0].Position)
	assert.Equal(t, "beta", row.Winners[1].TeamName)
	assert.Equal(t, 2, row.Winners[1].Position)
}

func TestListPastEvents_ExcludesUpcomingEvents(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(db, nil)

	club := seedClub(t, db, "Computer Science Club")
	past := seedEvent(t, db, "Old Hackathon", 2, 4, time.Now().Add(-24*time.Hour))
	future := seedEvent(t, db, "Next Hackathon", 2, 4, time.Now().Add(24*time.Hour))
	linkEventToClub(t, db, past.ID, club.ID)
	linkEventToClub(t, db, future.ID, club.ID)

	result, err := svc.ListPastEvents(context.Background(), club.ID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Old Hackathon", result[0].Name)
}

func TestListPastEvents_UnknownClub(t *testing.T) {
	db := newTestDB(t)
	svc := NewHistoryService(db, nil)

	_, err := svc.ListPastEvents(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))
}
