package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/apperr"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/dto"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClub_StoresSocialsAsJSON(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)

	resp, err := svc.CreateClub(context.Background(), dto.CreateClubReq{
		Name:    "Coding Club",
		About:   "competitive programming",
		Socials: map[string]string{"instagram": "@codingclub"},
	})
	require.NoError(t, err)

	var club model.Club
	require.NoError(t, db.First(&club, resp.ID).Error)
	var socials map[string]string
	require.NoError(t, json.Unmarshal(club.Socials, &socials))
	assert.Equal(t, "@codingclub", socials["instagram"])
}

func TestCreateClub_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)

	_, err := svc.CreateClub(context.Background(), dto.CreateClubReq{Name: "Coding Club"})
	require.NoError(t, err)

	_, err = svc.CreateClub(context.Background(), dto.CreateClubReq{Name: "Coding Club"})
	require.Error(t, err)
	assert.Equal(t, 409, apperr.Status(err))
}

func TestAddClubAdmin_UpgradesExistingMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)

	club := seedClub(t, db, "Coding Club")
	user := seedUser(t, db, "Anita", "22z010")
	require.NoError(t, db.Create(&model.ClubMember{ClubID: club.ID, UserID: user.ID, Role: "member"}).Error)

	require.NoError(t, svc.AddClubAdmin(context.Background(), dto.AddClubAdminReq{
		ClubID: club.ID, UserID: user.ID, Role: "secretary",
	}))

	var membership model.ClubMember
	require.NoError(t, db.Where("club_id = ? AND user_id = ?", club.ID, user.ID).First(&membership).Error)
	assert.True(t, membership.IsAdmin)
	assert.Equal(t, "secretary", membership.Role)
	assert.Equal(t, int64(1), countRows(t, db, &model.ClubMember{}, "club_id = ?", club.ID))
}

func TestAddClubAdmin_CreatesMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewClubService(db)

	club := seedClub(t, db, "Coding Club")
	user := seedUser(t, db, "Anita", "22z010")

	require.NoError(t, svc.AddClubAdmin(context.Background(), dto.AddClubAdminReq{
		ClubID: club.ID, UserID: user.ID,
	}))

	var membership model.ClubMember
	require.NoError(t, db.Where("club_id = ? AND user_id = ?", club.ID, user.ID).First(&membership).Error)
	assert.True(t, membership.IsAdmin)
	assert.Equal(t, "admin", membership.Role)

	err := svc.AddClubAdmin(context.Background(), dto.AddClubAdminReq{ClubID: club.ID, UserID: 999})
	require.Error(t, err)
	assert.Equal(t, 404, apperr.Status(err))
}
