package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/data"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the production schema.
// The DSN is derived from the test name so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, data.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, roll string) model.User {
	t.Helper()
	user := model.User{
		Name:         name,
		RollNumber:   strings.ToLower(roll),
		PasswordHash: "x",
		Department:   "CSE",
		YearOfStudy:  3,
		Email:        strings.ToLower(roll) + "@psgtech.ac.in",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedEvent(t *testing.T, db *gorm.DB, name string, minMembers, maxMembers int, date time.Time) model.Event {
	t.Helper()
	event := model.Event{
		Name:       name,
		Date:       date,
		Venue:      "Main Hall",
		MinMembers: minMembers,
		MaxMembers: maxMembers,
	}
	require.NoError(t, db.Create(&event).Error)
	return event
}

func seedClub(t *testing.T, db *gorm.DB, name string) model.Club {
	t.Helper()
	club := model.Club{Name: name, About: "test club"}
	require.NoError(t, db.Create(&club).Error)
	return club
}

func linkEventToClub(t *testing.T, db *gorm.DB, eventID, clubID uint) {
	t.Helper()
	require.NoError(t, db.Create(&model.OrganizingClub{EventID: eventID, ClubID: clubID}).Error)
}

func seedTeamWithMember(t *testing.T, db *gorm.DB, teamName string, eventID, userID uint) model.Team {
	t.Helper()
	team := model.Team{Name: teamName, EventID: eventID}
	require.NoError(t, db.Create(&team).Error)
	require.NoError(t, db.Create(&model.EventRegistration{EventID: eventID, TeamID: team.ID}).Error)
	require.NoError(t, db.Create(&model.TeamMember{UserID: userID, TeamID: team.ID, EventID: eventID}).Error)
	return team
}

func countRows(t *testing.T, db *gorm.DB, value interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	q := db.Model(value)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&count).Error)
	return count
}
