package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/apperr"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/dto"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCodeStore keeps security codes in a map so auth tests run without Redis.
type memCodeStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func newMemCodeStore() *memCodeStore {
	return &memCodeStore{codes: map[string]string{}}
}

func (s *memCodeStore) Set(_ context.Context, rollNumber, code string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[rollNumber] = code
	return nil
}

func (s *memCodeStore) Get(_ context.Context, rollNumber string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[rollNumber], nil
}

func (s *memCodeStore) Del(_ context.Context, rollNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, rollNumber)
	return nil
}

// recordingMailer captures outgoing mail so tests can assert on it.
type recordingMailer struct {
	invites []string
	codes   map[string]string
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{codes: map[string]string{}}
}

func (m *recordingMailer) SendInvitationEmail(_ context.Context, toAddress, _, _ string) {
	m.invites = append(m.invites, toAddress)
}

func (m *recordingMailer) SendSecurityCode(_ context.Context, toAddress, code string) {
	m.codes[toAddress] = code
}

const testJWTSecret = "test-secret"

func newAuthService(t *testing.T) (*AuthService, *memCodeStore, *recordingMailer) {
	t.Helper()
	db := newTestDB(t)
	codes := newMemCodeStore()
	mail := newRecordingMailer()
	return NewAuthService(db, codes, mail, testJWTSecret, "psgtech.ac.in"), codes, mail
}

func TestSignup_DerivesEmailFromRollNumber(t *testing.T) {
	svc, _, _ := newAuthService(t)

	id, err := svc.Signup(context.Background(), dto.SignupReq{
		Name:       "Arun",
		RollNumber: "23Z101",
		Password:   "hunter22",
	})
	require.NoError(t, err)

	var user model.User
	require.NoError(t, svc.db.First(&user, id).Error)
	assert.Equal(t, "23z101", user.RollNumber)
	assert.Equal(t, "23z101@psgtech.ac.in", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
}

func TestSignup_RollNumberUniqueCaseInsensitive(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), dto.SignupReq{
		Name: "Arun", RollNumber: "23z101", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), dto.SignupReq{
		Name: "Imposter", RollNumber: "  23Z101 ", Password: "hunter22",
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperr.Status(err))
	assert.Equal(t, int64(1), countRows(t, svc.db, &model.User{}, ""))
}

func TestLogin_IssuesTokenWithAdminClubs(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, dto.SignupReq{Name: "Arun", RollNumber: "23z101", Password: "hunter22"})
	require.NoError(t, err)

	var user model.User
	require.NoError(t, svc.db.Where("roll_number = ?", "23z101").First(&user).Error)
	club := seedClub(t, svc.db, "Coding Club")
	require.NoError(t, svc.db.Create(&model.ClubMember{ClubID: club.ID, UserID: user.ID, IsAdmin: true}).Error)

	resp, err := svc.Login(ctx, dto.LoginReq{RollNumber: "23Z101", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, "23z101", resp.RollNumber)

	claims, err := utils.ParseToken([]byte(testJWTSecret), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, []uint{club.ID}, claims.AdminClubIDs)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, dto.SignupReq{Name: "Arun", RollNumber: "23z101", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginReq{RollNumber: "23z101", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))

	_, err = svc.Login(ctx, dto.LoginReq{RollNumber: "unknown", Password: "hunter22"})
	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))
}

func TestPasswordReset_Flow(t *testing.T) {
	svc, _, mail := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, dto.SignupReq{Name: "Arun", RollNumber: "23z101", Password: "hunter22"})
	require.NoError(t, err)

	require.NoError(t, svc.GetSecurityCode(ctx, dto.SecurityCodeReq{RollNumber: "23Z101"}))
	code := mail.codes["23z101@psgtech.ac.in"]
	require.Len(t, code, 6)

	err = svc.ResetPassword(ctx, dto.ResetPasswordReq{RollNumber: "23z101", Code: "000000x", NewPassword: "newpass1"})
	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))

	require.NoError(t, svc.ResetPassword(ctx, dto.ResetPasswordReq{RollNumber: "23z101", Code: code, NewPassword: "newpass1"}))

	_, err = svc.Login(ctx, dto.LoginReq{RollNumber: "23z101", Password: "hunter22"})
	require.Error(t, err)
	_, err = svc.Login(ctx, dto.LoginReq{RollNumber: "23z101", Password: "newpass1"})
	require.NoError(t, err)

	// Codes are single use.
	err = svc.ResetPassword(ctx, dto.ResetPasswordReq{RollNumber: "23z101", Code: code, NewPassword: "another1"})
	require.Error(t, err)
	assert.Equal(t, 400, apperr.Status(err))
}

func TestGetSecurityCode_UnknownUser(t *testing.T) {
	svc, _, mail := newAuthService(t)

	err := svc.GetSecurityCode(context.Background(), dto.SecurityCodeReq{RollNumber: "nope"})
	require.Error(t, err)
	assert.Equal(t, 404, apperr.Status(err))
	assert.Empty(t, mail.codes)
}
