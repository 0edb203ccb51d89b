package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dhaval523/WorkJunction/internal/apperr"
	"github.com/Dhaval523/WorkJunction/internal/dto"
	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/ratelimit"
	"github.com/Dhaval523/WorkJunction/internal/testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type otpFixture struct {
	store  *testhelpers.Store
	sender *testhelpers.RecordingSender
	svc    *OTPService
	userID uuid.UUID
	now    time.Time
}

func newOTPFixture(t *testing.T) *otpFixture {
	t.Helper()
	f := &otpFixture{
		store:  testhelpers.NewStore(),
		sender: &testhelpers.RecordingSender{},
		userID: uuid.New(),
		now:    time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.store.PutUser(models.User{ID: f.userID, FullName: "Asha", Email: "asha@example.com", Phone: "9123456780", Role: models.RoleWorker})
	f.svc = NewOTPService(f.store.Users(), f.sender, ratelimit.Unlimited{}, testConfig())
	f.svc.now = func() time.Time { return f.now }
	f.svc.generate = func(int) (string, error) { return "424242", nil }
	return f
}

func (f *otpFixture) user(t *testing.T) *models.User {
	t.Helper()
	u, err := f.store.Users().FindByID(context.Background(), f.userID)
	require.NoError(t, err)
	return u
}

func TestSendOTP(t *testing.T) {
	f := newOTPFixture(t)

	err := f.svc.Send(context.Background(), f.userID, &dto.SendOTPRequest{MobileNumber: "9123456780"})

	require.NoError(t, err)
	msg := f.sender.Last()
	assert.Equal(t, "+919123456780", msg.To)
	assert.Contains(t, msg.Body, "424242")

	u := f.user(t)
	require.NotNil(t, u.OTPHash)
	assert.NotEqual(t, "424242", *u.OTPHash)
	require.NotNil(t, u.OTPExpiresAt)
	assert.Equal(t, f.now.Add(5*time.Minute), *u.OTPExpiresAt)
}

func TestSendOTPPhoneMismatch(t *testing.T) {
	f := newOTPFixture(t)

	err := f.svc.Send(context.Background(), f.userID, &dto.SendOTPRequest{MobileNumber: "9000000000"})

	assert.Equal(t, ErrPhoneMismatch, err)
	assert.Empty(t, f.sender.Messages)
}

func TestSendOTPRateLimited(t *testing.T) {
	f := newOTPFixture(t)
	f.svc.limiter = &testhelpers.CountingLimiter{Max: 1}
	req := &dto.SendOTPRequest{MobileNumber: "9123456780"}

	require.NoError(t, f.svc.Send(context.Background(), f.userID, req))
	err := f.svc.Send(context.Background(), f.userID, req)

	assert.Equal(t, apperr.KindRateLimited, apperr.KindOf(err))
	assert.Len(t, f.sender.Messages, 1)
}

func TestSendOTPProviderFailure(t *testing.T) {
	f := newOTPFixture(t)
	sender := &testhelpers.MockSender{}
	sender.On("Send", mock.Anything, "+919123456780", mock.Anything).Return(errors.New("twilio 503")).Once()
	f.svc.sender = sender

	err := f.svc.Send(context.Background(), f.userID, &dto.SendOTPRequest{MobileNumber: "9123456780"})

	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
	sender.AssertExpectations(t)
}

func TestVerifyOTP(t *testing.T) {
	f := newOTPFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Send(ctx, f.userID, &dto.SendOTPRequest{MobileNumber: "9123456780"}))

	err := f.svc.Verify(ctx, f.userID, &dto.VerifyOTPRequest{OTP: "111111", MobileNumber: "9123456780"})
	assert.Equal(t, ErrInvalidOTP, err)
	assert.False(t, f.user(t).IsMobileVerified)

	err = f.svc.Verify(ctx, f.userID, &dto.VerifyOTPRequest{OTP: "424242", MobileNumber: "9123456780"})
	require.NoError(t, err)

	u := f.user(t)
	assert.True(t, u.IsMobileVerified)
	assert.Nil(t, u.OTPHash)
	assert.Nil(t, u.OTPExpiresAt)

	err = f.svc.Verify(ctx, f.userID, &dto.VerifyOTPRequest{OTP: "424242", MobileNumber: "9123456780"})
	assert.Equal(t, ErrInvalidOTP, err)
}

func TestVerifyOTPExpired(t *testing.T) {
	f := newOTPFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Send(ctx, f.userID, &dto.SendOTPRequest{MobileNumber: "9123456780"}))

	f.now = f.now.Add(5*time.Minute + time.Second)
	err := f.svc.Verify(ctx, f.userID, &dto.VerifyOTPRequest{OTP: "424242", MobileNumber: "9123456780"})

	assert.Equal(t, ErrInvalidOTP, err)
	assert.False(t, f.user(t).IsMobileVerified)
}

func TestRandomDigits(t *testing.T) {
	code, err := randomDigits(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}
