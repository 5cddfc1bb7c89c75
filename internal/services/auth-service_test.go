package services

import (
	"context"
	"encoding/json"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/SehaTech/auth_service/config"
	"github.com/SehaTech/auth_service/internal/domain"
	"github.com/SehaTech/auth_service/internal/dto"
	"github.com/SehaTech/auth_service/internal/helper"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ---------- in-memory fakes ----------

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (m *memUserRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Mobile]; ok {
		return nil, domain.ErrConflict
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	m.users[user.Mobile] = &cp
	return user, nil
}

func (m *memUserRepo) FindUserByMobile(_ context.Context, mobile string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[mobile]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindUserById(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) SetVerified(_ context.Context, mobile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[mobile]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsVerified = true
	return nil
}

func (m *memUserRepo) UpdatePasswordHash(_ context.Context, mobile, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[mobile]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = hash
	return nil
}

type memOtpRepo struct {
	mu         sync.Mutex
	challenges []*domain.OtpChallenge
}

func newMemOtpRepo() *memOtpRepo { return &memOtpRepo{} }

func (m *memOtpRepo) CreateChallenge(_ context.Context, challenge *domain.OtpChallenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if challenge.ID == uuid.Nil {
		challenge.ID = uuid.New()
	}
	cp := *challenge
	m.challenges = append(m.challenges, &cp)
	return nil
}

func (m *memOtpRepo) LatestChallenge(_ context.Context, mobile string) (*domain.OtpChallenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *domain.OtpChallenge
	for _, c := range m.challenges {
		if c.Mobile != mobile {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *memOtpRepo) ConsumeChallenge(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.challenges {
		if c.ID == id {
			m.challenges = append(m.challenges[:i], m.challenges[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memOtpRepo) ClearChallenges(_ context.Context, mobile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.challenges[:0]
	for _, c := range m.challenges {
		if c.Mobile != mobile {
			kept = append(kept, c)
		}
	}
	m.challenges = kept
	return nil
}

func (m *memOtpRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	kept := m.challenges[:0]
	for _, c := range m.challenges {
		if c.ExpiresAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	m.challenges = kept
	return deleted, nil
}

func (m *memOtpRepo) count(mobile string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.challenges {
		if c.Mobile == mobile {
			n++
		}
	}
	return n
}

type memAttemptRepo struct {
	mu       sync.Mutex
	counters map[string]*domain.AttemptCounter
}

func newMemAttemptRepo() *memAttemptRepo {
	return &memAttemptRepo{counters: map[string]*domain.AttemptCounter{}}
}

func attemptKey(mobile string, scope domain.AttemptScope) string {
	return mobile + "/" + string(scope)
}

func (m *memAttemptRepo) Get(_ context.Context, mobile string, scope domain.AttemptScope) (*domain.AttemptCounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.counters[attemptKey(mobile, scope)]
	if !ok {
		return &domain.AttemptCounter{Mobile: mobile, Scope: scope}, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memAttemptRepo) RecordFailure(_ context.Context, mobile string, scope domain.AttemptScope, max int, blockFor time.Duration, now time.Time) (*domain.AttemptCounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := attemptKey(mobile, scope)
	c, ok := m.counters[key]
	if !ok {
		c = &domain.AttemptCounter{Mobile: mobile, Scope: scope, CreatedAt: now}
		m.counters[key] = c
	}
	c.Attempts++
	c.UpdatedAt = now
	if c.Attempts >= max {
		until := now.Add(blockFor)
		c.BlockedUntil = &until
	}
	cp := *c
	return &cp, nil
}

func (m *memAttemptRepo) Reset(_ context.Context, mobile string, scope domain.AttemptScope) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.counters[attemptKey(mobile, scope)]; ok {
		c.Attempts = 0
		c.BlockedUntil = nil
	}
	return nil
}

type fakeProducer struct {
	mu     sync.Mutex
	events []dto.SmsRequestedEvent
}

func (p *fakeProducer) PublishMessage(_, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var event dto.SmsRequestedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakeProducer) sent() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

var codePattern = regexp.MustCompile(`\d{6}`)

func (p *fakeProducer) lastCode(t *testing.T) string {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.events, "no SMS was dispatched")
	code := codePattern.FindString(p.events[len(p.events)-1].Message)
	require.Len(t, code, 6)
	return code
}

// ---------- fixture ----------

type fixture struct {
	svc      *authService
	users    *memUserRepo
	otps     *memOtpRepo
	attempts *memAttemptRepo
	producer *fakeProducer
	clock    time.Time
}

func testConfig() config.Config {
	return config.Config{
		DefaultPhoneRegion: "EG",
		OTPTTL:             30 * time.Minute,
		OTPResendLock:      time.Minute,
		OTPMaxAttempts:     5,
		OTPBlockDuration:   15 * time.Minute,
		LoginMaxAttempts:   5,
		LoginBlockDuration: 15 * time.Minute,
		AccessTokenTTL:     72 * time.Hour,
		GuestTokenTTL:      24 * time.Hour,
		StoreTimeout:       5 * time.Second,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := testConfig()
	f := &fixture{
		users:    newMemUserRepo(),
		otps:     newMemOtpRepo(),
		attempts: newMemAttemptRepo(),
		producer: &fakeProducer{},
		clock:    time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
	}
	auth := helper.SetupAuth("test-secret", cfg.AccessTokenTTL, cfg.GuestTokenTTL)
	f.svc = NewAuthService(f.users, f.otps, f.attempts, auth, f.producer, cfg).(*authService)
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) advance(d time.Duration) { f.clock = f.clock.Add(d) }

const (
	testMobile   = "+201234567890"
	testPassword = "Secret123"
)

func (f *fixture) register(t *testing.T) *dto.RegisterResponse {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "Sara Adel",
		Mobile:   testMobile,
		Password: testPassword,
		Type:     string(domain.TypePatient),
	})
	require.NoError(t, err)
	return resp
}

// ---------- registration ----------

func TestRegister_CreatesUnverifiedUserAndDispatchesOtp(t *testing.T) {
	f := newFixture(t)

	resp := f.register(t)
	assert.Equal(t, testMobile, resp.Mobile)
	assert.NotEmpty(t, resp.Message)

	user, err := f.users.FindUserByMobile(context.Background(), testMobile)
	require.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.Equal(t, domain.TypePatient, user.Type)
	assert.Equal(t, []string{"patient"}, user.Roles)
	assert.NotEqual(t, testPassword, user.PasswordHash)
	assert.NoError(t, f.svc.auth.VerifyPassword(testPassword, user.PasswordHash))

	assert.Equal(t, 1, f.producer.sent())
	assert.Equal(t, 1, f.otps.count(testMobile))
	assert.NotContains(t, f.producer.events[0].Message, user.PasswordHash)
}

func TestRegister_NormalizesMobileBeforeStorage(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "Sara Adel",
		Mobile:   "01234567890", // local Egyptian format
		Password: testPassword,
		Type:     string(domain.TypePatient),
	})
	require.NoError(t, err)
	assert.Equal(t, testMobile, resp.Mobile)

	// A differently formatted spelling of the same number collides.
	_, err = f.svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "Sara Adel",
		Mobile:   "+20 123 456 7890",
		Password: testPassword,
		Type:     string(domain.TypePatient),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_RejectsNonPatientTypes(t *testing.T) {
	f := newFixture(t)

	for _, accountType := range []domain.UserType{domain.TypeStudent, domain.TypeDoctor, domain.TypeNurse, domain.TypeAdmin, domain.TypeGuest, "bogus"} {
		_, err := f.svc.Register(context.Background(), dto.RegisterRequest{
			FullName: "Someone",
			Mobile:   testMobile,
			Password: testPassword,
			Type:     string(accountType),
		})
		assert.ErrorIs(t, err, domain.ErrPolicyViolation, "type %s", accountType)
	}
	assert.Equal(t, 0, f.producer.sent())
}

func TestRegister_RejectsMalformedMobile(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "Someone",
		Mobile:   "not-a-number",
		Password: testPassword,
		Type:     string(domain.TypePatient),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
}

// ---------- verify otp ----------

func TestVerifyOtp_CodeIsSingleUse(t *testing.T) {
	f := newFixture(t)
	f.register(t)
	code := f.producer.lastCode(t)

	resp, err := f.svc.VerifyOtp(context.Background(), testMobile, code)
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	user, err := f.users.FindUserByMobile(context.Background(), testMobile)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	claims, err := f.svc.auth.VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, testMobile, claims.Mobile)
	assert.Equal(t, []string{"patient"}, claims.Roles)
	assert.False(t, claims.Guest)

	// Spending the same code again finds nothing: all challenges for the
	// mobile were cleared on success.
	_, err = f.svc.VerifyOtp(context.Background(), testMobile, code)
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)
}

func TestVerifyOtp_WrongCodeEscalatesToLockout(t *testing.T) {
	f := newFixture(t)
	f.register(t)
	code := f.producer.lastCode(t)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	// First max-1 failures report a plain mismatch.
	for i := 0; i < 4; i++ {
		_, err := f.svc.VerifyOtp(context.Background(), testMobile, wrong)
		assert.ErrorIs(t, err, domain.ErrInvalidOTP, "attempt %d", i+1)
	}

	// The attempt that reaches the threshold trips the lockout.
	_, err := f.svc.VerifyOtp(context.Background(), testMobile, wrong)
	var blocked *domain.BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.ErrorIs(t, err, domain.ErrBlocked)
	assert.Equal(t, f.clock.Add(15*time.Minute), blocked.Until)

	// While blocked even the correct code is refused, without inspection.
	_, err = f.svc.VerifyOtp(context.Background(), testMobile, code)
	assert.ErrorIs(t, err, domain.ErrBlocked)

	// Once the window elapses the correct code goes through and the
	// counter resets to zero.
	f.advance(15*time.Minute + time.Second)
	_, err = f.svc.VerifyOtp(context.Background(), testMobile, code)
	require.NoError(t, err)

	counter, err := f.attempts.Get(context.Background(), testMobile, domain.AttemptScopeOtp)
	require.NoError(t, err)
	assert.Equal(t, 0, counter.Attempts)
	assert.Nil(t, counter.BlockedUntil)
}

func TestVerifyOtp_ExpiredChallenge(t *testing.T) {
	f := newFixture(t)
	f.register(t)
	code := f.producer.lastCode(t)

	f.advance(31 * time.Minute)
	_, err := f.svc.VerifyOtp(context.Background(), testMobile, code)
	assert.ErrorIs(t, err, domain.ErrOTPExpired)

	// The expired challenge was pruned opportunistically.
	_, err = f.svc.VerifyOtp(context.Background(), testMobile, code)
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)
}

func TestVerifyOtp_NoChallenge(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.VerifyOtp(context.Background(), testMobile, "123456")
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)
}

// ---------- resend otp ----------

func TestResendOtp_RespectsResendLock(t *testing.T) {
	f := newFixture(t)
	f.register(t)

	f.advance(10 * time.Second)
	_, err := f.svc.ResendOtp(context.Background(), testMobile)
	var first *domain.RateLimitedError
	require.ErrorAs(t, err, &first)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, 50*time.Second, first.RetryAfter)

	f.advance(20 * time.Second)
	_, err = f.svc.ResendOtp(context.Background(), testMobile)
	var second *domain.RateLimitedError
	require.ErrorAs(t, err, &second)
	assert.LessOrEqual(t, second.RetryAfter, first.RetryAfter)

	f.advance(31 * time.Second)
	resp, err := f.svc.ResendOtp(context.Background(), testMobile)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, 2, f.otps.count(testMobile))
	assert.Equal(t, 2, f.producer.sent())
}

// ---------- login ----------

func (f *fixture) registerVerified(t *testing.T) *domain.User {
	t.Helper()
	f.register(t)
	_, err := f.svc.VerifyOtp(context.Background(), testMobile, f.producer.lastCode(t))
	require.NoError(t, err)
	user, err := f.users.FindUserByMobile(context.Background(), testMobile)
	require.NoError(t, err)
	return user
}

func TestLogin_UnverifiedUserIsRejectedAfterPasswordCheck(t *testing.T) {
	f := newFixture(t)
	f.register(t)

	// Correct password, unverified account.
	_, err := f.svc.Login(context.Background(), testMobile, testPassword)
	assert.ErrorIs(t, err, domain.ErrNotVerified)

	// Wrong password never reveals verification state.
	_, err = f.svc.Login(context.Background(), testMobile, "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownMobileLooksLikeWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.registerVerified(t)

	_, errExisting := f.svc.Login(context.Background(), testMobile, "wrong-password")
	_, errUnknown := f.svc.Login(context.Background(), "+201111111111", "wrong-password")

	require.Error(t, errExisting)
	require.Error(t, errUnknown)
	assert.ErrorIs(t, errExisting, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.Equal(t, errExisting.Error(), errUnknown.Error())
}

func TestLogin_LockoutAndRecovery(t *testing.T) {
	f := newFixture(t)
	user := f.registerVerified(t)

	for i := 0; i < 4; i++ {
		_, err := f.svc.Login(context.Background(), testMobile, "wrong-password")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "attempt %d", i+1)
	}

	_, err := f.svc.Login(context.Background(), testMobile, "wrong-password")
	var blocked *domain.BlockedError
	require.ErrorAs(t, err, &blocked)

	// Correct password is refused while the lockout is active.
	_, err = f.svc.Login(context.Background(), testMobile, testPassword)
	assert.ErrorIs(t, err, domain.ErrBlocked)

	f.advance(15*time.Minute + time.Second)
	resp, err := f.svc.Login(context.Background(), testMobile, testPassword)
	require.NoError(t, err)

	claims, err := f.svc.auth.VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)

	counter, err := f.attempts.Get(context.Background(), testMobile, domain.AttemptScopeLogin)
	require.NoError(t, err)
	assert.Equal(t, 0, counter.Attempts)
}

func TestLogin_OtpAndLoginCountersAreIndependent(t *testing.T) {
	f := newFixture(t)
	f.registerVerified(t)

	// Exhaust the login counter only.
	for i := 0; i < 5; i++ {
		_, _ = f.svc.Login(context.Background(), testMobile, "wrong-password")
	}

	// OTP paths are still open: forgot issues a challenge and its code
	// verifies against a fresh counter.
	_, err := f.svc.ForgotPassword(context.Background(), testMobile)
	require.NoError(t, err)
	_, err = f.svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Mobile:             testMobile,
		Otp:                f.producer.lastCode(t),
		NewPassword:        "NewSecret456",
		NewPasswordConfirm: "NewSecret456",
	})
	require.NoError(t, err)
}

// ---------- forgot / reset ----------

func TestForgotPassword_NoAccountEnumeration(t *testing.T) {
	f := newFixture(t)
	f.registerVerified(t)
	sentBefore := f.producer.sent()

	known, err := f.svc.ForgotPassword(context.Background(), testMobile)
	require.NoError(t, err)
	unknown, err := f.svc.ForgotPassword(context.Background(), "+201111111111")
	require.NoError(t, err)
	malformed, err := f.svc.ForgotPassword(context.Background(), "garbage")
	require.NoError(t, err)

	assert.Equal(t, known.Message, unknown.Message)
	assert.Equal(t, known.Message, malformed.Message)

	// Only the registered mobile actually got an SMS.
	assert.Equal(t, sentBefore+1, f.producer.sent())
}

func TestResetPassword_ConfirmationMismatchLeavesCredentialUntouched(t *testing.T) {
	f := newFixture(t)
	user := f.registerVerified(t)

	_, err := f.svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Mobile:             testMobile,
		Otp:                "123456",
		NewPassword:        "NewSecret456",
		NewPasswordConfirm: "different",
	})
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

	after, err := f.users.FindUserByMobile(context.Background(), testMobile)
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, after.PasswordHash)
}

func TestResetPassword_HappyPathReplacesCredential(t *testing.T) {
	f := newFixture(t)
	f.registerVerified(t)

	_, err := f.svc.ForgotPassword(context.Background(), testMobile)
	require.NoError(t, err)
	code := f.producer.lastCode(t)

	_, err = f.svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Mobile:             testMobile,
		Otp:                code,
		NewPassword:        "NewSecret456",
		NewPasswordConfirm: "NewSecret456",
	})
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), testMobile, testPassword)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.svc.Login(context.Background(), testMobile, "NewSecret456")
	assert.NoError(t, err)

	// The code was spent by the reset.
	_, err = f.svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Mobile:             testMobile,
		Otp:                code,
		NewPassword:        "Another789",
		NewPasswordConfirm: "Another789",
	})
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)
}

func TestResetPassword_SharesOtpLockout(t *testing.T) {
	f := newFixture(t)
	f.registerVerified(t)

	_, err := f.svc.ForgotPassword(context.Background(), testMobile)
	require.NoError(t, err)
	code := f.producer.lastCode(t)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	for i := 0; i < 5; i++ {
		_, err = f.svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{
			Mobile:             testMobile,
			Otp:                wrong,
			NewPassword:        "NewSecret456",
			NewPasswordConfirm: "NewSecret456",
		})
		require.Error(t, err)
	}
	assert.ErrorIs(t, err, domain.ErrBlocked)

	// verify-otp sees the same lockout.
	_, err = f.svc.VerifyOtp(context.Background(), testMobile, code)
	assert.ErrorIs(t, err, domain.ErrBlocked)
}

// ---------- guest ----------

func TestGuestLogin_MintsMarkedShortLivedToken(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GuestLogin()
	require.NoError(t, err)

	claims, err := f.svc.auth.VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, helper.GuestSubject, claims.Subject)
	assert.True(t, claims.Guest)
	assert.Equal(t, []string{"guest"}, claims.Roles)
	assert.Equal(t, "guest", claims.Type)
	assert.Equal(t, f.clock.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())

	// No store was touched.
	assert.Empty(t, f.users.users)
	assert.Equal(t, 0, f.otps.count(testMobile))
}

// ---------- end to end ----------

func TestRegisterVerifyLoginRoundTrip(t *testing.T) {
	f := newFixture(t)
	user := f.registerVerified(t)

	resp, err := f.svc.Login(context.Background(), testMobile, testPassword)
	require.NoError(t, err)

	claims, err := f.svc.auth.VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, testMobile, claims.Mobile)
}
