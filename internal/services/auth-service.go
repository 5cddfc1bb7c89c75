package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/SehaTech/auth_service/config"
	"github.com/SehaTech/auth_service/internal/domain"
	"github.com/SehaTech/auth_service/internal/dto"
	"github.com/SehaTech/auth_service/internal/helper"
	"github.com/SehaTech/auth_service/internal/helper/utils"
	"github.com/SehaTech/auth_service/internal/interfaces"
	"github.com/SehaTech/auth_service/internal/repository"
	"github.com/SehaTech/auth_service/pkg/phone"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const otpLength = 6

const forgotMessage = "If this mobile is registered, an OTP has been sent."

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterRequest) (*dto.RegisterResponse, error)
	ResendOtp(ctx context.Context, mobile string) (*dto.MessageResponse, error)
	VerifyOtp(ctx context.Context, mobile, code string) (*dto.TokenResponse, error)
	Login(ctx context.Context, mobile, password string) (*dto.TokenResponse, error)
	ForgotPassword(ctx context.Context, mobile string) (*dto.MessageResponse, error)
	ResetPassword(ctx context.Context, input dto.ResetPasswordRequest) (*dto.MessageResponse, error)
	GuestLogin() (*dto.TokenResponse, error)
	Authenticate(c *fiber.Ctx) (*domain.User, error)
}

type authService struct {
	users    repository.UserRepository
	otps     repository.OTPRepository
	attempts repository.AttemptRepository
	auth     helper.Auth
	producer interfaces.ProducerHandler
	cfg      config.Config

	// now is swapped out in tests to drive expiry and lockout windows.
	now func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	otps repository.OTPRepository,
	attempts repository.AttemptRepository,
	auth helper.Auth,
	producer interfaces.ProducerHandler,
	cfg config.Config,
) AuthService {
	return &authService{
		users:    users,
		otps:     otps,
		attempts: attempts,
		auth:     auth,
		producer: producer,
		cfg:      cfg,
		now:      time.Now,
	}
}

// opCtx bounds every store interaction so a stalled database surfaces as
// ErrUnavailable instead of hanging the request.
func (s *authService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.StoreTimeout)
}

// AUTH

func (s *authService) Register(ctx context.Context, input dto.RegisterRequest) (*dto.RegisterResponse, error) {
	accountType := domain.UserType(input.Type)
	if !accountType.SelfRegisterable() {
		return nil, domain.ErrPolicyViolation
	}

	mobile, err := phone.Normalize(input.Mobile, s.cfg.DefaultPhoneRegion)
	if err != nil {
		return nil, domain.ErrInvalidIdentifier
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if _, err := s.users.FindUserByMobile(ctx, mobile); err == nil {
		return nil, domain.ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	newUser := &domain.User{
		FullName:     input.FullName,
		Mobile:       mobile,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Type:         accountType,
		Roles:        accountType.DefaultRoles(),
	}

	if _, err := s.users.CreateUser(ctx, newUser); err != nil {
		return nil, err
	}

	if _, err := s.issueChallenge(ctx, mobile); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		Message: "Registration successful. Please verify your mobile number.",
		Mobile:  mobile,
	}, nil
}

func (s *authService) ResendOtp(ctx context.Context, rawMobile string) (*dto.MessageResponse, error) {
	mobile, err := phone.Normalize(rawMobile, s.cfg.DefaultPhoneRegion)
	if err != nil {
		return nil, domain.ErrInvalidIdentifier
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	now := s.now()
	latest, err := s.otps.LatestChallenge(ctx, mobile)
	if err == nil && now.Before(latest.ResendAllowedAt) {
		return nil, &domain.RateLimitedError{RetryAfter: latest.ResendAllowedAt.Sub(now)}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ttl, err := s.issueChallenge(ctx, mobile)
	if err != nil {
		return nil, err
	}

	return &dto.MessageResponse{
		Message: fmt.Sprintf("OTP sent. Valid for %d seconds.", int(ttl.Seconds())),
	}, nil
}

func (s *authService) VerifyOtp(ctx context.Context, rawMobile, code string) (*dto.TokenResponse, error) {
	mobile, err := phone.Normalize(rawMobile, s.cfg.DefaultPhoneRegion)
	if err != nil {
		return nil, domain.ErrInvalidIdentifier
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	// Lockout is checked before the code is even looked at, so a blocked
	// caller learns nothing about code validity.
	now := s.now()
	counter, err := s.attempts.Get(ctx, mobile, domain.AttemptScopeOtp)
	if err != nil {
		return nil, err
	}
	if counter.Blocked(now) {
		return nil, s.blockedErr(counter, now)
	}

	challenge, err := s.matchChallenge(ctx, mobile, code, now)
	if err != nil {
		return nil, err
	}

	consumed, err := s.otps.ConsumeChallenge(ctx, challenge.ID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		// Lost the race against a concurrent verify; the code is spent.
		return nil, domain.ErrOTPNotFound
	}

	user, err := s.users.FindUserByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}

	if err := s.users.SetVerified(ctx, mobile); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := s.otps.ClearChallenges(ctx, mobile); err != nil {
		return nil, err
	}
	if err := s.attempts.Reset(ctx, mobile, domain.AttemptScopeOtp); err != nil {
		return nil, err
	}

	user.IsVerified = true
	token, err := s.auth.GenerateToken(user, now)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{AccessToken: token}, nil
}

func (s *authService) Login(ctx context.Context, rawMobile, password string) (*dto.TokenResponse, error) {
	mobile, err := phone.Normalize(rawMobile, s.cfg.DefaultPhoneRegion)
	if err != nil {
		// Indistinguishable from a wrong password: a malformed mobile must
		// not reveal anything about registration state.
		return nil, domain.ErrInvalidCredentials
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	now := s.now()
	counter, err := s.attempts.Get(ctx, mobile, domain.AttemptScopeLogin)
	if err != nil {
		return nil, err
	}
	if counter.Blocked(now) {
		return nil, s.blockedErr(counter, now)
	}

	user, err := s.users.FindUserByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.loginFailure(ctx, mobile, now)
		}
		return nil, err
	}

	if err := s.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, s.loginFailure(ctx, mobile, now)
	}

	// Verified-state is only disclosed once the password is known correct,
	// so it cannot be probed pre-auth.
	if !user.IsVerified {
		return nil, domain.ErrNotVerified
	}

	if err := s.attempts.Reset(ctx, mobile, domain.AttemptScopeLogin); err != nil {
		return nil, err
	}

	token, err := s.auth.GenerateToken(user, now)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{AccessToken: token}, nil
}

func (s *authService) ForgotPassword(ctx context.Context, rawMobile string) (*dto.MessageResponse, error) {
	// Same response whether or not the mobile is registered.
	reply := &dto.MessageResponse{Message: forgotMessage}

	mobile, err := phone.Normalize(rawMobile, s.cfg.DefaultPhoneRegion)
	if err != nil {
		return reply, nil
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if _, err := s.users.FindUserByMobile(ctx, mobile); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reply, nil
		}
		return nil, err
	}

	if _, err := s.issueChallenge(ctx, mobile); err != nil {
		return nil, err
	}

	return reply, nil
}

func (s *authService) ResetPassword(ctx context.Context, input dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	if input.NewPassword != input.NewPasswordConfirm {
		return nil, domain.ErrPasswordMismatch
	}

	mobile, err := phone.Normalize(input.Mobile, s.cfg.DefaultPhoneRegion)
	if err != nil {
		return nil, domain.ErrOTPNotFound
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	// Reset shares the OTP-verification counter, so a blocked identifier
	// cannot keep grinding codes through this path instead.
	now := s.now()
	counter, err := s.attempts.Get(ctx, mobile, domain.AttemptScopeOtp)
	if err != nil {
		return nil, err
	}
	if counter.Blocked(now) {
		return nil, s.blockedErr(counter, now)
	}

	challenge, err := s.matchChallenge(ctx, mobile, input.Otp, now)
	if err != nil {
		return nil, err
	}

	consumed, err := s.otps.ConsumeChallenge(ctx, challenge.ID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, domain.ErrOTPNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.users.UpdatePasswordHash(ctx, mobile, string(hashedPassword)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}

	if err := s.otps.ClearChallenges(ctx, mobile); err != nil {
		return nil, err
	}
	if err := s.attempts.Reset(ctx, mobile, domain.AttemptScopeOtp); err != nil {
		return nil, err
	}

	return &dto.MessageResponse{Message: "Password reset successfully."}, nil
}

func (s *authService) GuestLogin() (*dto.TokenResponse, error) {
	token, err := s.auth.GenerateGuestToken(s.now())
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: token}, nil
}

func (s *authService) Authenticate(c *fiber.Ctx) (*domain.User, error) {
	claims, err := s.auth.GetCurrentUser(c)
	if err != nil {
		return nil, err
	}
	if claims.Guest {
		return nil, errors.New("guest sessions have no profile")
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.opCtx(c.UserContext())
	defer cancel()

	user, err := s.users.FindUserById(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

// issueChallenge generates a fresh code, persists it as a new ledger row and
// dispatches the SMS. Only the TTL leaves this function; the code itself
// travels out-of-band.
func (s *authService) issueChallenge(ctx context.Context, mobile string) (time.Duration, error) {
	code, err := utils.RandomDigits(otpLength)
	if err != nil {
		return 0, errors.New("failed to generate OTP")
	}

	now := s.now()
	challenge := &domain.OtpChallenge{
		Mobile:          mobile,
		CodeHash:        utils.Sha256Hex(code),
		ExpiresAt:       now.Add(s.cfg.OTPTTL),
		ResendAllowedAt: now.Add(s.cfg.OTPResendLock),
		CreatedAt:       now,
	}

	if err := s.otps.CreateChallenge(ctx, challenge); err != nil {
		return 0, err
	}

	s.dispatchSms(mobile, fmt.Sprintf(
		"Your verification code is: %s. Valid for %d seconds.",
		code, int(s.cfg.OTPTTL.Seconds()),
	))

	return s.cfg.OTPTTL, nil
}

// matchChallenge loads the latest challenge for mobile and checks code
// against it, charging the OTP attempt counter on mismatch.
func (s *authService) matchChallenge(ctx context.Context, mobile, code string, now time.Time) (*domain.OtpChallenge, error) {
	challenge, err := s.otps.LatestChallenge(ctx, mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}

	if now.After(challenge.ExpiresAt) {
		// Opportunistic prune; the sweeper would get to it eventually.
		_ = s.otps.ClearChallenges(ctx, mobile)
		return nil, domain.ErrOTPExpired
	}

	if !utils.HashEqual(utils.Sha256Hex(code), challenge.CodeHash) {
		counter, err := s.attempts.RecordFailure(ctx, mobile, domain.AttemptScopeOtp,
			s.cfg.OTPMaxAttempts, s.cfg.OTPBlockDuration, now)
		if err != nil {
			return nil, err
		}
		if counter.Blocked(now) {
			return nil, s.blockedErr(counter, now)
		}
		return nil, domain.ErrInvalidOTP
	}

	return challenge, nil
}

// loginFailure charges the login counter and returns the uniform
// credentials error, escalating to Blocked when the threshold is hit.
// Unknown mobiles are charged too, so probing behaves the same as guessing.
func (s *authService) loginFailure(ctx context.Context, mobile string, now time.Time) error {
	counter, err := s.attempts.RecordFailure(ctx, mobile, domain.AttemptScopeLogin,
		s.cfg.LoginMaxAttempts, s.cfg.LoginBlockDuration, now)
	if err != nil {
		return err
	}
	if counter.Blocked(now) {
		return s.blockedErr(counter, now)
	}
	return domain.ErrInvalidCredentials
}

func (s *authService) blockedErr(counter *domain.AttemptCounter, now time.Time) error {
	return &domain.BlockedError{
		Until:      *counter.BlockedUntil,
		RetryAfter: counter.BlockedUntil.Sub(now),
	}
}

// dispatchSms publishes an sms.send event. Fire-and-forget: a broker
// failure is an operational signal, never a user-facing error.
func (s *authService) dispatchSms(mobile, message string) {
	if s.producer == nil {
		return
	}

	payload, err := json.Marshal(dto.SmsRequestedEvent{Mobile: mobile, Message: message})
	if err != nil {
		log.Printf("sms event marshal error: %v", err)
		return
	}
	if err := s.producer.PublishMessage([]byte("sms.send"), payload); err != nil {
		log.Printf("sms event publish error: %v", err)
	}
}
