package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/SehaTech/auth_service/internal/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GuestSubject is the fixed, non-persisted subject of guest tokens.
const GuestSubject = "guest"

// Claims is the fixed token payload. Guest is only set on guest-session
// tokens so downstream services can tell them apart without a lookup.
type Claims struct {
	Mobile string   `json:"mobile,omitempty"`
	Roles  []string `json:"roles"`
	Type   string   `json:"type"`
	Guest  bool     `json:"guest,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the token subject as a user id. Guest tokens have no
// parseable subject and fail here.
func (c Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, errors.New("token has no user subject")
	}
	return id, nil
}

type Auth struct {
	Secret    string
	AccessTTL time.Duration
	GuestTTL  time.Duration
}

func SetupAuth(secret string, accessTTL, guestTTL time.Duration) Auth {
	return Auth{
		Secret:    secret,
		AccessTTL: accessTTL,
		GuestTTL:  guestTTL,
	}
}

// GenerateToken signs an access token for a verified user.
func (a Auth) GenerateToken(user *domain.User, now time.Time) (string, error) {
	if user == nil || user.ID.String() == "" || user.Mobile == "" {
		return "", errors.New("required inputs are missing to generate token")
	}

	claims := Claims{
		Mobile: user.Mobile,
		Roles:  user.Roles,
		Type:   string(user.Type),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.AccessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}
	return tokenStr, nil
}

// GenerateGuestToken signs a short-lived token with no backing user record.
func (a Auth) GenerateGuestToken(now time.Time) (string, error) {
	claims := Claims{
		Roles: []string{string(domain.TypeGuest)},
		Type:  string(domain.TypeGuest),
		Guest: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   GuestSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.GuestTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}
	return tokenStr, nil
}

// VerifyToken parses and validates a bearer token.
//
// support both:
//   - "Bearer <token>"
//   - "<token>"
func (a Auth) VerifyToken(tokenString string) (Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Claims{}, errors.New("missing token")
	}

	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return Claims{}, errors.New("invalid token format")
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.Secret), nil
	})
	if err != nil {
		return Claims{}, errors.New("token parse error")
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token claims")
	}

	return claims, nil
}

func (a Auth) GetCurrentUser(ctx *fiber.Ctx) (Claims, error) {
	u := ctx.Locals("claims")
	claims, ok := u.(Claims)
	if !ok {
		return Claims{}, errors.New("missing auth user in context")
	}
	return claims, nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword(
		[]byte(hashed),
		[]byte(plain),
	); err != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}
