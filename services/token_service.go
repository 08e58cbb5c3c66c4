package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Ggirassol/myIntake-API/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claims extends the registered set with the subject of each token class:
// UserID for access/refresh tokens, Email for verification tokens. TokenType
// names the class, so a token of one class never passes the checks of another.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"userId,omitempty"`
	Email     string `json:"email,omitempty"`
	TokenType string `json:"typ"`
}

const (
	tokenAccess  = "access"
	tokenRefresh = "refresh"
	tokenVerify  = "verify"
)

// TokenService issues and checks the three token classes. Refresh tokens are
// additionally persisted on the user row so logout can revoke them instead of
// waiting out expiry.
type TokenService struct {
	users      repository.UserRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	verifyTTL  time.Duration
}

func NewTokenService(users repository.UserRepository, secret []byte, accessTTL, refreshTTL, verifyTTL time.Duration) *TokenService {
	return &TokenService{
		users:      users,
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		verifyTTL:  verifyTTL,
	}
}

// IssueSession mints an access/refresh token pair and stores the refresh token
// on the user row, replacing any previous one. One active session per user.
func (s *TokenService) IssueSession(ctx context.Context, userID string) (access, refresh string, err error) {
	access, err = s.sign(Claims{UserID: userID, TokenType: tokenAccess}, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.sign(Claims{UserID: userID, TokenType: tokenRefresh}, s.refreshTTL)
	if err != nil {
		return "", "", err
	}
	if err = s.users.SetRefreshToken(ctx, userID, &refresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Refresh exchanges a presented refresh token for a new access token. The
// presented token must carry a valid signature and match the token stored for
// that user, so a revoked session cannot refresh even before expiry.
func (s *TokenService) Refresh(ctx context.Context, presented string) (string, error) {
	if presented == "" {
		return "", ErrNoRefreshToken
	}
	claims, err := s.parse(presented, tokenRefresh)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}
	if user.RefreshToken == nil {
		return "", ErrNoRefreshToken
	}
	if *user.RefreshToken != presented {
		return "", ErrInvalidRefreshToken
	}

	return s.sign(Claims{UserID: user.ID, TokenType: tokenAccess}, s.accessTTL)
}

// Revoke clears the stored refresh token, ending the active session.
func (s *TokenService) Revoke(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrNoUserID
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveSession
		}
		return err
	}
	if user.RefreshToken == nil {
		return ErrNoActiveSession
	}
	return s.users.SetRefreshToken(ctx, userID, nil)
}

// Authenticate extracts and checks the bearer token from an Authorization
// header value and returns the userID it was issued to.
func (s *TokenService) Authenticate(headerValue string) (string, error) {
	if headerValue == "" || !strings.HasPrefix(headerValue, "Bearer ") {
		return "", ErrNoToken
	}
	raw := strings.TrimPrefix(headerValue, "Bearer ")
	if raw == "" {
		return "", ErrNoToken
	}
	claims, err := s.parse(raw, tokenAccess)
	if err != nil {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

// IssueVerificationToken mints the email-verification token embedded in the
// verification link.
func (s *TokenService) IssueVerificationToken(email string) (string, error) {
	return s.sign(Claims{Email: email, TokenType: tokenVerify}, s.verifyTTL)
}

// CheckVerificationToken validates class, signature and expiry only; matching
// against the stored token is the caller's job.
func (s *TokenService) CheckVerificationToken(token string) error {
	_, err := s.parse(token, tokenVerify)
	return err
}

func (s *TokenService) sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		// The jti makes every issued token distinct, even two for the same
		// subject within one second.
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *TokenService) parse(raw, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	// All three classes share the signing secret, so the class claim is the
	// only thing keeping a refresh or verification token out of Authenticate.
	if claims.TokenType != wantType {
		return nil, errors.New("wrong token class")
	}
	return claims, nil
}
