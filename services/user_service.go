package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ggirassol/myIntake-API/models"
	"github.com/Ggirassol/myIntake-API/repository"
	"github.com/Ggirassol/myIntake-API/utils"

	"gorm.io/gorm"
)

// Mailer is the outbound email capability.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// UserService handles registration, email verification, and login.
type UserService struct {
	users   repository.UserRepository
	tokens  *TokenService
	mailer  Mailer
	baseURL string
	now     func() time.Time
}

func NewUserService(users repository.UserRepository, tokens *TokenService, mailer Mailer, baseURL string) *UserService {
	return &UserService{
		users:   users,
		tokens:  tokens,
		mailer:  mailer,
		baseURL: baseURL,
		now:     time.Now,
	}
}

// Register creates a pending account, or — when the email already belongs to an
// unverified account — rotates its verification token and password hash so the
// latest submission wins. Either way exactly one verification email goes out.
// The returned bool is true when a new account was created.
func (s *UserService) Register(ctx context.Context, name, email, password string) (bool, error) {
	if name == "" || email == "" || password == "" {
		return false, ErrMissingFields
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if existing != nil {
		if existing.Verified {
			return false, ErrAlreadyVerified
		}
		return false, s.rotatePending(ctx, existing, password)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}
	token, err := s.tokens.IssueVerificationToken(email)
	if err != nil {
		return false, err
	}
	issuedAt := s.now().UTC().Format(time.RFC3339Nano)

	user := &models.User{
		ID:                    utils.NewID(),
		Name:                  name,
		Email:                 email,
		Password:              hash,
		CreatedAt:             s.now().UTC().Format("2006-01-02"),
		Verified:              false,
		VerificationToken:     &token,
		LastVerificationToken: &issuedAt,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return false, err
	}

	if err := s.sendVerificationEmail(ctx, email, token); err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) rotatePending(ctx context.Context, user *models.User, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	token, err := s.tokens.IssueVerificationToken(user.Email)
	if err != nil {
		return err
	}
	issuedAt := s.now().UTC().Format(time.RFC3339Nano)

	if err := s.users.RotateVerification(ctx, user.ID, token, issuedAt, hash); err != nil {
		return err
	}
	return s.sendVerificationEmail(ctx, user.Email, token)
}

// Verify completes email verification. The presented token must match the
// stored one byte for byte and still carry a valid signature.
func (s *UserService) Verify(ctx context.Context, token, email string) error {
	if token == "" || email == "" {
		return ErrMissingTokenOrEmail
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidVerifyAttempt
		}
		return err
	}
	if user.Verified {
		return ErrAlreadyVerified
	}
	if user.VerificationToken == nil || *user.VerificationToken != token {
		return ErrInvalidVerifyAttempt
	}
	if err := s.tokens.CheckVerificationToken(token); err != nil {
		return ErrVerifyTokenInvalid
	}

	return s.users.MarkVerified(ctx, user.ID)
}

// Login checks credentials and opens a session.
func (s *UserService) Login(ctx context.Context, email, password string) (access, refresh string, err error) {
	if email == "" || password == "" {
		return "", "", ErrBadCredentials
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrBadCredentials
		}
		return "", "", err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", "", ErrBadCredentials
	}
	return s.tokens.IssueSession(ctx, user.ID)
}

func (s *UserService) sendVerificationEmail(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/api/verify-email/%s/%s", s.baseURL, token, email)
	body := fmt.Sprintf(
		`<p>Welcome to myIntake!</p><p>Click <a href="%s">here</a> to verify your email address. The link is valid for 24 hours.</p>`,
		link)
	return s.mailer.Send(ctx, email, "Verify your myIntake account", body)
}
