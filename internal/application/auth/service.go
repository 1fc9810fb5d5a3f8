package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/pkg/gravatar"
	"github.com/go-contacts-api/internal/pkg/id"
	pkgtoken "github.com/go-contacts-api/internal/pkg/token"
	"github.com/go-contacts-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgBadCredentials  = "Email or password is wrong"
	msgNotVerified     = "Email not verified"
	msgEmailInUse      = "Email in use"
	msgUserNotFound    = "User not found"
	msgAlreadyVerified = "Verification has already been passed"
	msgServerError     = "Server error"
)

// Service implements the registration, login and email verification flows.
type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (token string, u *domain.User, err error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, req domain.ResendVerificationRequest) error
}

type userStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) (*domain.User, error)
}

type tokenSigner interface {
	Sign(userID string) (string, error)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

// ServiceDeps groups the collaborators of the auth service. BaseURL is the public
// origin used to build verification links.
type ServiceDeps struct {
	UserRepo    userStore
	JWTProvider tokenSigner
	Mailer      mailer
	BaseURL     string
	BcryptCost  int
}

type service struct {
	userRepo    userStore
	jwtProvider tokenSigner
	mailer      mailer
	baseURL     string
	bcryptCost  int
	now         func() time.Time
}

func NewService(d ServiceDeps) Service {
	cost := d.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &service{
		userRepo:    d.UserRepo,
		jwtProvider: d.JWTProvider,
		mailer:      d.Mailer,
		baseURL:     strings.TrimRight(d.BaseURL, "/"),
		bcryptCost:  cost,
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return nil, domain.Wrap(domain.ErrValidation, err.Error(), err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, domain.Wrap(domain.ErrStorage, msgServerError, fmt.Errorf("hash password: %w", err))
	}
	verificationToken, err := pkgtoken.NewVerificationToken()
	if err != nil {
		return nil, domain.Wrap(domain.ErrStorage, msgServerError, err)
	}

	now := s.now().UTC()
	u := &domain.User{
		UserID:            id.New(),
		Email:             req.Email,
		PasswordHash:      string(hash),
		Subscription:      domain.SubscriptionStarter,
		AvatarURL:         gravatar.URL(req.Email),
		VerificationToken: &verificationToken,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			return nil, domain.Wrap(domain.ErrEmailInUse, msgEmailInUse, err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.sendVerification(u.Email, verificationToken); err != nil {
		slog.Warn("failed to send verification email", "user_id", u.UserID, "err", err)
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return "", nil, domain.Wrap(domain.ErrValidation, err.Error(), err)
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.E(domain.ErrInvalidCredentials, msgBadCredentials)
		}
		return "", nil, fmt.Errorf("get user by email: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, domain.E(domain.ErrInvalidCredentials, msgBadCredentials)
	}
	if !u.Verified {
		return "", nil, domain.E(domain.ErrEmailNotVerified, msgNotVerified)
	}

	token, err := s.jwtProvider.Sign(u.UserID)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, u, nil
}

func (s *service) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return domain.E(domain.ErrNotFound, msgUserNotFound)
	}
	u, err := s.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Wrap(domain.ErrNotFound, msgUserNotFound, err)
		}
		return fmt.Errorf("get user by token: %w", err)
	}
	if u.Verified {
		return domain.E(domain.ErrAlreadyVerified, msgAlreadyVerified)
	}

	_, err = s.userRepo.Update(ctx, u.UserID, map[string]interface{}{
		"verified":           true,
		"verification_token": nil,
		"verified_with":      token,
	})
	if err != nil {
		return fmt.Errorf("mark user verified: %w", err)
	}
	return nil
}

func (s *service) ResendVerification(ctx context.Context, req domain.ResendVerificationRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return domain.Wrap(domain.ErrValidation, err.Error(), err)
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Wrap(domain.ErrNotFound, msgUserNotFound, err)
		}
		return fmt.Errorf("get user by email: %w", err)
	}
	if u.Verified {
		return domain.E(domain.ErrAlreadyVerified, msgAlreadyVerified)
	}

	fresh, err := pkgtoken.NewVerificationToken()
	if err != nil {
		return domain.Wrap(domain.ErrStorage, msgServerError, err)
	}
	if _, err := s.userRepo.Update(ctx, u.UserID, map[string]interface{}{
		"verification_token": fresh,
	}); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}

	if err := s.sendVerification(u.Email, fresh); err != nil {
		return domain.Wrap(domain.ErrStorage, msgServerError, err)
	}
	return nil
}

func (s *service) sendVerification(email, token string) error {
	link := fmt.Sprintf("%s/api/auth/users/verify/%s", s.baseURL, token)
	body := fmt.Sprintf(`<p>Confirm your email address to start using your contacts.</p><p><a target="_blank" href="%s">Verify email</a></p>`, link)
	return s.mailer.SendEmail(email, "Verify your email", body)
}
