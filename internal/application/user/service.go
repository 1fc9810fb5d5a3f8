package user

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-contacts-api/internal/domain"
	imaginginfra "github.com/go-contacts-api/internal/infrastructure/imaging"
	"github.com/go-contacts-api/internal/pkg/id"
	"github.com/go-contacts-api/internal/pkg/validate"
)

// Stored attribute names used in partial update maps.
const (
	fieldSubscription = "subscription"
	fieldAvatarURL    = "avatar_url"
)

type Service interface {
	UpdateSubscription(ctx context.Context, userID string, req domain.UpdateSubscriptionRequest) (*domain.User, error)
	// UpdateAvatar resizes the staged upload at stagedPath, publishes it and stores the
	// new URL. The staged file is removed whatever the outcome.
	UpdateAvatar(ctx context.Context, userID, stagedPath, filename string) (string, error)
}

type userStore interface {
	Update(ctx context.Context, userID string, updates map[string]interface{}) (*domain.User, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type imageResizer interface {
	Resize(r io.Reader, filename string) (*imaginginfra.Image, error)
}

type ServiceDeps struct {
	UserRepo    userStore
	ObjectStore objectStore
	Resizer     imageResizer
}

type service struct {
	userRepo userStore
	objects  objectStore
	resizer  imageResizer
}

func NewService(d ServiceDeps) Service {
	return &service{userRepo: d.UserRepo, objects: d.ObjectStore, resizer: d.Resizer}
}

func (s *service) UpdateSubscription(ctx context.Context, userID string, req domain.UpdateSubscriptionRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domain.Wrap(domain.ErrValidation, err.Error(), err)
	}
	u, err := s.userRepo.Update(ctx, userID, map[string]interface{}{fieldSubscription: req.Subscription})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Wrap(domain.ErrNotFound, "Not found", err)
		}
		return nil, fmt.Errorf("update subscription: %w", err)
	}
	return u, nil
}

func (s *service) UpdateAvatar(ctx context.Context, userID, stagedPath, filename string) (string, error) {
	defer func() {
		if err := os.Remove(stagedPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to remove staged avatar", "path", stagedPath, "err", err)
		}
	}()

	img, err := s.resizeStaged(stagedPath, filename)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s/%s%s", userID, id.New(), img.Ext)
	url, err := s.objects.Upload(ctx, key, bytes.NewReader(img.Data), img.ContentType)
	if err != nil {
		return "", domain.Wrap(domain.ErrStorage, "Server error", err)
	}

	if _, err := s.userRepo.Update(ctx, userID, map[string]interface{}{fieldAvatarURL: url}); err != nil {
		if derr := s.objects.Delete(ctx, key); derr != nil {
			slog.Warn("failed to delete orphaned avatar", "key", key, "err", derr)
		}
		return "", fmt.Errorf("store avatar url: %w", err)
	}
	return url, nil
}

func (s *service) resizeStaged(path, filename string) (*imaginginfra.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.Wrap(domain.ErrStorage, "Server error", err)
	}
	defer f.Close()

	img, err := s.resizer.Resize(f, filename)
	if err != nil {
		if errors.Is(err, imaginginfra.ErrNotImage) {
			return nil, domain.Wrap(domain.ErrValidation, "File must be an image", err)
		}
		return nil, domain.Wrap(domain.ErrStorage, "Server error", err)
	}
	return img, nil
}
