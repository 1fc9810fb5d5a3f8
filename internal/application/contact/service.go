package contact

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/pkg/id"
	"github.com/go-contacts-api/internal/pkg/validate"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20

	msgNotFound = "Not found"
)

// Stored attribute names used in partial update maps.
const (
	fieldName     = "name"
	fieldEmail    = "email"
	fieldPhone    = "phone"
	fieldFavorite = "favorite"
)

// ListQuery is a parsed GET /api/contacts query string.
type ListQuery struct {
	Page     int
	Limit    int
	Favorite *bool
}

// Page is one window of an owner's contacts.
type Page struct {
	Items       []domain.Contact
	TotalPages  int
	CurrentPage int
}

type Service interface {
	List(ctx context.Context, ownerID string, q ListQuery) (*Page, error)
	Get(ctx context.Context, ownerID, contactID string) (*domain.Contact, error)
	Create(ctx context.Context, ownerID string, req domain.CreateContactRequest) (*domain.Contact, error)
	Replace(ctx context.Context, ownerID, contactID string, req domain.CreateContactRequest) (*domain.Contact, error)
	SetFavorite(ctx context.Context, ownerID, contactID string, req domain.UpdateFavoriteRequest) (*domain.Contact, error)
	Delete(ctx context.Context, ownerID, contactID string) error
}

type contactStore interface {
	Put(ctx context.Context, c *domain.Contact) error
	GetOwned(ctx context.Context, contactID, ownerID string) (*domain.Contact, error)
	List(ctx context.Context, f domain.ContactFilter, skip, limit int) ([]domain.Contact, int, error)
	Update(ctx context.Context, contactID, ownerID string, updates map[string]interface{}) (*domain.Contact, error)
	Delete(ctx context.Context, contactID, ownerID string) error
}

type service struct {
	repo contactStore
	now  func() time.Time
}

func NewService(repo contactStore) Service {
	return &service{repo: repo, now: time.Now}
}

// ParseListQuery reads page, limit and favorite. Unknown parameters are ignored.
func ParseListQuery(v url.Values) (ListQuery, error) {
	q := ListQuery{Page: DefaultPage, Limit: DefaultLimit}
	var err error
	if q.Page, err = positiveInt(v, "page", DefaultPage); err != nil {
		return q, err
	}
	if q.Limit, err = positiveInt(v, "limit", DefaultLimit); err != nil {
		return q, err
	}
	if raw := v.Get("favorite"); raw != "" {
		fav, perr := strconv.ParseBool(raw)
		if perr != nil {
			return q, domain.Wrap(domain.ErrInvalidQuery, "favorite must be true or false", perr)
		}
		q.Favorite = &fav
	}
	return q, nil
}

func positiveInt(v url.Values, key string, def int) (int, error) {
	raw := v.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.E(domain.ErrInvalidQuery, fmt.Sprintf("%s must be a positive integer", key))
	}
	return n, nil
}

func (s *service) List(ctx context.Context, ownerID string, q ListQuery) (*Page, error) {
	if q.Page < 1 || q.Limit < 1 {
		return nil, domain.E(domain.ErrInvalidQuery, "page and limit must be positive integers")
	}
	items, total, err := s.repo.List(ctx, domain.ContactFilter{OwnerID: ownerID, Favorite: q.Favorite}, pageOffset(q.Page, q.Limit), q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	if items == nil {
		items = []domain.Contact{}
	}
	return &Page{
		Items:       items,
		TotalPages:  pageCount(total, q.Limit),
		CurrentPage: q.Page,
	}, nil
}

// pageOffset returns (page-1)*limit, saturating at math.MaxInt. A saturated offset
// lies past any stored data, so the store answers with an empty window.
func pageOffset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// pageCount returns ceil(total/limit) without overflowing for large limits.
func pageCount(total, limit int) int {
	n := total / limit
	if total%limit != 0 {
		n++
	}
	return n
}

// Get loads a contact owned by ownerID. Malformed ids, missing contacts and contacts
// of other owners all report ErrNotFound.
func (s *service) Get(ctx context.Context, ownerID, contactID string) (*domain.Contact, error) {
	if !id.Valid(contactID) {
		return nil, domain.E(domain.ErrNotFound, msgNotFound)
	}
	c, err := s.repo.GetOwned(ctx, contactID, ownerID)
	if err != nil {
		return nil, notFoundOr(err, "get contact")
	}
	return c, nil
}

func (s *service) Create(ctx context.Context, ownerID string, req domain.CreateContactRequest) (*domain.Contact, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domain.Wrap(domain.ErrValidation, err.Error(), err)
	}
	now := s.now().UTC()
	c := &domain.Contact{
		ContactID: id.New(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Favorite:  req.Favorite != nil && *req.Favorite,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return c, nil
}

func (s *service) Replace(ctx context.Context, ownerID, contactID string, req domain.CreateContactRequest) (*domain.Contact, error) {
	if !id.Valid(contactID) {
		return nil, domain.E(domain.ErrNotFound, msgNotFound)
	}
	if err := validate.Struct(req); err != nil {
		return nil, domain.Wrap(domain.ErrValidation, err.Error(), err)
	}
	updates := map[string]interface{}{
		fieldName:  req.Name,
		fieldEmail: req.Email,
		fieldPhone: req.Phone,
	}
	if req.Favorite != nil {
		updates[fieldFavorite] = *req.Favorite
	}
	c, err := s.repo.Update(ctx, contactID, ownerID, updates)
	if err != nil {
		return nil, notFoundOr(err, "replace contact")
	}
	return c, nil
}

func (s *service) SetFavorite(ctx context.Context, ownerID, contactID string, req domain.UpdateFavoriteRequest) (*domain.Contact, error) {
	if !id.Valid(contactID) {
		return nil, domain.E(domain.ErrNotFound, msgNotFound)
	}
	if err := validate.Struct(req); err != nil {
		return nil, domain.Wrap(domain.ErrValidation, err.Error(), err)
	}
	c, err := s.repo.Update(ctx, contactID, ownerID, map[string]interface{}{fieldFavorite: *req.Favorite})
	if err != nil {
		return nil, notFoundOr(err, "update favorite")
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, ownerID, contactID string) error {
	if !id.Valid(contactID) {
		return domain.E(domain.ErrNotFound, msgNotFound)
	}
	if err := s.repo.Delete(ctx, contactID, ownerID); err != nil {
		return notFoundOr(err, "delete contact")
	}
	return nil
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Wrap(domain.ErrNotFound, msgNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
