package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-contacts-api/internal/application/contact"
	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockContactSvc struct{ mock.Mock }

func (m *mockContactSvc) List(ctx context.Context, ownerID string, q contact.ListQuery) (*contact.Page, error) {
	args := m.Called(ctx, ownerID, q)
	if p, _ := args.Get(0).(*contact.Page); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContactSvc) Get(ctx context.Context, ownerID, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, ownerID, contactID)
	if c, _ := args.Get(0).(*domain.Contact); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContactSvc) Create(ctx context.Context, ownerID string, req domain.CreateContactRequest) (*domain.Contact, error) {
	args := m.Called(ctx, ownerID, req)
	if c, _ := args.Get(0).(*domain.Contact); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContactSvc) Replace(ctx context.Context, ownerID, contactID string, req domain.CreateContactRequest) (*domain.Contact, error) {
	args := m.Called(ctx, ownerID, contactID, req)
	if c, _ := args.Get(0).(*domain.Contact); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContactSvc) SetFavorite(ctx context.Context, ownerID, contactID string, req domain.UpdateFavoriteRequest) (*domain.Contact, error) {
	args := m.Called(ctx, ownerID, contactID, req)
	if c, _ := args.Get(0).(*domain.Contact); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContactSvc) Delete(ctx context.Context, ownerID, contactID string) error {
	return m.Called(ctx, ownerID, contactID).Error(0)
}

var owner = &domain.User{UserID: "u1", Email: "a@b.com"}

func withOwned(r *http.Request, c *domain.Contact) *http.Request {
	ctx := middleware.WithUser(r.Context(), owner)
	return r.WithContext(middleware.WithContact(ctx, c))
}

func TestContactList_Envelope(t *testing.T) {
	svc := &mockContactSvc{}
	fav := true
	svc.On("List", mock.Anything, "u1", contact.ListQuery{Page: 2, Limit: 1, Favorite: &fav}).Return(&contact.Page{
		Items:       []domain.Contact{{ContactID: "c2", Name: "Bo", Favorite: true, OwnerID: "u1"}},
		TotalPages:  3,
		CurrentPage: 2,
	}, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/?page=2&limit=1&favorite=true", nil), owner)
	rr := httptest.NewRecorder()
	NewContactHandler(svc).List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.EqualValues(t, 3, body["totalPages"])
	assert.EqualValues(t, 2, body["currentPage"])
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "c2", item["id"])
	assert.NotContains(t, item, "owner")
}

func TestContactList_InvalidQuery(t *testing.T) {
	req := withUser(httptest.NewRequest(http.MethodGet, "/?page=zero", nil), owner)
	rr := httptest.NewRecorder()
	NewContactHandler(&mockContactSvc{}).List(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "page must be a positive integer", decode(t, rr)["message"])
}

func TestContactGet_UsesLoadedContact(t *testing.T) {
	c := &domain.Contact{ContactID: "c1", Name: "Ann", Email: "ann@example.com", Phone: "0123456789", OwnerID: "u1"}
	rr := httptest.NewRecorder()
	NewContactHandler(&mockContactSvc{}).Get(rr, withOwned(httptest.NewRequest(http.MethodGet, "/", nil), c))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]interface{}{
		"id": "c1", "name": "Ann", "email": "ann@example.com", "phone": "0123456789", "favorite": false, "owner": "u1",
	}, decode(t, rr))
}

func TestContactCreate_Created(t *testing.T) {
	svc := &mockContactSvc{}
	req := domain.CreateContactRequest{Name: "Ann", Email: "ann@example.com", Phone: "0123456789"}
	svc.On("Create", mock.Anything, "u1", req).
		Return(&domain.Contact{ContactID: "c1", Name: "Ann", Email: "ann@example.com", Phone: "0123456789", OwnerID: "u1"}, nil)

	rr := httptest.NewRecorder()
	NewContactHandler(svc).Create(rr, withUser(httptest.NewRequest(http.MethodPost, "/", jsonBody(t, req)), owner))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "u1", decode(t, rr)["owner"])
}

func TestContactCreate_Validation(t *testing.T) {
	svc := &mockContactSvc{}
	svc.On("Create", mock.Anything, "u1", mock.Anything).
		Return(nil, domain.E(domain.ErrValidation, "Phone number must have 10 digits."))

	rr := httptest.NewRecorder()
	NewContactHandler(svc).Create(rr, withUser(httptest.NewRequest(http.MethodPost, "/",
		jsonBody(t, map[string]string{"name": "Ann", "email": "ann@example.com", "phone": "1"})), owner))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Phone number must have 10 digits.", decode(t, rr)["message"])
}

func TestContactSetFavorite(t *testing.T) {
	svc := &mockContactSvc{}
	fav := true
	svc.On("SetFavorite", mock.Anything, "u1", "c1", domain.UpdateFavoriteRequest{Favorite: &fav}).
		Return(&domain.Contact{ContactID: "c1", Favorite: true, OwnerID: "u1"}, nil)

	rr := httptest.NewRecorder()
	NewContactHandler(svc).SetFavorite(rr, withOwned(
		httptest.NewRequest(http.MethodPatch, "/", jsonBody(t, map[string]bool{"favorite": true})),
		&domain.Contact{ContactID: "c1", OwnerID: "u1"}))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decode(t, rr)["favorite"])
}

func TestContactDelete(t *testing.T) {
	svc := &mockContactSvc{}
	svc.On("Delete", mock.Anything, "u1", "c1").Return(nil)

	rr := httptest.NewRecorder()
	NewContactHandler(svc).Delete(rr, withOwned(httptest.NewRequest(http.MethodDelete, "/", nil),
		&domain.Contact{ContactID: "c1", OwnerID: "u1"}))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Contact deleted", decode(t, rr)["message"])
}

func TestContactDelete_StoreFailureHidesDetail(t *testing.T) {
	svc := &mockContactSvc{}
	svc.On("Delete", mock.Anything, "u1", "c1").Return(errors.New("dynamo: throttled on table contacts"))

	rr := httptest.NewRecorder()
	NewContactHandler(svc).Delete(rr, withOwned(httptest.NewRequest(http.MethodDelete, "/", nil),
		&domain.Contact{ContactID: "c1", OwnerID: "u1"}))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Server error", decode(t, rr)["message"])
}
