package contact

import (
	"context"
	"errors"
	"math"
	"net/url"
	"testing"

	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/pkg/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockContactStore struct{ mock.Mock }

func (m *mockContactStore) Put(ctx context.Context, c *domain.Contact) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockContactStore) GetOwned(ctx context.Context, contactID, ownerID string) (*domain.Contact, error) {
	args := m.Called(ctx, contactID, ownerID)
	if c, _ := args.Get(0).(*domain.Contact); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContactStore) List(ctx context.Context, f domain.ContactFilter, skip, limit int) ([]domain.Contact, int, error) {
	args := m.Called(ctx, f, skip, limit)
	items, _ := args.Get(0).([]domain.Contact)
	return items, args.Int(1), args.Error(2)
}
func (m *mockContactStore) Update(ctx context.Context, contactID, ownerID string, updates map[string]interface{}) (*domain.Contact, error) {
	args := m.Called(ctx, contactID, ownerID, updates)
	if c, _ := args.Get(0).(*domain.Contact); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContactStore) Delete(ctx context.Context, contactID, ownerID string) error {
	return m.Called(ctx, contactID, ownerID).Error(0)
}

func boolPtr(b bool) *bool { return &b }

// --- ParseListQuery ---

func TestParseListQuery_Defaults(t *testing.T) {
	q, err := ParseListQuery(url.Values{})

	require.NoError(t, err)
	assert.Equal(t, ListQuery{Page: 1, Limit: 20}, q)
}

func TestParseListQuery_Values(t *testing.T) {
	q, err := ParseListQuery(url.Values{"page": {"3"}, "limit": {"5"}, "favorite": {"true"}})

	require.NoError(t, err)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 5, q.Limit)
	require.NotNil(t, q.Favorite)
	assert.True(t, *q.Favorite)
}

func TestParseListQuery_Invalid(t *testing.T) {
	cases := []url.Values{
		{"page": {"0"}},
		{"page": {"abc"}},
		{"limit": {"-1"}},
		{"limit": {"1.5"}},
		{"favorite": {"maybe"}},
	}
	for _, v := range cases {
		_, err := ParseListQuery(v)
		assert.True(t, errors.Is(err, domain.ErrInvalidQuery), "query %v", v)
	}
}

// --- List ---

func TestList_PaginationAndFilter(t *testing.T) {
	repo := &mockContactStore{}
	fav := boolPtr(true)
	repo.On("List", mock.Anything, domain.ContactFilter{OwnerID: "o1", Favorite: fav}, 4, 2).
		Return([]domain.Contact{{ContactID: "c5", Favorite: true}, {ContactID: "c6", Favorite: true}}, 7, nil)

	page, err := NewService(repo).List(context.Background(), "o1", ListQuery{Page: 3, Limit: 2, Favorite: fav})

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 4, page.TotalPages)
	assert.Equal(t, 3, page.CurrentPage)
}

func TestList_LargePageAndLimit(t *testing.T) {
	five := make([]domain.Contact, 5)
	cases := []struct {
		name      string
		q         ListQuery
		wantSkip  int
		items     []domain.Contact
		wantPages int
	}{
		{"max limit", ListQuery{Page: 1, Limit: math.MaxInt}, 0, five, 1},
		{"max limit second page", ListQuery{Page: 2, Limit: math.MaxInt}, math.MaxInt, nil, 1},
		{"offset overflows", ListQuery{Page: 1<<62 + 1, Limit: 2}, math.MaxInt, nil, 3},
		{"max page", ListQuery{Page: math.MaxInt, Limit: 1}, math.MaxInt - 1, nil, 5},
		{"exact multiple", ListQuery{Page: 1, Limit: 5}, 0, five, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockContactStore{}
			repo.On("List", mock.Anything, mock.Anything, tc.wantSkip, tc.q.Limit).Return(tc.items, 5, nil)

			page, err := NewService(repo).List(context.Background(), "o1", tc.q)

			require.NoError(t, err)
			assert.Equal(t, tc.wantPages, page.TotalPages)
			assert.Equal(t, tc.q.Page, page.CurrentPage)
			repo.AssertExpectations(t)
		})
	}
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo := &mockContactStore{}
	repo.On("List", mock.Anything, mock.Anything, 0, 20).Return(nil, 0, nil)

	page, err := NewService(repo).List(context.Background(), "o1", ListQuery{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}

// --- Get ---

func TestGet_MalformedIDIsNotFound(t *testing.T) {
	repo := &mockContactStore{}

	_, err := NewService(repo).Get(context.Background(), "o1", "not-an-id")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	repo.AssertNotCalled(t, "GetOwned", mock.Anything, mock.Anything, mock.Anything)
}

func TestGet_OtherOwnerIsNotFound(t *testing.T) {
	cid := id.New()
	repo := &mockContactStore{}
	repo.On("GetOwned", mock.Anything, cid, "intruder").Return(nil, domain.ErrNotFound)

	_, err := NewService(repo).Get(context.Background(), "intruder", cid)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "Not found", domain.PublicMessage(err, ""))
}

// --- Create ---

func TestCreate_AssignsIDAndOwner(t *testing.T) {
	repo := &mockContactStore{}
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Contact")).Return(nil)

	c, err := NewService(repo).Create(context.Background(), "o1", domain.CreateContactRequest{
		Name: "Ann", Email: "ann@example.com", Phone: "0123456789",
	})

	require.NoError(t, err)
	assert.True(t, id.Valid(c.ContactID))
	assert.Equal(t, "o1", c.OwnerID)
	assert.Equal(t, "Ann", c.Name)
	assert.Equal(t, "ann@example.com", c.Email)
	assert.Equal(t, "0123456789", c.Phone)
	assert.False(t, c.Favorite)
}

func TestCreate_BadPhone(t *testing.T) {
	_, err := NewService(&mockContactStore{}).Create(context.Background(), "o1", domain.CreateContactRequest{
		Name: "Ann", Email: "ann@example.com", Phone: "12345",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "Phone number must have 10 digits.", domain.PublicMessage(err, ""))
}

// --- Replace ---

func TestReplace_KeepsFavoriteWhenAbsent(t *testing.T) {
	cid := id.New()
	repo := &mockContactStore{}
	repo.On("Update", mock.Anything, cid, "o1", map[string]interface{}{
		"name": "Bob", "email": "bob@example.com", "phone": "0987654321",
	}).Return(&domain.Contact{ContactID: cid, Name: "Bob"}, nil)

	c, err := NewService(repo).Replace(context.Background(), "o1", cid, domain.CreateContactRequest{
		Name: "Bob", Email: "bob@example.com", Phone: "0987654321",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bob", c.Name)
	repo.AssertExpectations(t)
}

func TestReplace_MissingName(t *testing.T) {
	_, err := NewService(&mockContactStore{}).Replace(context.Background(), "o1", id.New(), domain.CreateContactRequest{
		Email: "bob@example.com", Phone: "0987654321",
	})

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "missing required field name", domain.PublicMessage(err, ""))
}

// --- SetFavorite ---

func TestSetFavorite_RequiresField(t *testing.T) {
	_, err := NewService(&mockContactStore{}).SetFavorite(context.Background(), "o1", id.New(), domain.UpdateFavoriteRequest{})

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "missing required field favorite", domain.PublicMessage(err, ""))
}

func TestSetFavorite_FalseIsAccepted(t *testing.T) {
	cid := id.New()
	repo := &mockContactStore{}
	repo.On("Update", mock.Anything, cid, "o1", map[string]interface{}{"favorite": false}).
		Return(&domain.Contact{ContactID: cid}, nil)

	_, err := NewService(repo).SetFavorite(context.Background(), "o1", cid, domain.UpdateFavoriteRequest{Favorite: boolPtr(false)})

	require.NoError(t, err)
}

// --- Delete ---

func TestDelete_OtherOwnerIsNotFound(t *testing.T) {
	cid := id.New()
	repo := &mockContactStore{}
	repo.On("Delete", mock.Anything, cid, "intruder").Return(domain.ErrNotFound)

	err := NewService(repo).Delete(context.Background(), "intruder", cid)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDelete_StoreErrorPropagates(t *testing.T) {
	cid := id.New()
	repo := &mockContactStore{}
	repo.On("Delete", mock.Anything, cid, "o1").Return(errors.New("dynamo down"))

	err := NewService(repo).Delete(context.Background(), "o1", cid)

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
