package mongoinfra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-contacts-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContactRepo stores contacts in the contacts collection.
type ContactRepo struct {
	col *mongo.Collection
}

func NewContactRepo(db *mongo.Database) *ContactRepo {
	return &ContactRepo{col: db.Collection(contactsCollection)}
}

func (r *ContactRepo) Put(ctx context.Context, c *domain.Contact) error {
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetOwned loads a contact by id and owner in one query.
func (r *ContactRepo) GetOwned(ctx context.Context, contactID, ownerID string) (*domain.Contact, error) {
	var c domain.Contact
	err := r.col.FindOne(ctx, bson.M{fieldID: contactID, fieldOwner: ownerID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("contact not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return &c, nil
}

// List returns one page of matching contacts in creation order and the total match count.
func (r *ContactRepo) List(ctx context.Context, f domain.ContactFilter, skip, limit int) ([]domain.Contact, int, error) {
	filter := contactFilter(f)
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}
	if skip < 0 {
		skip = 0
	}
	if int64(skip) >= total {
		return []domain.Contact{}, int(total), nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: fieldID, Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find contacts: %w", err)
	}
	defer cur.Close(ctx)

	contacts := []domain.Contact{}
	if err := cur.All(ctx, &contacts); err != nil {
		return nil, 0, fmt.Errorf("decode contacts: %w", err)
	}
	return contacts, int(total), nil
}

// Update applies a partial update to a contact the owner holds and returns the result.
func (r *ContactRepo) Update(ctx context.Context, contactID, ownerID string, updates map[string]interface{}) (*domain.Contact, error) {
	var c domain.Contact
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{fieldID: contactID, fieldOwner: ownerID},
		buildUpdate(updates, time.Now().UTC()),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("contact not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return &c, nil
}

// Delete removes a contact the owner holds.
func (r *ContactRepo) Delete(ctx context.Context, contactID, ownerID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{fieldID: contactID, fieldOwner: ownerID})
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("contact not found: %w", domain.ErrNotFound)
	}
	return nil
}
