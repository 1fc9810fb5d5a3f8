package mongoinfra

import (
	"time"

	"github.com/go-contacts-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
)

// buildUpdate converts a map of field->value into a $set/$unset document.
// A nil value unsets the field; updated_at is always refreshed.
func buildUpdate(updates map[string]interface{}, now time.Time) bson.M {
	set := bson.M{fieldUpdatedAt: now}
	unset := bson.M{}
	for k, v := range updates {
		if v == nil {
			unset[k] = ""
			continue
		}
		set[k] = v
	}
	doc := bson.M{"$set": set}
	if len(unset) > 0 {
		doc["$unset"] = unset
	}
	return doc
}

// contactFilter translates a domain filter into a query document.
func contactFilter(f domain.ContactFilter) bson.M {
	q := bson.M{fieldOwner: f.OwnerID}
	if f.Favorite != nil {
		q[fieldFavorite] = *f.Favorite
	}
	return q
}
