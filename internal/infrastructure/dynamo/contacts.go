package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-contacts-api/internal/domain"
)

// ContactRepo provides typed DynamoDB operations for the contacts table.
// Every read and write except Put is scoped to an owner.
type ContactRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewContactRepo(client *dynamodb.Client, tableName string) *ContactRepo {
	return &ContactRepo{client: client, tableName: tableName}
}

func (r *ContactRepo) Put(ctx context.Context, c *domain.Contact) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal contact: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put contact: %w", err)
	}
	return nil
}

// GetOwned loads a contact by id and owner in a single query. A contact owned by
// someone else is reported exactly like a missing one.
func (r *ContactRepo) GetOwned(ctx context.Context, contactID, ownerID string) (*domain.Contact, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("#id = :id"),
		FilterExpression:       aws.String("#owner = :owner"),
		ExpressionAttributeNames: map[string]string{
			"#id":    attrContactID,
			"#owner": attrOwnerID,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id":    &types.AttributeValueMemberS{Value: contactID},
			":owner": &types.AttributeValueMemberS{Value: ownerID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query contact: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("contact not found: %w", domain.ErrNotFound)
	}
	var c domain.Contact
	if err := attributevalue.UnmarshalMap(out.Items[0], &c); err != nil {
		return nil, fmt.Errorf("unmarshal contact: %w", err)
	}
	return &c, nil
}

// List returns the [skip, skip+limit) window of the contacts matching f, in creation
// order, together with the total number of matches. DynamoDB has no offset, so the
// owner's partition of the GSI is read in full and windowed here.
func (r *ContactRepo) List(ctx context.Context, f domain.ContactFilter, skip, limit int) ([]domain.Contact, int, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexOwner),
		KeyConditionExpression: aws.String("#owner = :owner"),
		ExpressionAttributeNames: map[string]string{
			"#owner": attrOwnerID,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: f.OwnerID},
		},
	}
	if f.Favorite != nil {
		input.FilterExpression = aws.String("#fav = :fav")
		input.ExpressionAttributeNames["#fav"] = attrFavorite
		input.ExpressionAttributeValues[":fav"] = &types.AttributeValueMemberBOOL{Value: *f.Favorite}
	}

	var all []domain.Contact
	p := dynamodb.NewQueryPaginator(r.client, input)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("query contacts: %w", err)
		}
		var page []domain.Contact
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, 0, fmt.Errorf("unmarshal contacts: %w", err)
		}
		all = append(all, page...)
	}
	return window(all, skip, limit), len(all), nil
}

// Update applies a partial update to a contact the owner holds and returns the result.
func (r *ContactRepo) Update(ctx context.Context, contactID, ownerID string, updates map[string]interface{}) (*domain.Contact, error) {
	fields := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		fields[k] = v
	}
	fields[attrUpdatedAt] = time.Now().UTC()
	ue, err := buildUpdateExpr(fields)
	if err != nil {
		return nil, err
	}
	ue.Names["#owner"] = attrOwnerID
	ue.withValue(":owner", &types.AttributeValueMemberS{Value: ownerID})
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(attrContactID, contactID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("#owner = :owner"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, ownedWriteErr("update", err)
	}
	var c domain.Contact
	if err := attributevalue.UnmarshalMap(out.Attributes, &c); err != nil {
		return nil, fmt.Errorf("unmarshal contact: %w", err)
	}
	return &c, nil
}

// Delete removes a contact the owner holds.
func (r *ContactRepo) Delete(ctx context.Context, contactID, ownerID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      strKey(attrContactID, contactID),
		ConditionExpression:      aws.String("#owner = :owner"),
		ExpressionAttributeNames: map[string]string{"#owner": attrOwnerID},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: ownerID},
		},
	})
	if err != nil {
		return ownedWriteErr("delete", err)
	}
	return nil
}

// ownedWriteErr maps a failed owner condition (missing item or other owner) to ErrNotFound.
func ownedWriteErr(op string, err error) error {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("contact not found: %w", domain.ErrNotFound)
	}
	return fmt.Errorf("%s contact: %w", op, err)
}
