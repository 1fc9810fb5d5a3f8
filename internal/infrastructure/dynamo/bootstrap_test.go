package dynamo

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactsTable_OwnerIndexSortsByContactID(t *testing.T) {
	in := contactsTable("contacts")
	require.Len(t, in.GlobalSecondaryIndexes, 1)
	idx := in.GlobalSecondaryIndexes[0]
	assert.Equal(t, indexOwner, *idx.IndexName)
	require.Len(t, idx.KeySchema, 2)
	assert.Equal(t, attrOwnerID, *idx.KeySchema[0].AttributeName)
	assert.Equal(t, types.KeyTypeHash, idx.KeySchema[0].KeyType)
	assert.Equal(t, attrContactID, *idx.KeySchema[1].AttributeName)
	assert.Equal(t, types.KeyTypeRange, idx.KeySchema[1].KeyType)
}

func TestUsersTable_LookupIndexes(t *testing.T) {
	in := usersTable("users")
	var names []string
	for _, idx := range in.GlobalSecondaryIndexes {
		names = append(names, *idx.IndexName)
	}
	assert.ElementsMatch(t, []string{indexEmail, indexVerificationToken, indexVerifiedWith}, names)
	// Every key attribute must be declared.
	assert.Len(t, in.AttributeDefinitions, 4)
}
