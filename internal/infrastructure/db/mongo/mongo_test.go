package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

func TestObjectIDs_DropsMalformed(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	got := objectIDs([]string{a.Hex(), "not-an-id", b.Hex()})
	assert.Equal(t, []primitive.ObjectID{a, b}, got)
	assert.Equal(t, []string{a.Hex(), b.Hex()}, hexes(got))

	_, ok := objectID("zzz")
	assert.False(t, ok)
}

func TestInsertError_DuplicateKey(t *testing.T) {
	dup := func(index string) error {
		return mongo.WriteException{WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: "E11000 duplicate key error collection: social_network.users index: " + index + " dup key",
		}}}
	}

	assert.ErrorIs(t, insertError(dup("email_1")), domain.ErrEmailTaken)
	assert.ErrorIs(t, insertError(dup("username_1")), domain.ErrUsernameTaken)
	assert.NotErrorIs(t, insertError(assert.AnError), domain.ErrDuplicateIdentity)
}

func TestMongoPost_ToDomain(t *testing.T) {
	author, liker, commenter := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mp := mongoPost{
		ID:       primitive.NewObjectID(),
		AuthorID: author,
		Content:  "hello",
		Likes:    []primitive.ObjectID{liker},
		Comments: []mongoComment{{ID: primitive.NewObjectID(), UserID: commenter, Text: "hi", CreatedAt: at}},
	}

	p := mp.toDomain()
	assert.Equal(t, author.Hex(), p.AuthorID)
	assert.Equal(t, []string{liker.Hex()}, p.Likes)
	assert.Equal(t, commenter.Hex(), p.Comments[0].UserID)
	assert.Equal(t, at, p.Comments[0].CreatedAt)

	empty := (&mongoPost{}).toDomain()
	assert.NotNil(t, empty.Likes)
	assert.NotNil(t, empty.Comments)
}
