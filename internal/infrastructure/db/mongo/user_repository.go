package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"`
	Username       string               `bson:"username"`
	Email          string               `bson:"email"`
	PasswordHash   string               `bson:"password_hash"`
	FullName       string               `bson:"full_name"`
	Bio            string               `bson:"bio"`
	ProfilePicture string               `bson:"profile_picture"`
	Followers      []primitive.ObjectID `bson:"followers"`
	Following      []primitive.ObjectID `bson:"following"`
	CreatedAt      time.Time            `bson:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at"`
}

func (m *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:             m.ID.Hex(),
		Username:       m.Username,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		FullName:       m.FullName,
		Bio:            m.Bio,
		ProfilePicture: m.ProfilePicture,
		Followers:      hexes(m.Followers),
		Following:      hexes(m.Following),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// Create inserts a new user. Uniqueness is enforced by the unique indexes on
// username and email.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		ID:             primitive.NewObjectID(),
		Username:       user.Username,
		Email:          user.Email,
		PasswordHash:   user.PasswordHash,
		FullName:       user.FullName,
		Bio:            user.Bio,
		ProfilePicture: user.ProfilePicture,
		Followers:      objectIDs(user.Followers),
		Following:      objectIDs(user.Following),
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, insertError(err)
	}
	return doc.toDomain(), nil
}

// insertError maps a duplicate key violation onto the identity it collides with.
func insertError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), "email") {
			return domain.ErrEmailTaken
		}
		return domain.ErrUsernameTaken
	}
	return fmt.Errorf("insert user: %w", err)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*domain.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find())
}

// FindByUsernameSubstring matches query case-insensitively against username
// and full name. The query is matched literally, not as a pattern.
func (r *UserRepository) FindByUsernameSubstring(ctx context.Context, query string, limit int) ([]*domain.User, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"username": pattern},
		bson.M{"full_name": pattern},
	}}

	opts := options.Find().SetSort(bson.D{{Key: "username", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

func (r *UserRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	out := make([]*domain.User, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.FullName != nil {
		set["full_name"] = *update.FullName
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.ProfilePicture != nil {
		set["profile_picture"] = *update.ProfilePicture
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return mu.toDomain(), nil
}

// IsFollowing reads the edge from the target's followers set, the side that
// is written last.
func (r *UserRepository) IsFollowing(ctx context.Context, actorID, targetID string) (bool, error) {
	target, ok := objectID(targetID)
	if !ok {
		return false, domain.ErrUserNotFound
	}
	actor, ok := objectID(actorID)
	if !ok {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		Followers []primitive.ObjectID `bson:"followers"`
	}
	err := r.col.FindOne(ctx, bson.M{"_id": target},
		options.FindOne().SetProjection(bson.M{"followers": 1}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, domain.ErrUserNotFound
		}
		return false, fmt.Errorf("is following: %w", err)
	}

	for _, f := range doc.Followers {
		if f == actor {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) AddFollowing(ctx context.Context, actorID, targetID string) error {
	return r.updateEdge(ctx, actorID, "$addToSet", "following", targetID)
}

func (r *UserRepository) RemoveFollowing(ctx context.Context, actorID, targetID string) error {
	return r.updateEdge(ctx, actorID, "$pull", "following", targetID)
}

func (r *UserRepository) AddFollower(ctx context.Context, targetID, followerID string) error {
	return r.updateEdge(ctx, targetID, "$addToSet", "followers", followerID)
}

func (r *UserRepository) RemoveFollower(ctx context.Context, targetID, followerID string) error {
	return r.updateEdge(ctx, targetID, "$pull", "followers", followerID)
}

// updateEdge applies a single set operator to one edge array of one user.
func (r *UserRepository) updateEdge(ctx context.Context, ownerID, op, field, otherID string) error {
	owner, ok := objectID(ownerID)
	if !ok {
		return domain.ErrUserNotFound
	}
	other, ok := objectID(otherID)
	if !ok {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": owner}, bson.M{op: bson.M{field: other}})
	if err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique identity indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
