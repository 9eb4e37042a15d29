package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sirpyerre/social-network/internal/core/domain"
)

const collectionPosts = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type mongoComment struct {
	ID        primitive.ObjectID `bson:"_id"`
	UserID    primitive.ObjectID `bson:"user"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"created_at"`
}

type mongoPost struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	AuthorID  primitive.ObjectID   `bson:"author"`
	Content   string               `bson:"content"`
	Image     string               `bson:"image"`
	Likes     []primitive.ObjectID `bson:"likes"`
	Comments  []mongoComment       `bson:"comments"`
	CreatedAt time.Time            `bson:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

func (m *mongoPost) toDomain() *domain.Post {
	comments := make([]domain.Comment, 0, len(m.Comments))
	for _, c := range m.Comments {
		comments = append(comments, domain.Comment{
			ID:        c.ID.Hex(),
			UserID:    c.UserID.Hex(),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return &domain.Post{
		ID:        m.ID.Hex(),
		AuthorID:  m.AuthorID.Hex(),
		Content:   m.Content,
		Image:     m.Image,
		Likes:     hexes(m.Likes),
		Comments:  comments,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Create inserts post and sets its ID.
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	author, ok := objectID(post.AuthorID)
	if !ok {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPost{
		ID:        primitive.NewObjectID(),
		AuthorID:  author,
		Content:   post.Content,
		Image:     post.Image,
		Likes:     objectIDs(post.Likes),
		Comments:  []mongoComment{},
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	post.ID = doc.ID.Hex()
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// AddLike adds userID to the like set only when absent and reports whether
// the set changed.
func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	return r.updateLikes(ctx, postID, userID, true)
}

// RemoveLike removes userID from the like set only when present and reports
// whether the set changed.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	return r.updateLikes(ctx, postID, userID, false)
}

func (r *PostRepository) updateLikes(ctx context.Context, postID, userID string, add bool) (bool, error) {
	pid, ok := objectID(postID)
	if !ok {
		return false, domain.ErrPostNotFound
	}
	uid, ok := objectID(userID)
	if !ok {
		return false, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": pid, "likes": uid}
	update := bson.M{
		"$pull": bson.M{"likes": uid},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	if add {
		filter = bson.M{"_id": pid, "likes": bson.M{"$ne": uid}}
		update = bson.M{
			"$addToSet": bson.M{"likes": uid},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		}
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("update likes: %w", err)
	}
	if res.MatchedCount > 0 {
		return true, nil
	}

	// Nothing matched: either the post is gone or the set was already in the
	// requested state.
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": pid})
	if err != nil {
		return false, fmt.Errorf("count post: %w", err)
	}
	if n == 0 {
		return false, domain.ErrPostNotFound
	}
	return false, nil
}

// PrependComment inserts comment at the head of the comment array and returns
// the updated post.
func (r *PostRepository) PrependComment(ctx context.Context, postID string, comment domain.Comment) (*domain.Post, error) {
	pid, ok := objectID(postID)
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	uid, ok := objectID(comment.UserID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoComment{
		ID:        primitive.NewObjectID(),
		UserID:    uid,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}

	var mp mongoPost
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": pid},
		bson.M{
			"$push": bson.M{"comments": bson.M{"$each": bson.A{doc}, "$position": 0}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return mp.toDomain(), nil
}

// FindByAuthors returns posts by any of authorIDs, newest first with ties
// broken by id, along with the total match count. A limit of 0 returns every
// remaining post.
func (r *PostRepository) FindByAuthors(ctx context.Context, authorIDs []string, skip, limit int) ([]*domain.Post, int64, error) {
	oids := objectIDs(authorIDs)
	if len(oids) == 0 {
		return []*domain.Post{}, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"author": bson.M{"$in": oids}}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(skip))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find posts: %w", err)
	}
	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode posts: %w", err)
	}

	out := make([]*domain.Post, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, total, nil
}

// EnsureIndexes creates the feed index on the posts collection.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
