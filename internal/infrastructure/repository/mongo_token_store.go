package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/basak2005/Google-workspace-Integration/internal/domain"
	"github.com/basak2005/Google-workspace-Integration/internal/infrastructure/repository/entity"
	"github.com/basak2005/Google-workspace-Integration/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTokenStore implements TokenStore using MongoDB.
type MongoTokenStore struct {
	collection *mongo.Collection
}

// NewMongoTokenStore creates a new MongoDB token store.
func NewMongoTokenStore(db *mongo.Database) *MongoTokenStore {
	return &MongoTokenStore{
		collection: db.Collection("oauth_tokens"),
	}
}

var _ ports.TokenStore = (*MongoTokenStore)(nil)

// EnsureIndexes creates the unique session_id index.
func (s *MongoTokenStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create session_id index: %w", err)
	}
	return nil
}

// Save upserts the credential record for its session identity.
func (s *MongoTokenStore) Save(ctx context.Context, rec *domain.CredentialRecord) error {
	doc := entity.MongoCredentialDocFromDomain(rec)
	doc.UpdatedAt = time.Now()
	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = doc.UpdatedAt
	}
	// created_at is only written on insert so refreshes keep the original.
	doc.CreatedAt = time.Time{}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"session_id": rec.SessionID}
	update := bson.M{
		"$set":         doc,
		"$setOnInsert": bson.M{"created_at": createdAt},
	}

	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("%w: failed to save credentials: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Load retrieves the record for an identity, (nil, nil) when absent.
func (s *MongoTokenStore) Load(ctx context.Context, identity string) (*domain.CredentialRecord, error) {
	var doc entity.MongoCredentialDoc
	err := s.collection.FindOne(ctx, bson.M{"session_id": identity}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load credentials: %v", domain.ErrStoreUnavailable, err)
	}
	return doc.ToDomain(), nil
}

// Delete removes the record. Missing identities are not an error.
func (s *MongoTokenStore) Delete(ctx context.Context, identity string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"session_id": identity}); err != nil {
		return fmt.Errorf("%w: failed to delete credentials: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// ListIdentities returns all stored identities with timestamps only.
func (s *MongoTokenStore) ListIdentities(ctx context.Context) ([]domain.SessionInfo, error) {
	opts := options.Find().SetProjection(bson.M{
		"session_id": 1,
		"created_at": 1,
		"updated_at": 1,
	})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list identities: %v", domain.ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	var sessions []domain.SessionInfo
	for cursor.Next(ctx) {
		var info domain.SessionInfo
		if err := cursor.Decode(&info); err != nil {
			return nil, fmt.Errorf("failed to decode session info: %w", err)
		}
		sessions = append(sessions, info)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: cursor error: %v", domain.ErrStoreUnavailable, err)
	}

	return sessions, nil
}
