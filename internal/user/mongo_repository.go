package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sanchitttt/qkart-backend/internal/domain"
)

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection("users"),
	}
}

func (m *MongoRepository) Create(ctx context.Context, u *domain.User) error {
	now := time.Now()
	u.ID = primitive.NewObjectID().Hex()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := m.collection.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (m *MongoRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *MongoRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.findOne(ctx, bson.M{"email": email})
}

func (m *MongoRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var u domain.User

	err := m.collection.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (m *MongoRepository) SetAddress(ctx context.Context, id, address string) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{
		"address":    address,
		"updated_at": time.Now(),
	}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set address: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (m *MongoRepository) DebitWallet(ctx context.Context, email string, amount float64) error {
	// The balance guard lives in the filter so the decrement and the check
	// are one atomic document update.
	filter := bson.M{
		"email":       email,
		"walletMoney": bson.M{"$gte": amount},
	}
	update := bson.M{
		"$inc": bson.M{"walletMoney": -amount},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to debit wallet: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrInsufficientFunds
	}

	return nil
}

func (m *MongoRepository) CreditWallet(ctx context.Context, email string, amount float64) error {
	filter := bson.M{"email": email}
	update := bson.M{
		"$inc": bson.M{"walletMoney": amount},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (m *MongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	return nil
}
