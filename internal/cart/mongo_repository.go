package cart

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
		collection: db.Collection("carts"),
	}
}

func (m *MongoRepository) FindByOwner(ctx context.Context, email string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"email": email}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

func (m *MongoRepository) Create(ctx context.Context, cart *domain.Cart) error {
	now := time.Now()
	cart.ID = primitive.NewObjectID().Hex()
	cart.Version = 1
	cart.CreatedAt = now
	cart.UpdatedAt = now
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}

	_, err := m.collection.InsertOne(ctx, cart)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrCartExists
		}
		return fmt.Errorf("failed to create cart: %w", err)
	}

	return nil
}

func (m *MongoRepository) Save(ctx context.Context, cart *domain.Cart) error {
	now := time.Now()

	// Matching on the loaded version makes this a compare-and-swap: a writer
	// holding a stale snapshot matches nothing and reports the conflict
	// instead of clobbering the newer document.
	filter := bson.M{
		"email":   cart.Email,
		"version": cart.Version,
	}
	update := bson.M{
		"$set": bson.M{
			"cartItems":     cart.Items,
			"paymentOption": cart.PaymentOption,
			"updated_at":    now,
		},
		"$inc": bson.M{"version": 1},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}

	cart.Version++
	cart.UpdatedAt = now
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
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	return nil
}
