package cartRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KevinDarioIguaran/LCLGSC/database"
	"github.com/KevinDarioIguaran/LCLGSC/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCartRepo implements CartRepository using MongoDB. Each user owns at
// most one cart document with embedded lines.
type MongoCartRepo struct {
	coll *mongo.Collection
}

// NewMongoCartRepo creates a new instance of CartRepository using MongoDB.
func NewMongoCartRepo() CartRepository {
	repo := &MongoCartRepo{coll: database.Collection("carts")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoCartRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userCode", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create cart index: %w", err)
	}
	return nil
}

func (r *MongoCartRepo) Get(ctx context.Context, userCode string) (*models.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cart models.Cart
	err := r.coll.FindOne(ctx, bson.M{"userCode": userCode}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart for %s: %w", userCode, err)
	}
	return &cart, nil
}

func (r *MongoCartRepo) AddLine(ctx context.Context, userCode, productID string, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Increment in place when the product is already a line.
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"userCode": userCode, "items.productId": productID},
		bson.M{"$inc": bson.M{"items.$.quantity": quantity}},
	)
	if err != nil {
		return fmt.Errorf("failed to update cart line: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	line := models.CartLine{ProductID: productID, Quantity: quantity, AddedAt: time.Now()}
	opts := options.Update().SetUpsert(true)
	_, err = r.coll.UpdateOne(ctx,
		bson.M{"userCode": userCode},
		bson.M{
			"$push":        bson.M{"items": line},
			"$setOnInsert": bson.M{"createdAt": time.Now()},
		},
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to add cart line: %w", err)
	}
	return nil
}

func (r *MongoCartRepo) SetQuantity(ctx context.Context, userCode, productID string, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"userCode": userCode, "items.productId": productID},
		bson.M{"$set": bson.M{"items.$.quantity": quantity}},
	)
	if err != nil {
		return fmt.Errorf("failed to set cart quantity: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *MongoCartRepo) RemoveLine(ctx context.Context, userCode, productID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userCode": userCode},
		bson.M{"$pull": bson.M{"items": bson.M{"productId": productID}}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}
	return nil
}

func (r *MongoCartRepo) Clear(ctx context.Context, userCode string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userCode": userCode},
		bson.M{"$set": bson.M{"items": []models.CartLine{}}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear cart for %s: %w", userCode, err)
	}
	return nil
}
