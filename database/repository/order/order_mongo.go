package orderRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KevinDarioIguaran/LCLGSC/database"
	"github.com/KevinDarioIguaran/LCLGSC/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOrderRepo implements OrderRepository using MongoDB. It also touches
// the users, products, categories and carts collections inside checkout
// and refund transactions.
type MongoOrderRepo struct {
	orders     *mongo.Collection
	users      *mongo.Collection
	products   *mongo.Collection
	categories *mongo.Collection
	carts      *mongo.Collection
}

// NewMongoOrderRepo creates a new instance of OrderRepository using MongoDB.
func NewMongoOrderRepo() OrderRepository {
	repo := &MongoOrderRepo{
		orders:     database.Collection("orders"),
		users:      database.Collection("users"),
		products:   database.Collection("products"),
		categories: database.Collection("categories"),
		carts:      database.Collection("carts"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoOrderRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userCode", Value: 1}, {Key: "created", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created", Value: -1}}},
	}
	if _, err := r.orders.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}

func (r *MongoOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o models.Order
	err := r.orders.FindOne(ctx, bson.M{"id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", id, err)
	}
	return &o, nil
}

func (r *MongoOrderRepo) ListByUser(ctx context.Context, userCode string) ([]models.Order, error) {
	return r.find(ctx, bson.M{"userCode": userCode})
}

func (r *MongoOrderRepo) ListPending(ctx context.Context, excludeUserCode string) ([]models.Order, error) {
	return r.find(ctx, bson.M{
		"status":   models.OrderStatusPending,
		"userCode": bson.M{"$ne": excludeUserCode},
	})
}

func (r *MongoOrderRepo) SearchByProductName(ctx context.Context, userCode, query string) ([]models.Order, error) {
	return r.find(ctx, bson.M{
		"userCode":   userCode,
		"items.name": bson.M{"$regex": primitive.Regex{Pattern: query, Options: "i"}},
	})
}

func (r *MongoOrderRepo) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}})
	cursor, err := r.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("order query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return list, nil
}

// ConfirmPickup is a single-document compare-and-set: the filter pins both
// the pending status and the exact token, so a stale or forged confirmation
// can never flip the status.
func (r *MongoOrderRepo) ConfirmPickup(ctx context.Context, orderID, qrCode, sellerCode string, arrival time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":         orderID,
		"status":     models.OrderStatusPending,
		"qrCodeData": qrCode,
	}
	update := bson.M{"$set": bson.M{
		"status":         models.OrderStatusCompleted,
		"sellerApproved": sellerCode,
		"arrivalTime":    arrival,
	}}
	res, err := r.orders.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to confirm order %s: %w", orderID, err)
	}
	if res.MatchedCount == 0 {
		return r.classifyConfirmFailure(ctx, orderID, qrCode)
	}
	return nil
}

func (r *MongoOrderRepo) classifyConfirmFailure(ctx context.Context, orderID, qrCode string) error {
	o, err := r.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.Status != models.OrderStatusPending {
		return ErrStatusConflict
	}
	if o.QRCodeData != qrCode {
		return ErrTokenMismatch
	}
	// Lost a race with a concurrent transition; report the conflict.
	return ErrStatusConflict
}

func (r *MongoOrderRepo) Hide(ctx context.Context, orderID, userCode string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":       orderID,
		"userCode": userCode,
		"status":   bson.M{"$ne": models.OrderStatusPending},
	}
	res, err := r.orders.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"donotShow": true}})
	if err != nil {
		return fmt.Errorf("failed to hide order %s: %w", orderID, err)
	}
	if res.MatchedCount == 0 {
		return r.classifyOwnedFailure(ctx, orderID, userCode)
	}
	return nil
}

func (r *MongoOrderRepo) SetReview(ctx context.Context, orderID, userCode string, rating int, comment string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Hidden orders accept no rating or comment.
	filter := bson.M{
		"id":        orderID,
		"userCode":  userCode,
		"status":    models.OrderStatusCompleted,
		"donotShow": false,
	}
	update := bson.M{"$set": bson.M{"rating": rating, "comment": comment}}
	res, err := r.orders.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to review order %s: %w", orderID, err)
	}
	if res.MatchedCount == 0 {
		if err := r.classifyOwnedFailure(ctx, orderID, userCode); !errors.Is(err, ErrStatusConflict) {
			return err
		}
		return ErrReviewForbidden
	}
	return nil
}

func (r *MongoOrderRepo) classifyOwnedFailure(ctx context.Context, orderID, userCode string) error {
	o, err := r.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserCode != userCode {
		return ErrNotFound
	}
	return ErrStatusConflict
}
