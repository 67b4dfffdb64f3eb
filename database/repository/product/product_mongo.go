package productRepo

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

// MongoProductRepo implements ProductRepository using MongoDB.
type MongoProductRepo struct {
	products   *mongo.Collection
	categories *mongo.Collection
}

// NewMongoProductRepo creates a new instance of ProductRepository using MongoDB.
func NewMongoProductRepo() ProductRepository {
	repo := &MongoProductRepo{
		products:   database.Collection("products"),
		categories: database.Collection("categories"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoProductRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	productIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "categoryId", Value: 1}, {Key: "salesCount", Value: -1}}},
		{Keys: bson.D{{Key: "sellerCode", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.products.Indexes().CreateMany(ctx, productIndexes); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	categoryIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.categories.Indexes().CreateMany(ctx, categoryIndexes); err != nil {
		return fmt.Errorf("failed to create category indexes: %w", err)
	}
	return nil
}

func (r *MongoProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Product
	err := r.products.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}
	return &p, nil
}

func (r *MongoProductRepo) Create(ctx context.Context, p *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	if _, err := r.products.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create product %s: %w", p.Name, err)
	}
	return nil
}

func (r *MongoProductRepo) Update(ctx context.Context, p *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.UpdatedAt = time.Now()
	// Sellers may only touch their own products.
	res, err := r.products.ReplaceOne(ctx, bson.M{"id": p.ID, "sellerCode": p.SellerCode}, p)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", p.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProductRepo) Delete(ctx context.Context, id, sellerCode string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.products.DeleteOne(ctx, bson.M{"id": id, "sellerCode": sellerCode})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProductRepo) SearchByName(ctx context.Context, name string) ([]models.Product, error) {
	filter := bson.M{
		"available": true,
		"name":      bson.M{"$regex": primitive.Regex{Pattern: name, Options: "i"}},
	}
	return r.find(ctx, filter, bson.D{{Key: "salesCount", Value: -1}}, 0)
}

func (r *MongoProductRepo) ListByCategory(ctx context.Context, categoryID string, limit int) ([]models.Product, error) {
	filter := bson.M{"available": true, "categoryId": categoryID}
	return r.find(ctx, filter, bson.D{{Key: "salesCount", Value: -1}}, int64(limit))
}

func (r *MongoProductRepo) ListBySeller(ctx context.Context, sellerCode string) ([]models.Product, error) {
	filter := bson.M{"available": true, "sellerCode": sellerCode}
	return r.find(ctx, filter, bson.D{{Key: "createdAt", Value: -1}}, 0)
}

func (r *MongoProductRepo) SearchBySeller(ctx context.Context, sellerCode, name, categoryID string) ([]models.Product, error) {
	filter := bson.M{"available": true, "sellerCode": sellerCode}
	if name != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: name, Options: "i"}}
	}
	if categoryID != "" {
		filter["categoryId"] = categoryID
	}
	return r.find(ctx, filter, bson.D{{Key: "createdAt", Value: -1}}, 0)
}

func (r *MongoProductRepo) BestSellers(ctx context.Context, limit int) ([]models.Product, error) {
	return r.find(ctx, bson.M{"available": true}, bson.D{{Key: "salesCount", Value: -1}}, int64(limit))
}

func (r *MongoProductRepo) find(ctx context.Context, filter bson.M, sort bson.D, limit int64) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(sort)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("product query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var list []models.Product
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return list, nil
}

func (r *MongoProductRepo) Categories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("category query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var list []models.Category
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return list, nil
}

func (r *MongoProductRepo) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c models.Category
	err := r.categories.FindOne(ctx, bson.M{"slug": slug}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category %s: %w", slug, err)
	}
	return &c, nil
}

func (r *MongoProductRepo) UpsertCategory(ctx context.Context, c *models.Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.categories.ReplaceOne(ctx, bson.M{"id": c.ID}, c, opts); err != nil {
		return fmt.Errorf("failed to upsert category %s: %w", c.Slug, err)
	}
	return nil
}
