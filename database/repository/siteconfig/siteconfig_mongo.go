package siteconfigRepo

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

// MongoSiteConfigRepo implements Repository using MongoDB. The collection
// holds at most one document; the oldest document wins if an operator
// manages to insert more than one.
type MongoSiteConfigRepo struct {
	coll *mongo.Collection
}

// NewMongoSiteConfigRepo creates a new instance of Repository using MongoDB.
func NewMongoSiteConfigRepo() Repository {
	return &MongoSiteConfigRepo{coll: database.Collection("siteconfig")}
}

func (r *MongoSiteConfigRepo) Get(ctx context.Context) (*models.SiteConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "updatedAt", Value: 1}})
	var cfg models.SiteConfig
	err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch site config: %w", err)
	}
	return &cfg, nil
}

func (r *MongoSiteConfigRepo) Put(ctx context.Context, cfg *models.SiteConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cfg.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": cfg.ID}, cfg, opts); err != nil {
		return fmt.Errorf("failed to store site config: %w", err)
	}
	return nil
}

func (r *MongoSiteConfigRepo) Delete(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to delete site config: %w", err)
	}
	return nil
}
