package orderRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/KevinDarioIguaran/LCLGSC/models"

	"go.mongodb.org/mongo-driver/bson"
)

// TopProducts aggregates a seller's completed order lines since the given
// time, ranked by units sold.
func (r *MongoOrderRepo) TopProducts(ctx context.Context, sellerCode string, since time.Time, limit int) ([]ProductSales, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{
			"status":  models.OrderStatusCompleted,
			"created": bson.M{"$gte": since},
		}},
		{"$unwind": "$items"},
		{"$match": bson.M{"items.sellerCode": sellerCode}},
		{"$group": bson.M{
			"_id":        "$items.name",
			"totalSales": bson.M{"$sum": "$items.quantity"},
			"totalRevenueCents": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$items.priceCents", "$items.quantity"},
			}},
		}},
		{"$sort": bson.M{"totalSales": -1}},
		{"$limit": int64(limit)},
	}

	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("top products aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []ProductSales
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode top products: %w", err)
	}
	return results, nil
}

// RevenueByMonth groups a seller's completed order lines by calendar month
// of the given year.
func (r *MongoOrderRepo) RevenueByMonth(ctx context.Context, sellerCode string, year int) ([]MonthlyRevenue, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	pipeline := []bson.M{
		{"$match": bson.M{
			"status":  models.OrderStatusCompleted,
			"created": bson.M{"$gte": start, "$lt": end},
		}},
		{"$unwind": "$items"},
		{"$match": bson.M{"items.sellerCode": sellerCode}},
		{"$group": bson.M{
			"_id":        bson.M{"$month": "$created"},
			"totalSales": bson.M{"$sum": "$items.quantity"},
			"totalRevenueCents": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$items.priceCents", "$items.quantity"},
			}},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []MonthlyRevenue
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode monthly revenue: %w", err)
	}
	return results, nil
}
