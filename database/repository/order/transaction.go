package orderRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/KevinDarioIguaran/LCLGSC/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// withTransaction runs txnFn inside a mongo session, aborting on any error
// so a crash or failed guard leaves no partial effect.
func (r *MongoOrderRepo) withTransaction(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
	client := r.orders.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// CreateCheckout is the single authoritative point of stock mutation: the
// guarded debit, the guarded stock decrements and the order insert commit
// together or not at all.
func (r *MongoOrderRepo) CreateCheckout(ctx context.Context, o *models.Order, totalCents int64, decrements []StockDecrement) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		debit := bson.M{"code": o.UserCode, "creditCents": bson.M{"$gte": totalCents}}
		res, err := r.users.UpdateOne(sc, debit, bson.M{"$inc": bson.M{"creditCents": -totalCents}})
		if err != nil {
			return fmt.Errorf("credit debit failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrInsufficientCredit
		}

		for _, dec := range decrements {
			filter := bson.M{
				"id":        dec.ProductID,
				"available": true,
				"stock":     bson.M{"$gte": dec.Quantity},
			}
			update := bson.M{"$inc": bson.M{
				"stock":      -dec.Quantity,
				"salesCount": dec.Quantity,
			}}
			res, err := r.products.UpdateOne(sc, filter, update)
			if err != nil {
				return fmt.Errorf("stock decrement failed for %s: %w", dec.ProductID, err)
			}
			if res.MatchedCount == 0 {
				return ErrInsufficientStock
			}
			if _, err := r.categories.UpdateOne(sc,
				bson.M{"id": dec.CategoryID},
				bson.M{"$inc": bson.M{"salesCount": dec.Quantity}},
			); err != nil {
				return fmt.Errorf("category sales update failed: %w", err)
			}
		}

		if _, err := r.orders.InsertOne(sc, o); err != nil {
			return fmt.Errorf("order insert failed: %w", err)
		}

		if _, err := r.carts.UpdateOne(sc,
			bson.M{"userCode": o.UserCode},
			bson.M{"$set": bson.M{"items": []models.CartLine{}}},
		); err != nil {
			return fmt.Errorf("cart clear failed: %w", err)
		}
		return nil
	})
}

func (r *MongoOrderRepo) CancelForStock(ctx context.Context, orderID string, cancelItems []models.OrderItem, refundCents int64) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var o models.Order
		if err := r.orders.FindOne(sc, bson.M{"id": orderID}).Decode(&o); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch order %s: %w", orderID, err)
		}

		filter := bson.M{"id": orderID, "status": models.OrderStatusPending}
		update := bson.M{
			"$set":  bson.M{"status": models.OrderStatusCancelled},
			"$push": bson.M{"cancelItems": bson.M{"$each": cancelItems}},
		}
		res, err := r.orders.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("cancel transition failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStatusConflict
		}

		if refundCents > 0 {
			// Refunds bypass the recharge cap; money already paid in
			// always goes back.
			if _, err := r.users.UpdateOne(sc,
				bson.M{"code": o.UserCode},
				bson.M{"$inc": bson.M{"creditCents": refundCents}},
			); err != nil {
				return fmt.Errorf("cancel refund failed: %w", err)
			}
		}
		return nil
	})
}

func (r *MongoOrderRepo) DeleteRefund(ctx context.Context, orderID, userCode string, refundCents int64) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		filter := bson.M{"id": orderID, "userCode": userCode, "status": models.OrderStatusPending}
		res, err := r.orders.DeleteOne(sc, filter)
		if err != nil {
			return fmt.Errorf("order delete failed: %w", err)
		}
		if res.DeletedCount == 0 {
			return r.classifyOwnedFailure(sc, orderID, userCode)
		}

		if refundCents > 0 {
			if _, err := r.users.UpdateOne(sc,
				bson.M{"code": userCode},
				bson.M{"$inc": bson.M{"creditCents": refundCents}},
			); err != nil {
				return fmt.Errorf("delete refund failed: %w", err)
			}
		}
		return nil
	})
}

func (r *MongoOrderRepo) Refund(ctx context.Context, orderID string, refundCents int64) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var o models.Order
		if err := r.orders.FindOne(sc, bson.M{"id": orderID}).Decode(&o); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch order %s: %w", orderID, err)
		}

		filter := bson.M{"id": orderID, "status": models.OrderStatusPending}
		update := bson.M{"$set": bson.M{"status": models.OrderStatusRefunded}}
		res, err := r.orders.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("refund transition failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStatusConflict
		}

		if refundCents > 0 {
			if _, err := r.users.UpdateOne(sc,
				bson.M{"code": o.UserCode},
				bson.M{"$inc": bson.M{"creditCents": refundCents}},
			); err != nil {
				return fmt.Errorf("refund credit failed: %w", err)
			}
		}
		return nil
	})
}
