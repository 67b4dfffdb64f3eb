package models

import "time"

// CartLine references a product with a desired quantity. Prices are never
// stored on the line; the checkout snapshot captures them.
type CartLine struct {
	ProductID string    `bson:"productId" json:"productId"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	AddedAt   time.Time `bson:"addedAt" json:"addedAt"`
}

// Cart is the single open cart of a user.
type Cart struct {
	UserCode  string     `bson:"userCode" json:"userCode"`
	Items     []CartLine `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}
