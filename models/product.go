package models

import "time"

// Category groups products; SalesCount mirrors the per-product counter so
// the home feed can rank categories without aggregation.
type Category struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	Slug       string `bson:"slug" json:"slug"`
	SalesCount int64  `bson:"salesCount" json:"salesCount"`
}

// Product is a catalog entry offered by a seller. Stock is decremented
// exactly once, inside the checkout transaction.
type Product struct {
	ID           string    `bson:"id" json:"id"`
	CategoryID   string    `bson:"categoryId" json:"categoryId"`
	Name         string    `bson:"name" json:"name"`
	Slug         string    `bson:"slug" json:"slug"`
	PriceCents   int64     `bson:"priceCents" json:"priceCents"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	Stock        int       `bson:"stock" json:"stock"`
	SalesCount   int64     `bson:"salesCount" json:"salesCount"`
	ReviewsCount int64     `bson:"reviewsCount" json:"reviewsCount"`
	SellerCode   string    `bson:"sellerCode" json:"sellerCode"`
	Available    bool      `bson:"available" json:"available"`
	ImageURL     string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
