package models

import "time"

// OrderStatus is persisted as a lowercase string.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	// OrderStatusRefunded is terminal and reachable only through the admin
	// surface; nothing transitions into it automatically.
	OrderStatusRefunded OrderStatus = "refunded"
)

// Delivery locations inside the school. Cooperative pickup is exempt from
// the delivery fee.
const (
	AddressCooperative = "cooperative"
	AddressClassroom01 = "classroom_01"
	AddressClassroom02 = "classroom_02"
	AddressRectory     = "rectory"
)

// ValidSchoolAddress reports whether s is a known delivery location.
func ValidSchoolAddress(s string) bool {
	switch s {
	case AddressCooperative, AddressClassroom01, AddressClassroom02, AddressRectory:
		return true
	}
	return false
}

// OrderItem snapshots a cart line at checkout time. PriceCents is the
// product price at order creation, not a live reference.
type OrderItem struct {
	ProductID  string `bson:"productId" json:"productId"`
	Name       string `bson:"name" json:"name"`
	SellerCode string `bson:"sellerCode" json:"sellerCode"`
	PriceCents int64  `bson:"priceCents" json:"priceCents"`
	Quantity   int    `bson:"quantity" json:"quantity"`
}

// CostCents returns price times quantity.
func (i OrderItem) CostCents() int64 {
	return i.PriceCents * int64(i.Quantity)
}

// Order is the root of the transactional aggregate. Items are never removed
// once written; lines pulled from fulfillment are mirrored into CancelItems
// so the original order remains on record.
type Order struct {
	ID            string      `bson:"id" json:"id"`
	UserCode      string      `bson:"userCode" json:"userCode"`
	Created       time.Time   `bson:"created" json:"created"`
	ArrivalTime   *time.Time  `bson:"arrivalTime,omitempty" json:"arrivalTime,omitempty"`
	Status        OrderStatus `bson:"status" json:"status"`
	Paid          bool        `bson:"paid" json:"paid"`
	SchoolAddress string      `bson:"schoolAddress" json:"schoolAddress"`
	// QRCodeData is generated once at creation and never regenerated.
	QRCodeData     string      `bson:"qrCodeData" json:"-"`
	SellerApproved string      `bson:"sellerApproved,omitempty" json:"sellerApproved,omitempty"`
	DonotShow      bool        `bson:"donotShow" json:"donotShow"`
	Rating         int         `bson:"rating,omitempty" json:"rating,omitempty"`
	Comment        string      `bson:"comment,omitempty" json:"comment,omitempty"`
	Items          []OrderItem `bson:"items" json:"items"`
	CancelItems    []OrderItem `bson:"cancelItems,omitempty" json:"cancelItems,omitempty"`
}

// ItemsCostCents sums the cost of all order items.
func (o *Order) ItemsCostCents() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.CostCents()
	}
	return total
}

// TotalCents is the order total: item costs plus the delivery fee unless
// the order is picked up at the cooperative.
func (o *Order) TotalCents(deliveryFeeCents int64) int64 {
	total := o.ItemsCostCents()
	if o.SchoolAddress != AddressCooperative {
		total += deliveryFeeCents
	}
	return total
}

// Item returns the order line for a product, or nil.
func (o *Order) Item(productID string) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}
