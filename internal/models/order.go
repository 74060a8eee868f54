package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Statuts possibles d'une commande
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user" json:"user_id"`
	Items           []OrderItem        `bson:"items" json:"items"`
	ShippingAddress Address            `bson:"shipping_address" json:"shipping_address"`
	ItemsPrice      float64            `bson:"items_price" json:"items_price"`
	ShippingPrice   float64            `bson:"shipping_price" json:"shipping_price"`
	TotalPrice      float64            `bson:"total_price" json:"total_price"`
	Status          string             `bson:"status" json:"status"`
	IsPaid          bool               `bson:"is_paid" json:"is_paid"`
	PaidAt          *time.Time         `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	StripeID        string             `bson:"stripe_id,omitempty" json:"stripe_id,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// ValidOrderStatus vérifie qu'un statut de commande fait partie de l'énumération
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// ComputeTotals recalcule les montants à partir des lignes de commande.
// Les totaux envoyés par le client ne sont jamais utilisés.
func (o *Order) ComputeTotals() {
	items := 0.0
	for _, it := range o.Items {
		items += it.Price * float64(it.Quantity)
	}
	o.ItemsPrice = items
	o.TotalPrice = items + o.ShippingPrice
}
