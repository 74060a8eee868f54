package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Statuts possibles d'un produit
const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusOutOfStock = "out_of_stock"
)

type ProductImage struct {
	URL string `bson:"url" json:"url" binding:"required"`
	Alt string `bson:"alt,omitempty" json:"alt,omitempty"`
}

type Specification struct {
	Key   string `bson:"key" json:"key"`
	Value string `bson:"value" json:"value"`
}

// Review est un avis embarqué dans le document produit (un seul par user/produit)
type Review struct {
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// CategoryRef est le résumé d'une catégorie après populate
type CategoryRef struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
	Slug string             `bson:"slug" json:"slug"`
}

// UserRef est le résumé d'un utilisateur après populate
type UserRef struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	DiscountPrice *float64           `bson:"discount_price,omitempty" json:"discount_price,omitempty"`
	Images        []ProductImage     `bson:"images,omitempty" json:"images"`
	CategoryID    primitive.ObjectID `bson:"category" json:"category_id"`
	Brand         string             `bson:"brand" json:"brand"`
	Stock         int                `bson:"stock" json:"stock"`
	Sold          int                `bson:"sold" json:"sold"`
	Ratings       float64            `bson:"ratings" json:"ratings"`
	NumOfReviews  int                `bson:"num_of_reviews" json:"num_of_reviews"`
	Reviews       []Review           `bson:"reviews" json:"reviews"`
	Specs         []Specification    `bson:"specifications,omitempty" json:"specifications,omitempty"`
	Tags          []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Featured      bool               `bson:"featured" json:"featured"`
	Status        string             `bson:"status" json:"status"`
	CreatedBy     primitive.ObjectID `bson:"created_by" json:"created_by_id"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`

	// Champs résolus par populate, jamais stockés
	Category *CategoryRef `bson:"-" json:"category,omitempty"`
	Creator  *UserRef     `bson:"-" json:"creator,omitempty"`
}

// ValidStatus vérifie qu'un statut fait partie de l'énumération
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusOutOfStock
}

// HasReviewFrom indique si l'utilisateur a déjà laissé un avis sur ce produit
func (p *Product) HasReviewFrom(userID primitive.ObjectID) bool {
	for _, r := range p.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// AddReview ajoute un avis et recalcule num_of_reviews et ratings
// (moyenne arithmétique des notes). Le document complet est ensuite
// persisté en une seule écriture par l'appelant.
func (p *Product) AddReview(r Review) {
	p.Reviews = append(p.Reviews, r)
	p.NumOfReviews = len(p.Reviews)

	total := 0
	for _, rev := range p.Reviews {
		total += rev.Rating
	}
	p.Ratings = float64(total) / float64(len(p.Reviews))
}
