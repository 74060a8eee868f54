package product

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"orvea_back_end/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// ListParams reprend tels quels les paramètres de requête du catalogue.
// Tout est optionnel, tout arrive en string.
type ListParams struct {
	Page     string
	Limit    string
	Category string
	Brand    string
	Featured string
	Status   string
	MinPrice string
	MaxPrice string
	Search   string
	Sort     string
}

// CatalogQuery est le résultat de la construction : un filtre, un tri
// et une fenêtre de page, exécutés en un count + un find
type CatalogQuery struct {
	Filter bson.M
	Sort   bson.D
	Page   int
	Limit  int
}

// Skip retourne l'offset de la fenêtre courante
func (q CatalogQuery) Skip() int64 {
	return int64(q.Page-1) * int64(q.Limit)
}

// FindOptions traduit la fenêtre et le tri pour le driver Mongo
func (q CatalogQuery) FindOptions() *options.FindOptions {
	return options.Find().
		SetSort(q.Sort).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))
}

// BuildCatalogQuery traduit les paramètres du catalogue en requête Mongo.
// page/limit illisibles retombent sur 1/12, les bornes de prix illisibles
// sont ignorées, le statut absent vaut "active", un champ de tri inconnu
// est passé tel quel au store.
func BuildCatalogQuery(p ListParams) CatalogQuery {
	filter := bson.M{}

	if p.Category != "" {
		if oid, err := primitive.ObjectIDFromHex(p.Category); err == nil {
			filter["category"] = oid
		} else {
			// id illisible : on laisse la valeur brute, le store ne matchera rien
			filter["category"] = p.Category
		}
	}

	if p.Brand != "" {
		filter["brand"] = bson.M{"$regex": p.Brand, "$options": "i"}
	}

	if p.Featured != "" {
		filter["featured"] = p.Featured == "true"
	}

	if p.Status != "" {
		filter["status"] = p.Status
	} else {
		filter["status"] = models.StatusActive // par défaut, produits actifs uniquement
	}

	// Fourchette de prix, bornes inclusives et combinables
	price := bson.M{}
	if v, err := strconv.ParseFloat(p.MinPrice, 64); err == nil {
		price["$gte"] = v
	}
	if v, err := strconv.ParseFloat(p.MaxPrice, 64); err == nil {
		price["$lte"] = v
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if p.Search != "" {
		re := bson.M{"$regex": p.Search, "$options": "i"}
		filter["$or"] = []bson.M{
			{"name": re},
			{"description": re},
			{"brand": re},
		}
	}

	return CatalogQuery{
		Filter: filter,
		Sort:   buildSort(p.Sort),
		Page:   positiveOr(p.Page, DefaultPage),
		Limit:  positiveOr(p.Limit, DefaultLimit),
	}
}

func buildSort(sort string) bson.D {
	if sort == "" {
		return bson.D{{Key: "created_at", Value: -1}} // plus récents d'abord
	}

	order := 1
	field := sort
	if strings.HasPrefix(sort, "-") {
		order = -1
		field = strings.TrimPrefix(sort, "-")
	}
	return bson.D{{Key: field, Value: order}}
}

func positiveOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
