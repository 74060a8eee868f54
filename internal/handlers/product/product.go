package product

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"orvea_back_end/internal/cache"
	"orvea_back_end/internal/database"
	"orvea_back_end/internal/models"
	"orvea_back_end/internal/services"
	"orvea_back_end/internal/utils"
)

const requestTimeout = 10 * time.Second

// cachedList est l'entrée de cache Redis d'une page de catalogue
type cachedList struct {
	Products   []models.Product `json:"products"`
	Pagination utils.Pagination `json:"pagination"`
}

// GetProducts liste le catalogue avec filtres, tri et pagination.
// Un count + un find, résultats enrichis (catégorie et créateur résolus).
func GetProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	cacheKey := "products:list:" + c.Request.URL.RawQuery
	var cached cachedList
	if cache.GetJSON(ctx, cacheKey, &cached) {
		utils.SuccessMeta(c, "Produits récupérés avec succès", cached.Products, utils.PaginationMeta(cached.Pagination))
		return
	}

	q := BuildCatalogQuery(ListParams{
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Featured: c.Query("featured"),
		Status:   c.Query("status"),
		MinPrice: c.Query("minPrice"),
		MaxPrice: c.Query("maxPrice"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	})

	total, err := database.Products().CountDocuments(ctx, q.Filter)
	if err != nil {
		log.Println("❌ Erreur count produits:", err)
		utils.ServerError(c, "Erreur serveur lors de la récupération des produits")
		return
	}

	cursor, err := database.Products().Find(ctx, q.Filter, q.FindOptions())
	if err != nil {
		log.Println("❌ Erreur find produits:", err)
		utils.ServerError(c, "Erreur serveur lors de la récupération des produits")
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		log.Println("❌ Erreur décodage produits:", err)
		utils.ServerError(c, "Erreur serveur lors de la récupération des produits")
		return
	}

	populateRefs(ctx, products)

	pagination := utils.NewPagination(q.Page, q.Limit, total)
	cache.SetJSON(ctx, cacheKey, cachedList{Products: products, Pagination: pagination}, cache.ProductListTTL)

	utils.SuccessMeta(c, "Produits récupérés avec succès", products, utils.PaginationMeta(pagination))
}

// GetProductByID retourne un produit avec ses avis et ses références résolues
func GetProductByID(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Produit introuvable")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	cacheKey := "product:" + oid.Hex()
	var p models.Product
	if !cache.GetJSON(ctx, cacheKey, &p) {
		if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
			if err == mongo.ErrNoDocuments {
				utils.NotFound(c, "Produit introuvable")
				return
			}
			log.Println("❌ Erreur lecture produit:", err)
			utils.ServerError(c, "Erreur serveur lors de la récupération du produit")
			return
		}
		cache.SetJSON(ctx, cacheKey, p, cache.ProductDetailTTL)
	}

	products := []models.Product{p}
	populateRefs(ctx, products)

	utils.Success(c, "Produit récupéré avec succès", products[0])
}

type createProductInput struct {
	Name          string                 `json:"name" binding:"required,min=2,max=100"`
	Description   string                 `json:"description" binding:"required,min=10,max=2000"`
	Price         float64                `json:"price" binding:"required,gte=0"`
	DiscountPrice *float64               `json:"discount_price"`
	Images        []models.ProductImage  `json:"images"`
	Category      string                 `json:"category" binding:"required"`
	Brand         string                 `json:"brand" binding:"required"`
	Stock         int                    `json:"stock" binding:"gte=0"`
	Specs         []models.Specification `json:"specifications"`
	Tags          []string               `json:"tags"`
	Featured      bool                   `json:"featured"`
}

// CreateProduct crée un produit (admin). La catégorie référencée doit exister.
func CreateProduct(c *gin.Context) {
	var input createProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(input.Category)
	if err != nil {
		utils.BadRequest(c, "Le champ 'category' est invalide")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	// Vérifie que la catégorie existe
	if err := database.Categories().FindOne(ctx, bson.M{"_id": categoryID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.NotFound(c, "Catégorie introuvable")
			return
		}
		utils.ServerError(c, "Erreur serveur lors de la vérification de la catégorie")
		return
	}

	creatorID, _ := primitive.ObjectIDFromHex(c.GetString("user_id"))
	now := time.Now()

	p := models.Product{
		ID:            primitive.NewObjectID(),
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		Images:        input.Images,
		CategoryID:    categoryID,
		Brand:         input.Brand,
		Stock:         input.Stock,
		Reviews:       []models.Review{},
		Specs:         input.Specs,
		Tags:          input.Tags,
		Featured:      input.Featured,
		Status:        models.StatusActive,
		CreatedBy:     creatorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := database.Products().InsertOne(ctx, p); err != nil {
		log.Println("❌ Erreur création produit:", err)
		utils.ServerError(c, "Erreur serveur lors de la création du produit")
		return
	}

	// 🔄 Indexation Elasticsearch + invalidation du cache catalogue
	go services.IndexProduct(p)
	cache.InvalidateProducts(ctx)

	utils.Created(c, "Produit créé avec succès", p)
}

type updateProductInput struct {
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Price         *float64               `json:"price"`
	DiscountPrice *float64               `json:"discount_price"`
	Images        []models.ProductImage  `json:"images"`
	Category      string                 `json:"category"`
	Brand         string                 `json:"brand"`
	Stock         *int                   `json:"stock"`
	Specs         []models.Specification `json:"specifications"`
	Tags          []string               `json:"tags"`
	Featured      *bool                  `json:"featured"`
	Status        *string                `json:"status"`
}

// UpdateProduct remplace partiellement un produit (admin) : seuls les
// champs fournis écrasent l'existant. Le stock et les flags passent par
// des pointeurs pour distinguer "absent" de "zéro".
func UpdateProduct(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Produit introuvable")
		return
	}

	var input updateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var p models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.NotFound(c, "Produit introuvable")
			return
		}
		utils.ServerError(c, "Erreur serveur lors de la récupération du produit")
		return
	}

	if input.Name != "" {
		p.Name = input.Name
	}
	if input.Description != "" {
		p.Description = input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.DiscountPrice != nil {
		p.DiscountPrice = input.DiscountPrice
	}
	if input.Images != nil {
		p.Images = input.Images
	}
	if input.Category != "" {
		categoryID, err := primitive.ObjectIDFromHex(input.Category)
		if err != nil {
			utils.BadRequest(c, "Le champ 'category' est invalide")
			return
		}
		if err := database.Categories().FindOne(ctx, bson.M{"_id": categoryID}).Err(); err != nil {
			utils.NotFound(c, "Catégorie introuvable")
			return
		}
		p.CategoryID = categoryID
	}
	if input.Brand != "" {
		p.Brand = input.Brand
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.Specs != nil {
		p.Specs = input.Specs
	}
	if input.Tags != nil {
		p.Tags = input.Tags
	}
	if input.Featured != nil {
		p.Featured = *input.Featured
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			utils.BadRequest(c, "Statut invalide")
			return
		}
		p.Status = *input.Status
	}
	p.UpdatedAt = time.Now()

	if _, err := database.Products().ReplaceOne(ctx, bson.M{"_id": oid}, p); err != nil {
		log.Println("❌ Erreur mise à jour produit:", err)
		utils.ServerError(c, "Erreur serveur lors de la mise à jour du produit")
		return
	}

	go services.IndexProduct(p)
	cache.InvalidateProducts(ctx)

	utils.Success(c, "Produit mis à jour avec succès", p)
}

// DeleteProduct supprime un produit (admin). Aucune cascade sur les
// commandes passées.
func DeleteProduct(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Produit introuvable")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	res, err := database.Products().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		log.Println("❌ Erreur suppression produit:", err)
		utils.ServerError(c, "Erreur serveur lors de la suppression du produit")
		return
	}
	if res.DeletedCount == 0 {
		utils.NotFound(c, "Produit introuvable")
		return
	}

	go services.RemoveProduct(oid.Hex())
	cache.InvalidateProducts(ctx)

	utils.Success(c, "Produit supprimé avec succès", nil)
}

// populateRefs résout les références catégorie et créateur en résumés
// (deux requêtes $in, pas de N+1)
func populateRefs(ctx context.Context, products []models.Product) {
	if len(products) == 0 {
		return
	}

	catIDs := make([]primitive.ObjectID, 0, len(products))
	userIDs := make([]primitive.ObjectID, 0, len(products))
	for _, p := range products {
		catIDs = append(catIDs, p.CategoryID)
		if !p.CreatedBy.IsZero() {
			userIDs = append(userIDs, p.CreatedBy)
		}
	}

	categories := map[primitive.ObjectID]models.CategoryRef{}
	if cursor, err := database.Categories().Find(ctx, bson.M{"_id": bson.M{"$in": catIDs}}); err == nil {
		var refs []models.CategoryRef
		if err := cursor.All(ctx, &refs); err == nil {
			for _, ref := range refs {
				categories[ref.ID] = ref
			}
		}
	}

	users := map[primitive.ObjectID]models.UserRef{}
	if len(userIDs) > 0 {
		if cursor, err := database.Users().Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}}); err == nil {
			var refs []models.UserRef
			if err := cursor.All(ctx, &refs); err == nil {
				for _, ref := range refs {
					users[ref.ID] = ref
				}
			}
		}
	}

	for i := range products {
		if ref, ok := categories[products[i].CategoryID]; ok {
			products[i].Category = &models.CategoryRef{ID: ref.ID, Name: ref.Name, Slug: ref.Slug}
		}
		if ref, ok := users[products[i].CreatedBy]; ok {
			products[i].Creator = &models.UserRef{ID: ref.ID, Name: ref.Name}
		}
	}
}
