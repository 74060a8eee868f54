package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"orvea_back_end/internal/cache"
	"orvea_back_end/internal/database"
	"orvea_back_end/internal/models"
	"orvea_back_end/internal/utils"
)

type orderItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type createOrderInput struct {
	Items           []orderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress models.Address   `json:"shipping_address" binding:"required"`
}

// CreateOrder crée une commande : les lignes sont revalidées contre le
// catalogue (prix et nom pris en base, jamais du client), le stock est
// décrémenté et le compteur de ventes incrémenté
func CreateOrder(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		utils.Unauthorized(c, "Utilisateur non authentifié")
		return
	}

	var input createOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, it := range input.Items {
		pid, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			utils.NotFound(c, "Produit introuvable: "+it.ProductID)
			return
		}

		var p models.Product
		if err := database.Products().FindOne(ctx, bson.M{"_id": pid}).Decode(&p); err != nil {
			utils.NotFound(c, "Produit introuvable: "+it.ProductID)
			return
		}

		if p.Status != models.StatusActive || p.Stock < it.Quantity {
			utils.BadRequest(c, "Stock insuffisant pour "+p.Name)
			return
		}

		price := p.Price
		if p.DiscountPrice != nil && *p.DiscountPrice > 0 {
			price = *p.DiscountPrice
		}

		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0].URL
		}

		items = append(items, models.OrderItem{
			ProductID: pid,
			Name:      p.Name,
			Quantity:  it.Quantity,
			Price:     price,
			Image:     image,
		})
	}

	now := time.Now()
	order := models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: input.ShippingAddress,
		ShippingPrice:   shippingPrice(items),
		Status:          models.OrderPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.ComputeTotals()

	if _, err := database.Orders().InsertOne(ctx, order); err != nil {
		log.Println("❌ Erreur création commande:", err)
		utils.ServerError(c, "Erreur serveur lors de la création de la commande")
		return
	}

	// Décrémente le stock et incrémente les ventes
	for _, it := range items {
		if _, err := database.Products().UpdateOne(ctx,
			bson.M{"_id": it.ProductID},
			bson.M{"$inc": bson.M{"stock": -it.Quantity, "sold": it.Quantity}},
		); err != nil {
			log.Println("⚠️ Erreur mise à jour stock:", err)
		}
	}
	cache.InvalidateProducts(ctx)

	// E-mail de confirmation, best-effort
	if email := c.GetString("email"); email != "" {
		go func(to string, o models.Order) {
			if err := utils.SendOrderConfirmation(to, o); err != nil {
				log.Println("⚠️ Erreur envoi e-mail de confirmation:", err)
			}
		}(email, order)
	}

	utils.Created(c, "Commande créée avec succès", order)
}

// Livraison offerte à partir de 50€, sinon forfait
func shippingPrice(items []models.OrderItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	if total >= 50 {
		return 0
	}
	return 4.99
}

// GetMyOrders liste les commandes de l'utilisateur connecté
func GetMyOrders(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		utils.Unauthorized(c, "Utilisateur non authentifié")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.Orders().Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de la récupération des commandes")
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.ServerError(c, "Erreur serveur lors de la récupération des commandes")
		return
	}

	utils.Success(c, "Commandes récupérées avec succès", orders)
}

// GetOrderByID retourne une commande. Un client ne voit que les siennes,
// un admin voit tout.
func GetOrderByID(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Commande introuvable")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	if c.GetString("role") != "admin" {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			utils.Unauthorized(c, "Utilisateur non authentifié")
			return
		}
		filter["user"] = userID
	}

	var order models.Order
	if err := database.Orders().FindOne(ctx, filter).Decode(&order); err != nil {
		utils.NotFound(c, "Commande introuvable")
		return
	}

	utils.Success(c, "Commande récupérée avec succès", order)
}

// GetAllOrders liste toutes les commandes avec pagination (admin)
func GetAllOrders(c *gin.Context) {
	page := positiveQuery(c.Query("page"), 1)
	limit := positiveQuery(c.Query("limit"), 20)

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	total, err := database.Orders().CountDocuments(ctx, filter)
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de la récupération des commandes")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	cursor, err := database.Orders().Find(ctx, filter, opts)
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de la récupération des commandes")
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.ServerError(c, "Erreur serveur lors de la récupération des commandes")
		return
	}

	pagination := utils.NewPagination(page, limit, total)
	utils.SuccessMeta(c, "Commandes récupérées avec succès", orders, utils.PaginationMeta(pagination))
}

type updateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus change le statut d'une commande (admin)
func UpdateOrderStatus(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Commande introuvable")
		return
	}

	var input updateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Données invalides: "+err.Error())
		return
	}
	if !models.ValidOrderStatus(input.Status) {
		utils.BadRequest(c, "Statut de commande invalide")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	res, err := database.Orders().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de la mise à jour de la commande")
		return
	}
	if res.MatchedCount == 0 {
		utils.NotFound(c, "Commande introuvable")
		return
	}

	var order models.Order
	if err := database.Orders().FindOne(ctx, bson.M{"_id": oid}).Decode(&order); err != nil && err != mongo.ErrNoDocuments {
		utils.ServerError(c, "Erreur serveur lors de la mise à jour de la commande")
		return
	}

	utils.Success(c, "Statut de la commande mis à jour", order)
}
