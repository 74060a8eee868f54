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

type createReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,min=10,max=500"`
}

// CreateReview ajoute un avis sur un produit. Un seul avis par
// utilisateur et par produit : un doublon est rejeté, jamais fusionné.
// Le document produit complet (avis + agrégats recalculés) est persisté
// en une seule écriture.
func CreateReview(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Produit introuvable")
		return
	}

	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		utils.Unauthorized(c, "Utilisateur non authentifié")
		return
	}

	var input createReviewInput
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

	if p.HasReviewFrom(userID) {
		utils.BadRequest(c, "Vous avez déjà laissé un avis sur ce produit")
		return
	}

	p.AddReview(models.Review{
		UserID:    userID,
		Name:      c.GetString("name"),
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	})
	p.UpdatedAt = time.Now()

	if _, err := database.Products().ReplaceOne(ctx, bson.M{"_id": oid}, p); err != nil {
		log.Println("❌ Erreur création avis:", err)
		utils.ServerError(c, "Erreur serveur lors de la création de l'avis")
		return
	}

	go services.IndexProduct(p)
	cache.InvalidateProducts(ctx)

	utils.Created(c, "Avis ajouté avec succès", nil)
}
