package product

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"orvea_back_end/internal/database"
	"orvea_back_end/internal/models"
	"orvea_back_end/internal/services"
	"orvea_back_end/internal/utils"
)

// SearchProducts cherche via Elasticsearch, avec fallback MongoDB si
// l'index est indisponible ou vide
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.BadRequest(c, "Paramètre 'q' manquant")
		return
	}

	// 1️⃣ Tentative Elasticsearch
	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		utils.Success(c, "Résultats de recherche", results)
		return
	}

	// 2️⃣ Fallback MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	re := bson.M{"$regex": query, "$options": "i"}
	filter := bson.M{
		"status": models.StatusActive,
		"$or": []bson.M{
			{"name": re},
			{"description": re},
			{"brand": re},
			{"tags": re},
		},
	}

	cursor, err := database.Products().Find(ctx, filter)
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de la recherche")
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		utils.ServerError(c, "Erreur serveur lors de la recherche")
		return
	}

	populateRefs(ctx, products)
	utils.Success(c, "Résultats de recherche", products)
}
