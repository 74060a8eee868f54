package product

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"orvea_back_end/internal/cache"
	"orvea_back_end/internal/database"
	"orvea_back_end/internal/services"
	"orvea_back_end/internal/utils"
)

// UploadProductImage reçoit une image en multipart, l'envoie dans MinIO
// et ajoute son URL au produit (admin)
func UploadProductImage(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Produit introuvable")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.BadRequest(c, "Fichier 'image' manquant")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	url, err := services.UploadProductImage(ctx, file)
	if err != nil {
		log.Println("❌ Erreur upload image:", err)
		utils.ServerError(c, "Erreur serveur lors de l'upload de l'image")
		return
	}

	alt := c.PostForm("alt")
	res, err := database.Products().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$push": bson.M{"images": bson.M{"url": url, "alt": alt}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de la mise à jour du produit")
		return
	}
	if res.MatchedCount == 0 {
		utils.NotFound(c, "Produit introuvable")
		return
	}

	cache.InvalidateProducts(ctx)

	utils.Created(c, "Image ajoutée avec succès", gin.H{"url": url})
}
