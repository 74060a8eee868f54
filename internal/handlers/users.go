package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"orvea_back_end/internal/database"
	"orvea_back_end/internal/models"
	"orvea_back_end/internal/utils"
)

// GetUsers liste les utilisateurs avec pagination (admin)
func GetUsers(c *gin.Context) {
	page := positiveQuery(c.Query("page"), 1)
	limit := positiveQuery(c.Query("limit"), 20)

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	total, err := database.Users().CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de la récupération des utilisateurs")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	cursor, err := database.Users().Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de la récupération des utilisateurs")
		return
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		utils.ServerError(c, "Erreur serveur lors de la récupération des utilisateurs")
		return
	}

	pagination := utils.NewPagination(page, limit, total)
	utils.SuccessMeta(c, "Utilisateurs récupérés avec succès", users, utils.PaginationMeta(pagination))
}

// GetUserByID retourne un utilisateur (admin)
func GetUserByID(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Utilisateur introuvable")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		utils.NotFound(c, "Utilisateur introuvable")
		return
	}

	utils.Success(c, "Utilisateur récupéré avec succès", user)
}

type updateUserInput struct {
	Name     string `json:"name"`
	Role     string `json:"role" binding:"omitempty,oneof=customer admin"`
	IsActive *bool  `json:"is_active"`
}

// UpdateUser modifie le rôle ou l'activation d'un compte (admin)
func UpdateUser(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Utilisateur introuvable")
		return
	}

	var input updateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Role != "" {
		set["role"] = input.Role
	}
	if input.IsActive != nil {
		set["is_active"] = *input.IsActive
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	res, err := database.Users().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de la mise à jour de l'utilisateur")
		return
	}
	if res.MatchedCount == 0 {
		utils.NotFound(c, "Utilisateur introuvable")
		return
	}

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		utils.ServerError(c, "Erreur serveur lors de la mise à jour de l'utilisateur")
		return
	}

	utils.Success(c, "Utilisateur mis à jour avec succès", user)
}

// DeleteUser supprime un compte (admin)
func DeleteUser(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Utilisateur introuvable")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	res, err := database.Users().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de la suppression de l'utilisateur")
		return
	}
	if res.DeletedCount == 0 {
		utils.NotFound(c, "Utilisateur introuvable")
		return
	}

	utils.Success(c, "Utilisateur supprimé avec succès", nil)
}
