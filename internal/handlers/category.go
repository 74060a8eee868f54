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

	"orvea_back_end/internal/database"
	"orvea_back_end/internal/models"
	"orvea_back_end/internal/utils"
)

// GetCategories liste les catégories actives, triées par nom
func GetCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := database.Categories().Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de la récupération des catégories")
		return
	}

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		utils.ServerError(c, "Erreur serveur lors de la récupération des catégories")
		return
	}

	utils.Success(c, "Catégories récupérées avec succès", categories)
}

// GetCategoryByID retourne une catégorie par id
func GetCategoryByID(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Catégorie introuvable")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	var category models.Category
	if err := database.Categories().FindOne(ctx, bson.M{"_id": oid}).Decode(&category); err != nil {
		utils.NotFound(c, "Catégorie introuvable")
		return
	}

	utils.Success(c, "Catégorie récupérée avec succès", category)
}

type categoryInput struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"max=500"`
	ImageURL    string `json:"image_url"`
}

// CreateCategory crée une catégorie (admin), slug dérivé du nom
func CreateCategory(c *gin.Context) {
	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	slug := utils.Slugify(input.Name)

	// Pas deux catégories avec le même slug
	err := database.Categories().FindOne(ctx, bson.M{"slug": slug}).Err()
	if err == nil {
		utils.BadRequest(c, "Une catégorie avec ce nom existe déjà")
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.ServerError(c, "Erreur serveur lors de la création de la catégorie")
		return
	}

	now := time.Now()
	category := models.Category{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := database.Categories().InsertOne(ctx, category); err != nil {
		log.Println("❌ Erreur création catégorie:", err)
		utils.ServerError(c, "Erreur serveur lors de la création de la catégorie")
		return
	}

	utils.Created(c, "Catégorie créée avec succès", category)
}

type updateCategoryInput struct {
	Name        string `json:"name" binding:"omitempty,min=2,max=50"`
	Description string `json:"description" binding:"max=500"`
	ImageURL    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateCategory met à jour partiellement une catégorie (admin).
// Renommer régénère le slug.
func UpdateCategory(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Catégorie introuvable")
		return
	}

	var input updateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	var category models.Category
	if err := database.Categories().FindOne(ctx, bson.M{"_id": oid}).Decode(&category); err != nil {
		utils.NotFound(c, "Catégorie introuvable")
		return
	}

	if input.Name != "" {
		category.Name = input.Name
		category.Slug = utils.Slugify(input.Name)
	}
	if input.Description != "" {
		category.Description = input.Description
	}
	if input.ImageURL != "" {
		category.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	category.UpdatedAt = time.Now()

	if _, err := database.Categories().ReplaceOne(ctx, bson.M{"_id": oid}, category); err != nil {
		utils.ServerError(c, "Erreur serveur lors de la mise à jour de la catégorie")
		return
	}

	utils.Success(c, "Catégorie mise à jour avec succès", category)
}

// DeleteCategory supprime une catégorie (admin)
func DeleteCategory(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Catégorie introuvable")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	res, err := database.Categories().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de la suppression de la catégorie")
		return
	}
	if res.DeletedCount == 0 {
		utils.NotFound(c, "Catégorie introuvable")
		return
	}

	utils.Success(c, "Catégorie supprimée avec succès", nil)
}
