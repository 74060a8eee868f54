package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"orvea_back_end/internal/config"
	"orvea_back_end/internal/database"
	"orvea_back_end/internal/models"
	"orvea_back_end/internal/utils"
)

const authTimeout = 10 * time.Second

// cookie httpOnly valable 30 jours, aligné sur l'expiration du JWT
func setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", token, 30*24*3600, "/", "", config.IsProduction(), true)
}

type registerInput struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register crée un compte. Un email déjà utilisé est un bad request.
func Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	// Vérifie si l'email existe déjà
	err := database.Users().FindOne(ctx, bson.M{"email": input.Email}).Err()
	if err == nil {
		utils.BadRequest(c, "Un compte avec cet email existe déjà")
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.ServerError(c, "Erreur serveur lors de l'inscription")
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de l'inscription")
		return
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashed,
		Role:      "customer",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := database.Users().InsertOne(ctx, user); err != nil {
		log.Println("❌ Erreur création utilisateur:", err)
		utils.ServerError(c, "Erreur serveur lors de l'inscription")
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de l'inscription")
		return
	}
	setTokenCookie(c, token)

	utils.Created(c, "Inscription réussie", gin.H{
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"token": token,
	})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authentifie par email/mot de passe et renvoie un JWT
func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		utils.Unauthorized(c, "Email ou mot de passe incorrect")
		return
	}

	if !utils.VerifyPassword(input.Password, user.Password) {
		utils.Unauthorized(c, "Email ou mot de passe incorrect")
		return
	}

	if !user.IsActive {
		utils.Unauthorized(c, "Ce compte est désactivé")
		return
	}

	// Met à jour la date de dernière connexion
	now := time.Now()
	database.Users().UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{"last_login": now}})

	token, err := utils.GenerateJWT(user)
	if err != nil {
		utils.ServerError(c, "Erreur serveur lors de la connexion")
		return
	}
	setTokenCookie(c, token)

	utils.Success(c, "Connexion réussie", gin.H{
		"id":     user.ID.Hex(),
		"name":   user.Name,
		"email":  user.Email,
		"role":   user.Role,
		"avatar": user.Avatar,
		"token":  token,
	})
}

// Logout efface le cookie de session
func Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", config.IsProduction(), true)
	utils.Success(c, "Déconnexion réussie", nil)
}

// GetProfile retourne le profil de l'utilisateur connecté
func GetProfile(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		utils.Unauthorized(c, "Utilisateur non authentifié")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		utils.NotFound(c, "Utilisateur introuvable")
		return
	}

	utils.Success(c, "Profil récupéré avec succès", user)
}

type updateProfileInput struct {
	Name     string          `json:"name"`
	Email    string          `json:"email" binding:"omitempty,email"`
	Phone    string          `json:"phone"`
	Avatar   string          `json:"avatar"`
	Address  *models.Address `json:"address"`
	Password string          `json:"password" binding:"omitempty,min=6"`
}

// UpdateProfile met à jour partiellement le profil : seuls les champs
// fournis écrasent l'existant, l'adresse est fusionnée champ par champ
func UpdateProfile(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		utils.Unauthorized(c, "Utilisateur non authentifié")
		return
	}

	var input updateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		utils.NotFound(c, "Utilisateur introuvable")
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	if input.Address != nil {
		if input.Address.Street != "" {
			user.Address.Street = input.Address.Street
		}
		if input.Address.City != "" {
			user.Address.City = input.Address.City
		}
		if input.Address.Zip != "" {
			user.Address.Zip = input.Address.Zip
		}
		if input.Address.Country != "" {
			user.Address.Country = input.Address.Country
		}
	}
	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			utils.ServerError(c, "Erreur serveur lors de la mise à jour du profil")
			return
		}
		user.Password = hashed
	}
	user.UpdatedAt = time.Now()

	if _, err := database.Users().ReplaceOne(ctx, bson.M{"_id": oid}, user); err != nil {
		log.Println("❌ Erreur mise à jour profil:", err)
		utils.ServerError(c, "Erreur serveur lors de la mise à jour du profil")
		return
	}

	utils.Success(c, "Profil mis à jour avec succès", user)
}
