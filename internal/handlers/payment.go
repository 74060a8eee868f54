package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/webhook"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"orvea_back_end/internal/database"
	"orvea_back_end/internal/models"
	"orvea_back_end/internal/utils"
)

// CreatePaymentIntent crée un PaymentIntent Stripe pour une commande
// en attente de paiement. Le montant vient de la commande, jamais du client.
func CreatePaymentIntent(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Commande introuvable")
		return
	}

	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		utils.Unauthorized(c, "Utilisateur non authentifié")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	var order models.Order
	if err := database.Orders().FindOne(ctx, bson.M{"_id": oid, "user": userID}).Decode(&order); err != nil {
		utils.NotFound(c, "Commande introuvable")
		return
	}

	if order.IsPaid {
		utils.BadRequest(c, "Cette commande est déjà payée")
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(order.TotalPrice * 100)),
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"order_id": order.ID.Hex(),
			"user_id":  userID.Hex(),
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Println("❌ Erreur Stripe:", err)
		utils.ServerError(c, "Erreur serveur lors de la création du paiement")
		return
	}

	database.Orders().UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"stripe_id": intent.ID, "updated_at": time.Now()}})

	log.Printf("💳 PaymentIntent créé : %s (%.2f€) pour la commande %s", intent.ID, order.TotalPrice, order.ID.Hex())

	utils.Success(c, "Paiement initialisé", gin.H{
		"clientSecret": intent.ClientSecret,
		"paymentId":    intent.ID,
	})
}

// StripeWebhook reçoit les événements Stripe et marque la commande payée
func StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		utils.BadRequest(c, "Échec lecture body")
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ Pas de STRIPE_WEBHOOK_SECRET — mode test")
		if err := json.Unmarshal(payload, &event); err != nil {
			utils.BadRequest(c, "JSON invalide")
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Signature webhook invalide:", err)
			utils.BadRequest(c, "Signature invalide")
			return
		}
	}

	if event.Type == "payment_intent.succeeded" {
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			utils.BadRequest(c, "Événement illisible")
			return
		}

		orderID, err := primitive.ObjectIDFromHex(intent.Metadata["order_id"])
		if err != nil {
			utils.BadRequest(c, "order_id manquant dans les metadata")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
		defer cancel()

		now := time.Now()
		_, err = database.Orders().UpdateOne(ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{
				"is_paid":    true,
				"paid_at":    now,
				"status":     models.OrderProcessing,
				"updated_at": now,
			}},
		)
		if err != nil {
			log.Println("❌ Erreur mise à jour commande payée:", err)
			utils.ServerError(c, "Erreur serveur")
			return
		}

		log.Printf("✅ Commande %s marquée payée (%s)", orderID.Hex(), intent.ID)
	}

	utils.Success(c, "Événement traité", nil)
}
