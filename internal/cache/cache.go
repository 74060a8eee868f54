package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"orvea_back_end/internal/database"
)

const (
	ProductListTTL   = 5 * time.Minute
	ProductDetailTTL = 10 * time.Minute
)

// GetJSON lit une valeur JSON du cache ; retourne false si absent ou illisible
func GetJSON(ctx context.Context, key string, dest any) bool {
	val, err := database.Redis.Get(ctx, key).Result()
	if err != nil || val == "" {
		return false
	}
	return json.Unmarshal([]byte(val), dest) == nil
}

// SetJSON écrit une valeur JSON dans le cache (best-effort)
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, key, data, ttl)
}

// InvalidateProducts supprime toutes les entrées de cache catalogue
// (listes + fiches produits) après une mutation
func InvalidateProducts(ctx context.Context) {
	for _, pattern := range []string{"products:list:*", "product:*"} {
		iter := database.Redis.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			database.Redis.Del(ctx, iter.Val())
		}
		if err := iter.Err(); err != nil {
			log.Println("⚠️ Erreur invalidation cache:", err)
		}
	}
}
