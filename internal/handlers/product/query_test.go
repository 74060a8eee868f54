package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildCatalogQueryDefaults(t *testing.T) {
	q := BuildCatalogQuery(ListParams{})

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 12, q.Limit)
	assert.Equal(t, int64(0), q.Skip())

	// Sans statut explicite, seuls les produits actifs sont retournés
	assert.Equal(t, "active", q.Filter["status"])

	// Tri par défaut : plus récents d'abord
	require.Len(t, q.Sort, 1)
	assert.Equal(t, "created_at", q.Sort[0].Key)
	assert.Equal(t, -1, q.Sort[0].Value)
}

func TestBuildCatalogQueryPageLimit(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"valides", "3", "20", 3, 20},
		{"non numériques", "abc", "xyz", 1, 12},
		{"vides", "", "", 1, 12},
		{"zéro", "0", "0", 1, 12},
		{"négatifs", "-2", "-5", 1, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildCatalogQuery(ListParams{Page: tt.page, Limit: tt.limit})
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
		})
	}
}

func TestBuildCatalogQuerySkip(t *testing.T) {
	q := BuildCatalogQuery(ListParams{Page: "4", Limit: "10"})
	assert.Equal(t, int64(30), q.Skip())
}

func TestBuildCatalogQueryPriceRange(t *testing.T) {
	q := BuildCatalogQuery(ListParams{MinPrice: "10", MaxPrice: "50"})

	price, ok := q.Filter["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 10.0, price["$gte"])
	assert.Equal(t, 50.0, price["$lte"])
}

func TestBuildCatalogQueryPriceBoundAlone(t *testing.T) {
	q := BuildCatalogQuery(ListParams{MinPrice: "25.5"})

	price, ok := q.Filter["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 25.5, price["$gte"])
	_, hasMax := price["$lte"]
	assert.False(t, hasMax)
}

func TestBuildCatalogQueryPriceParseFailureIgnored(t *testing.T) {
	q := BuildCatalogQuery(ListParams{MinPrice: "pas-un-nombre", MaxPrice: "100"})

	price, ok := q.Filter["price"].(bson.M)
	require.True(t, ok)
	_, hasMin := price["$gte"]
	assert.False(t, hasMin)
	assert.Equal(t, 100.0, price["$lte"])

	// Les deux bornes illisibles : pas de filtre prix du tout
	q = BuildCatalogQuery(ListParams{MinPrice: "x", MaxPrice: "y"})
	_, hasPrice := q.Filter["price"]
	assert.False(t, hasPrice)
}

func TestBuildCatalogQueryStatus(t *testing.T) {
	q := BuildCatalogQuery(ListParams{Status: "inactive"})
	assert.Equal(t, "inactive", q.Filter["status"])
}

func TestBuildCatalogQueryCategory(t *testing.T) {
	oid := primitive.NewObjectID()
	q := BuildCatalogQuery(ListParams{Category: oid.Hex()})
	assert.Equal(t, oid, q.Filter["category"])

	// Id illisible : la valeur brute part telle quelle au store
	q = BuildCatalogQuery(ListParams{Category: "pas-un-objectid"})
	assert.Equal(t, "pas-un-objectid", q.Filter["category"])
}

func TestBuildCatalogQueryBrand(t *testing.T) {
	q := BuildCatalogQuery(ListParams{Brand: "Sony"})

	brand, ok := q.Filter["brand"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "Sony", brand["$regex"])
	assert.Equal(t, "i", brand["$options"])
}

func TestBuildCatalogQueryFeatured(t *testing.T) {
	q := BuildCatalogQuery(ListParams{Featured: "true"})
	assert.Equal(t, true, q.Filter["featured"])

	q = BuildCatalogQuery(ListParams{Featured: "false"})
	assert.Equal(t, false, q.Filter["featured"])

	q = BuildCatalogQuery(ListParams{})
	_, has := q.Filter["featured"]
	assert.False(t, has)
}

func TestBuildCatalogQuerySearch(t *testing.T) {
	q := BuildCatalogQuery(ListParams{Search: "casque"})

	or, ok := q.Filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)

	fields := []string{}
	for _, clause := range or {
		for field := range clause {
			fields = append(fields, field)
		}
	}
	assert.ElementsMatch(t, []string{"name", "description", "brand"}, fields)
}

func TestBuildCatalogQuerySort(t *testing.T) {
	q := BuildCatalogQuery(ListParams{Sort: "price"})
	require.Len(t, q.Sort, 1)
	assert.Equal(t, "price", q.Sort[0].Key)
	assert.Equal(t, 1, q.Sort[0].Value)

	q = BuildCatalogQuery(ListParams{Sort: "-price"})
	assert.Equal(t, "price", q.Sort[0].Key)
	assert.Equal(t, -1, q.Sort[0].Value)

	// Champ inconnu : passé tel quel, pas de validation côté builder
	q = BuildCatalogQuery(ListParams{Sort: "champ_inconnu"})
	assert.Equal(t, "champ_inconnu", q.Sort[0].Key)
}

func TestCatalogQueryFindOptions(t *testing.T) {
	q := BuildCatalogQuery(ListParams{Page: "2", Limit: "5", Sort: "-price"})
	opts := q.FindOptions()

	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(5), *opts.Skip)
	assert.Equal(t, int64(5), *opts.Limit)
}
