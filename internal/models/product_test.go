package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddReviewRecomputesAggregates(t *testing.T) {
	p := Product{}

	p.AddReview(Review{UserID: primitive.NewObjectID(), Rating: 4})
	p.AddReview(Review{UserID: primitive.NewObjectID(), Rating: 2})

	assert.Equal(t, 2, p.NumOfReviews)
	assert.Equal(t, 3.0, p.Ratings)

	p.AddReview(Review{UserID: primitive.NewObjectID(), Rating: 5})

	assert.Equal(t, 3, p.NumOfReviews)
	assert.InDelta(t, 11.0/3.0, p.Ratings, 1e-9)
	assert.Len(t, p.Reviews, p.NumOfReviews)
}

func TestHasReviewFrom(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	p := Product{}
	p.AddReview(Review{UserID: alice, Rating: 5})

	assert.True(t, p.HasReviewFrom(alice))
	assert.False(t, p.HasReviewFrom(bob))
}

// Un doublon refusé ne doit pas toucher les agrégats : le handler
// vérifie HasReviewFrom avant AddReview
func TestDuplicateCheckLeavesAggregatesUntouched(t *testing.T) {
	alice := primitive.NewObjectID()

	p := Product{}
	p.AddReview(Review{UserID: alice, Rating: 4})

	before := p.Ratings
	beforeCount := p.NumOfReviews

	if !p.HasReviewFrom(alice) {
		p.AddReview(Review{UserID: alice, Rating: 1})
	}

	assert.Equal(t, before, p.Ratings)
	assert.Equal(t, beforeCount, p.NumOfReviews)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusActive))
	assert.True(t, ValidStatus(StatusInactive))
	assert.True(t, ValidStatus(StatusOutOfStock))
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}
