package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		total    int64
		pages    int
		hasNext  bool
		hasPrev  bool
	}{
		{"première page pleine", 1, 12, 40, 4, true, false},
		{"page du milieu", 2, 12, 40, 4, true, true},
		{"dernière page", 4, 12, 40, 4, false, true},
		{"total exact", 2, 10, 20, 2, false, true},
		{"aucun résultat", 1, 12, 0, 0, false, false},
		{"page au-delà du total", 5, 12, 40, 4, false, true},
		{"un seul élément", 1, 12, 1, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, p.Current)
			assert.Equal(t, tt.pages, p.Pages)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
		})
	}
}

// pages == ceil(total/limit) pour un échantillon de fenêtres
func TestNewPaginationCeil(t *testing.T) {
	assert.Equal(t, 1, NewPagination(1, 12, 1).Pages)
	assert.Equal(t, 1, NewPagination(1, 12, 12).Pages)
	assert.Equal(t, 2, NewPagination(1, 12, 13).Pages)
	assert.Equal(t, 9, NewPagination(1, 12, 100).Pages)
}

func TestPaginationMeta(t *testing.T) {
	meta := PaginationMeta(NewPagination(1, 12, 24))
	p, ok := meta["pagination"].(Pagination)
	assert.True(t, ok)
	assert.Equal(t, 2, p.Pages)
}
