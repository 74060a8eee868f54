package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Casques Audio", "casques-audio"},
		{"  High-Tech  ", "high-tech"},
		{"Maison & Jardin", "maison-jardin"},
		{"TV 4K", "tv-4k"},
		{"déjà_un_slug", "dj-un-slug"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}
