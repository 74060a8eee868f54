package handlers

import "strconv"

// positiveQuery parse un paramètre numérique de pagination,
// avec fallback sur la valeur par défaut
func positiveQuery(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
