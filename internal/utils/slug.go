package utils

import "strings"

// Slugify transforme un nom en slug URL : minuscules, tirets,
// caractères non alphanumériques supprimés
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // évite un tiret en tête

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '-' || r == '_':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
