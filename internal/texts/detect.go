package texts

import "strings"

// spanishKeywords is a crude first-contact heuristic. Detection is never
// authoritative: once a language is stored on the profile it wins.
var spanishKeywords = []string{
	"hola", "español", "ayuda", "gracias",
	"trabajo", "granja", "cosecha", "menú", "buenos", "buenas",
}

// Detect guesses the language of a first-contact message, defaulting to
// English when nothing matches.
func Detect(message string) string {
	lower := strings.ToLower(message)
	for _, keyword := range spanishKeywords {
		if strings.Contains(lower, keyword) {
			return "es"
		}
	}
	return "en"
}
