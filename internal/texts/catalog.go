// Package texts resolves localized message templates for the dialogue.
// English is the baseline; other languages overlay it and fall back to
// English for any key they do not carry.
package texts

import "strings"

// Params substitutes {name} placeholders in a template.
type Params map[string]string

// Renderer resolves a message template for a language.
type Renderer interface {
	Render(key, lang string, params Params) string
}

// Catalog is the built-in Renderer backed by static string tables.
type Catalog struct {
	tables   map[string]map[string]string
	baseline string
}

// NewCatalog returns the catalog with the bundled English and Spanish
// tables.
func NewCatalog() *Catalog {
	return &Catalog{
		tables: map[string]map[string]string{
			"en": english,
			"es": spanish,
		},
		baseline: "en",
	}
}

// Render looks the key up in the requested language, falling back to the
// baseline, then to the key itself so a missing entry is at least visible.
func (c *Catalog) Render(key, lang string, params Params) string {
	text, ok := c.tables[lang][key]
	if !ok {
		text, ok = c.tables[c.baseline][key]
	}
	if !ok {
		return key
	}

	for name, value := range params {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}

// Languages lists the tags the catalog carries.
func (c *Catalog) Languages() []string {
	return []string{"en", "es"}
}
