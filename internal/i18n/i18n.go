// Package i18n holds the English and Portuguese message catalogs.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported UI language, stored by name.
type Language string

const (
	English    Language = "english"
	Portuguese Language = "portuguese"
)

// Default is used until the user picks a language.
const Default = Portuguese

//go:embed locales/*.json
var localeFS embed.FS

var (
	catalogs = map[Language]Catalog{
		English:    mustLoad(English, "locales/en.json"),
		Portuguese: mustLoad(Portuguese, "locales/pt.json"),
	}
	supported = []language.Tag{language.English, language.BrazilianPortuguese}
	byTag     = []Language{English, Portuguese}
	matcher   = language.NewMatcher(supported)
)

// Catalog translates message keys for one language.
type Catalog struct {
	lang     Language
	messages map[string]string
}

func mustLoad(lang Language, path string) Catalog {
	data, err := localeFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("i18n: read %s: %v", path, err))
	}
	messages := map[string]string{}
	if err := json.Unmarshal(data, &messages); err != nil {
		panic(fmt.Sprintf("i18n: parse %s: %v", path, err))
	}
	return Catalog{lang: lang, messages: messages}
}

// Lookup returns the catalog for lang. Unknown languages get English and ok=false.
func Lookup(lang Language) (Catalog, bool) {
	c, ok := catalogs[lang]
	if !ok {
		return catalogs[English], false
	}
	return c, true
}

// MustLookup is Lookup without the ok flag.
func MustLookup(lang Language) Catalog {
	c, _ := Lookup(lang)
	return c
}

// Match maps a stored name ("english", "portuguese") or a BCP 47 tag
// ("pt-BR", "en_US") to a supported language.
func Match(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	if _, ok := catalogs[Language(s)]; ok {
		return Language(s), true
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return "", false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return byTag[idx], true
}

// Other returns the language a toggle switches to.
func (l Language) Other() Language {
	if l == English {
		return Portuguese
	}
	return English
}

// Language returns the catalog's language.
func (c Catalog) Language() Language { return c.lang }

// T translates key, falling back to the key itself.
func (c Catalog) T(key string) string {
	if msg, ok := c.messages[key]; ok {
		return msg
	}
	return key
}

// Has reports whether key is translated.
func (c Catalog) Has(key string) bool {
	_, ok := c.messages[key]
	return ok
}

// Format translates key and substitutes %{name} placeholders.
func (c Catalog) Format(key string, args map[string]string) string {
	msg := c.T(key)
	for k, v := range args {
		msg = strings.ReplaceAll(msg, "%{"+k+"}", v)
	}
	return msg
}

// Count translates key and substitutes %{count}.
func (c Catalog) Count(key string, n int) string {
	return c.Format(key, map[string]string{"count": strconv.Itoa(n)})
}

// Keys returns every translated key.
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c.messages))
	for k := range c.messages {
		keys = append(keys, k)
	}
	return keys
}
