package middleware

import "github.com/gin-gonic/gin"

const (
	languageHeader = "Language"

	// LanguageKey is the gin context key the resolved language is stored under.
	LanguageKey = "language"

	defaultLanguage = "es"
)

// LanguageMiddleware resolves the partner's Language header, defaulting to
// Spanish. Unknown values fall back to the default rather than erroring.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader(languageHeader)
		switch lang {
		case "es", "en":
		default:
			lang = defaultLanguage
		}
		c.Set(LanguageKey, lang)
		c.Next()
	}
}
