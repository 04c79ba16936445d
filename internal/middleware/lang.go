package middleware

import (
	"strings"

	"github.com/haierkeys/product-note-service/pkg/app"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// LangWithTranslator 创建带翻译器的语言中间件（支持依赖注入）
// The language is read from the "lang" query parameter first, then the "lang" header.
// Messages are localized per request, the global default language is left untouched.
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {

	return func(c *gin.Context) {

		var lang string

		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		}

		lang = strings.ToLower(strings.ReplaceAll(lang, "-", "_"))

		trans, found := uni.GetTranslator(translatorLocale(lang))

		if found {
			c.Set("trans", trans)
		} else {
			trans, _ := uni.GetTranslator("en")
			c.Set("trans", trans)
		}

		if lang != "" {
			c.Set(app.LangKey, lang)
		}

		c.Next()
	}
}

// translatorLocale maps message languages to locales registered on the translator
func translatorLocale(lang string) string {
	if strings.HasPrefix(lang, "zh") {
		return "zh"
	}
	return lang
}
