package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// requestLanguage picks the language for AI-generated content from the
// lang query parameter, then the Accept-Language header. Defaults to "en".
func requestLanguage(ctx *fiber.Ctx) string {
	if lang := ctx.Query("lang"); lang != "" {
		return lang
	}

	header := ctx.Get(fiber.HeaderAcceptLanguage)
	if header == "" {
		return "en"
	}
	code := header
	if idx := strings.IndexAny(code, ",;"); idx >= 0 {
		code = code[:idx]
	}
	if idx := strings.Index(code, "-"); idx >= 0 {
		code = code[:idx]
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return "en"
	}
	return code
}
