package request

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Form returns request body fields.
// Both urlencoded and multipart bodies are accepted.
func Form(c *fiber.Ctx) (url.Values, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		mf, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		return url.Values(mf.Value), nil
	}

	return url.ParseQuery(string(c.Body()))
}

// Param returns unescaped path parameter.
func Param(c *fiber.Ctx, key string) (string, error) {
	return url.PathUnescape(c.Params(key))
}

// Error sends JSON error with given status.
func Error(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}
