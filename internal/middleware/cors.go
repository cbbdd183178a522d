package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// NewCORS returns a CORS middleware for the browser frontend. corsOrigins is
// a comma-separated list of allowed origins; "*" allows all (development
// default). Credentials are required because the session rides a cookie.
func NewCORS(corsOrigins string) fiber.Handler {
	allowAll := corsOrigins == "" || corsOrigins == "*"

	origins := []string{"*"}
	if !allowAll {
		origins = strings.Split(corsOrigins, ",")
		for i, o := range origins {
			origins[i] = strings.TrimSpace(o)
		}
	}

	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodDelete,
			fiber.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
		// Cookies cannot cross a wildcard origin; only enable credentials
		// when origins are pinned.
		AllowCredentials: !allowAll,
		MaxAge:           86400,
	})
}
