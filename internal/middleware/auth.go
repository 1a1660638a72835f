// Package middleware provides authentication, logging, and request middleware for the application.
package middleware

import (
	"strconv"
	"strings"

	"github.com/imaneboulahya/Miso/internal/cache"
	"github.com/imaneboulahya/Miso/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// parseToken validates a bearer token string and returns the user ID from the
// "sub" claim and the session ID from the "jti" claim.
func parseToken(tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	// User ID travels in the "sub" claim (subject claim per RFC 7519)
	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token subject")
	}

	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, "", fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	jti, _ := claims["jti"].(string)
	return uint(userIDVal), jti, nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthRequired is a middleware that enforces authentication for protected routes.
// When the session store is reachable the token's session must still exist there,
// so logged-out tokens are rejected even before they expire.
func AuthRequired(c *fiber.Ctx) error {
	tokenString, ok := bearerToken(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	userID, jti, err := parseToken(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if cache.SessionStoreAvailable() {
		session, found, serr := cache.GetSession(c.Context(), jti)
		if serr != nil || !found {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Session expired or logged out",
			})
		}
		c.Locals("username", session.Username)
	}

	c.Locals("userID", userID)
	c.Locals("sessionID", jti)

	return c.Next()
}

// OptionalAuth resolves the current user when a valid token is present but
// never rejects the request. Anonymous readers pass through with no userID set.
func OptionalAuth(c *fiber.Ctx) error {
	tokenString, ok := bearerToken(c)
	if !ok {
		return c.Next()
	}

	userID, jti, err := parseToken(tokenString)
	if err != nil {
		return c.Next()
	}

	if cache.SessionStoreAvailable() {
		session, found, serr := cache.GetSession(c.Context(), jti)
		if serr != nil || !found {
			return c.Next()
		}
		c.Locals("username", session.Username)
	}

	c.Locals("userID", userID)
	c.Locals("sessionID", jti)

	return c.Next()
}
