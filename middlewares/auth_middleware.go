package middlewares

import (
	"strings"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/configs"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/models"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/responses"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// AuthMiddleware resolves the bearer token to a user id and role, stored in
// Locals for the handlers behind it.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "No auth token, access denied",
		})
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid authorization header format",
		})
	}

	claims := &jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(bearerToken[1], claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.EnvJwtSecret()), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Token verification failed, access denied",
		})
	}

	userId, ok := (*claims)["id"].(string)
	if !ok || userId == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
		})
	}

	role, _ := (*claims)["role"].(string)

	c.Locals("userId", userId)
	c.Locals("role", role)

	return c.Next()
}

// RequireAdmin sits behind AuthMiddleware on admin routes.
func RequireAdmin(c *fiber.Ctx) error {
	if role, _ := c.Locals("role").(string); role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(responses.UserResponse{
			Status:  fiber.StatusForbidden,
			Message: "Admin access required",
		})
	}
	return c.Next()
}

// RequireFarmer gates seller-facing catalog writes. Admins pass too.
func RequireFarmer(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	if role != models.RoleFarmer && role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(responses.UserResponse{
			Status:  fiber.StatusForbidden,
			Message: "Farmer access required",
		})
	}
	return c.Next()
}
