package wishlistController

import (
	"context"
	"errors"
	"time"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/models"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/responses"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/store"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	users   store.UserStore
	catalog store.CatalogStore
}

func NewHandler(users store.UserStore, catalog store.CatalogStore) *Handler {
	return &Handler{
		users:   users,
		catalog: catalog,
	}
}

type wishlistRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) GetWishlist(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, ok := h.currentUser(ctx, c)
	if !ok {
		return nil
	}

	// The wishlist is an id array with no referential integrity; products
	// deleted since they were saved are silently dropped from the view.
	items := make([]models.Product, 0, len(user.Wishlist))
	for _, id := range user.Wishlist {
		product, err := h.catalog.GetProduct(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrItemNotFound) {
				continue
			}
			return serverError(c, "Error fetching wishlist products")
		}
		items = append(items, *product)
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Wishlist fetched successfully",
		Result:  &fiber.Map{"wishlist": items},
	})
}

func (h *Handler) AddToWishlist(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request wishlistRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request")
	}

	productID, err := primitive.ObjectIDFromHex(request.ProductID)
	if err != nil {
		return badRequest(c, "Invalid product Id")
	}

	if _, err := h.catalog.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return notFound(c, "Product not found")
		}
		return serverError(c, "Error fetching product details")
	}

	user, ok := h.currentUser(ctx, c)
	if !ok {
		return nil
	}

	if err := h.users.AddToWishlist(ctx, user.Id, productID); err != nil {
		return serverError(c, "Error updating wishlist")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Product added to wishlist",
	})
}

func (h *Handler) RemoveFromWishlist(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request wishlistRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request")
	}

	productID, err := primitive.ObjectIDFromHex(request.ProductID)
	if err != nil {
		return badRequest(c, "Invalid product Id")
	}

	user, ok := h.currentUser(ctx, c)
	if !ok {
		return nil
	}

	if err := h.users.RemoveFromWishlist(ctx, user.Id, productID); err != nil {
		return serverError(c, "Error updating wishlist")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Product removed from wishlist",
	})
}

func (h *Handler) currentUser(ctx context.Context, c *fiber.Ctx) (*models.User, bool) {
	userId, idOk := c.Locals("userId").(string)
	if !idOk || userId == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
		})
		return nil, false
	}

	userObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user ID format",
		})
		return nil, false
	}

	user, err := h.users.GetUser(ctx, userObjectID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			_ = notFound(c, "User not found")
		} else {
			_ = serverError(c, "Error fetching user details")
		}
		return nil, false
	}
	return user, true
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
		Status:  fiber.StatusBadRequest,
		Message: message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
		Status:  fiber.StatusNotFound,
		Message: message,
	})
}

func serverError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
		Status:  fiber.StatusInternalServerError,
		Message: message,
	})
}
