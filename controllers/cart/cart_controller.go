package cartController

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

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) GetCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, ok := h.currentUser(ctx, c)
	if !ok {
		return nil
	}

	var total float64
	for _, item := range user.Cart {
		total += item.Price * float64(item.Quantity)
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Cart fetched successfully",
		Result: &fiber.Map{
			"cart":  user.Cart,
			"total": total,
		},
	})
}

func (h *Handler) AddToCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request cartItemRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request")
	}
	if request.Quantity <= 0 {
		request.Quantity = 1
	}

	productID, err := primitive.ObjectIDFromHex(request.ProductID)
	if err != nil {
		return badRequest(c, "Invalid product Id")
	}

	entry, err := h.catalog.Resolve(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return notFound(c, "Product not found")
		}
		return serverError(c, "Error fetching product details")
	}

	user, ok := h.currentUser(ctx, c)
	if !ok {
		return nil
	}

	user.Cart = addItem(user.Cart, entry, request.Quantity)

	if err := h.users.SaveCart(ctx, user.Id, user.Cart); err != nil {
		return serverError(c, "Error updating cart")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Product added to cart",
		Result:  &fiber.Map{"cart": user.Cart},
	})
}

func (h *Handler) DecrementFromCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request cartItemRequest
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

	found := false
	for i := range user.Cart {
		if user.Cart[i].ProductID != productID {
			continue
		}
		found = true
		user.Cart[i].Quantity--
		if user.Cart[i].Quantity <= 0 {
			user.Cart = append(user.Cart[:i], user.Cart[i+1:]...)
		}
		break
	}
	if !found {
		return notFound(c, "Product not in cart")
	}

	if err := h.users.SaveCart(ctx, user.Id, user.Cart); err != nil {
		return serverError(c, "Error updating cart")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Cart updated",
		Result:  &fiber.Map{"cart": user.Cart},
	})
}

func (h *Handler) RemoveFromCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request cartItemRequest
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

	found := false
	for i := range user.Cart {
		if user.Cart[i].ProductID == productID {
			user.Cart = append(user.Cart[:i], user.Cart[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return notFound(c, "Product not in cart")
	}

	if err := h.users.SaveCart(ctx, user.Id, user.Cart); err != nil {
		return serverError(c, "Error updating cart")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Product removed from cart",
		Result:  &fiber.Map{"cart": user.Cart},
	})
}

type mergeCartRequest struct {
	Items []cartItemRequest `json:"items"`
}

// MergeCart folds a locally kept guest cart into the server cart after
// login. Quantities for the same product add up; unknown products are
// skipped rather than failing the whole merge.
func (h *Handler) MergeCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request mergeCartRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request")
	}

	user, ok := h.currentUser(ctx, c)
	if !ok {
		return nil
	}

	for _, item := range request.Items {
		if item.Quantity <= 0 {
			continue
		}
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			continue
		}
		entry, err := h.catalog.Resolve(ctx, productID)
		if err != nil {
			continue
		}
		user.Cart = addItem(user.Cart, entry, item.Quantity)
	}

	if err := h.users.SaveCart(ctx, user.Id, user.Cart); err != nil {
		return serverError(c, "Error updating cart")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Cart merged successfully",
		Result:  &fiber.Map{"cart": user.Cart},
	})
}

func addItem(cart []models.CartItem, entry *store.CatalogItem, quantity int) []models.CartItem {
	for i := range cart {
		if cart[i].ProductID == entry.ID {
			cart[i].Quantity += quantity
			return cart
		}
	}
	return append(cart, models.CartItem{
		ProductID: entry.ID,
		Name:      entry.Name,
		Price:     entry.Price,
		Image:     entry.Image,
		Quantity:  quantity,
	})
}

// currentUser loads the authenticated user's document. On failure it writes
// the error response and reports ok=false; the handler should return nil.
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
