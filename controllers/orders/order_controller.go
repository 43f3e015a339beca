package orderController

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/responses"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/services/orders"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/store"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	service *orders.Service
	users   store.UserStore
}

func NewHandler(service *orders.Service, users store.UserStore) *Handler {
	return &Handler{
		service: service,
		users:   users,
	}
}

func (h *Handler) PlaceOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req orders.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request format")
	}

	order, err := h.service.PlaceOrder(ctx, req)
	if err != nil {
		return orderError(c, err)
	}

	// The cart was ordered, clear it. Best effort; the order stands even if
	// this write fails.
	if userID, parseErr := primitive.ObjectIDFromHex(req.UserID); parseErr == nil {
		if clearErr := h.users.SaveCart(ctx, userID, nil); clearErr != nil {
			log.Printf("failed to clear cart for user %s: %v", req.UserID, clearErr)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(responses.UserResponse{
		Status:  fiber.StatusCreated,
		Success: true,
		Message: "Order placed successfully",
		Result:  &fiber.Map{"order": order},
	})
}

func (h *Handler) ListOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	result, err := h.service.ListOrders(ctx)
	if err != nil {
		return orderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Orders fetched successfully",
		Result: &fiber.Map{
			"allOrders":  result.AllOrders,
			"allMetrics": result.AllMetrics,
			"metrics":    result.Metrics,
		},
	})
}

type userOrdersRequest struct {
	UserID string `json:"userid"`
}

func (h *Handler) UserOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req userOrdersRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request format")
	}

	result, err := h.service.UserOrders(ctx, req.UserID)
	if err != nil {
		return orderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "User orders fetched successfully",
		Result: &fiber.Map{
			"totalOrders":    result.TotalOrders,
			"countLast60Min": result.CountLast60Min,
			"countLast2Days": result.CountLast2Days,
			"countLast1Week": result.CountLast1Week,
			"orders":         result.Orders,
		},
	})
}

func (h *Handler) VerifyPayment(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req orders.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request format")
	}

	if err := h.service.VerifyPayment(ctx, req); err != nil {
		return orderError(c, err)
	}

	message := "Payment verified successfully"
	if !req.Success {
		message = "Order cancelled and stock restored"
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: message,
	})
}

type statusUpdateRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req statusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request format")
	}

	if err := h.service.UpdateStatus(ctx, req.OrderID, req.Status); err != nil {
		return orderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Order status updated successfully",
	})
}

// orderError maps the service error taxonomy onto HTTP statuses.
func orderError(c *fiber.Ctx, err error) error {
	var (
		validationErr *orders.ValidationError
		notFoundErr   *orders.NotFoundError
		stockErr      *orders.InsufficientStockError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &stockErr):
		return badRequest(c, err.Error())
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
			Status:  fiber.StatusNotFound,
			Message: err.Error(),
		})
	default:
		log.Printf("order request failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Something went wrong, please try again later",
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
		Status:  fiber.StatusBadRequest,
		Message: message,
	})
}
