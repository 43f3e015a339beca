package adminController

import (
	"context"
	"time"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/models"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/responses"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/store"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	users   store.UserStore
	catalog store.CatalogStore
	orders  store.OrderStore
}

func NewHandler(users store.UserStore, catalog store.CatalogStore, orders store.OrderStore) *Handler {
	return &Handler{
		users:   users,
		catalog: catalog,
		orders:  orders,
	}
}

// Dashboard gathers the counts the admin landing page renders. Each number
// is an independent query over the live collections.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	totalUsers, err := h.users.CountUsers(ctx)
	if err != nil {
		return serverError(c, "Error counting users")
	}
	totalFarmers, err := h.users.CountByRole(ctx, models.RoleFarmer)
	if err != nil {
		return serverError(c, "Error counting farmers")
	}
	totalCustomers, err := h.users.CountByRole(ctx, models.RoleCustomer)
	if err != nil {
		return serverError(c, "Error counting customers")
	}
	totalProducts, err := h.catalog.CountProducts(ctx)
	if err != nil {
		return serverError(c, "Error counting products")
	}
	totalTools, err := h.catalog.CountTools(ctx)
	if err != nil {
		return serverError(c, "Error counting tools")
	}
	totalOrders, err := h.orders.CountOrders(ctx)
	if err != nil {
		return serverError(c, "Error counting orders")
	}
	revenue, err := h.orders.Revenue(ctx)
	if err != nil {
		return serverError(c, "Error aggregating revenue")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Dashboard data fetched successfully",
		Result: &fiber.Map{
			"totalUsers":     totalUsers,
			"totalFarmers":   totalFarmers,
			"totalCustomers": totalCustomers,
			"totalProducts":  totalProducts,
			"totalTools":     totalTools,
			"totalOrders":    totalOrders,
			"revenue":        revenue,
		},
	})
}

func (h *Handler) TopSellers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	sellers, err := h.orders.TopSellers(ctx, 5)
	if err != nil {
		return serverError(c, "Error aggregating top sellers")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Top sellers fetched successfully",
		Result:  &fiber.Map{"topSellers": sellers},
	})
}

func (h *Handler) RecentOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	allOrders, err := h.orders.ListOrders(ctx)
	if err != nil {
		return serverError(c, "Error fetching orders")
	}

	if len(allOrders) > 10 {
		allOrders = allOrders[:10]
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Recent orders fetched successfully",
		Result:  &fiber.Map{"orders": allOrders},
	})
}

func serverError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
		Status:  fiber.StatusInternalServerError,
		Message: message,
	})
}
