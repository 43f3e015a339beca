package controllers

import (
	"context"
	"errors"
	"strconv"
	"time"

	catalogsvc "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/services/catalog"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/models"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/responses"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/store"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	catalog  *catalogsvc.Service
	validate *validator.Validate
}

func NewHandler(catalog *catalogsvc.Service) *Handler {
	return &Handler{
		catalog:  catalog,
		validate: validator.New(),
	}
}

func (h *Handler) GetAllProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	if err != nil || limit < 1 {
		limit = 10
	}

	products, err := h.catalog.ListProducts(ctx, page, limit)
	if err != nil {
		return serverError(c, "Error fetching products")
	}

	total, err := h.catalog.CountProducts(ctx)
	if err != nil {
		return serverError(c, "Error counting products")
	}
	totalPages := (total + limit - 1) / limit

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Fetched Products",
		Result: &fiber.Map{
			"currentPage":   page,
			"totalPages":    totalPages,
			"totalProducts": total,
			"products":      products,
		},
	})
}

func (h *Handler) FetchProductDetails(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	objectId, err := primitive.ObjectIDFromHex(c.Query("productId"))
	if err != nil {
		return badRequest(c, "Invalid product ID format")
	}

	product, err := h.catalog.GetProduct(ctx, objectId)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return notFound(c, "Product not found")
		}
		return serverError(c, "Error fetching product details")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Product fetched successfully",
		Result:  &fiber.Map{"product": product},
	})
}

func (h *Handler) AddProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Error parsing product data")
	}
	if err := h.validate.Struct(product); err != nil {
		return badRequest(c, "Product name, price and category are required")
	}

	product.ID = primitive.NilObjectID
	product.CreatedAt = time.Now()
	if product.Status == "" {
		product.Status = "available"
	}

	if err := h.catalog.AddProduct(ctx, &product); err != nil {
		return serverError(c, "Error inserting product")
	}

	return c.Status(fiber.StatusCreated).JSON(responses.UserResponse{
		Status:  fiber.StatusCreated,
		Success: true,
		Message: "Product added successfully",
		Result:  &fiber.Map{"product": product},
	})
}

func (h *Handler) UpdateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Error parsing product data")
	}

	objectId, err := primitive.ObjectIDFromHex(c.Query("productId"))
	if err != nil {
		return badRequest(c, "Invalid product ID format")
	}
	product.ID = objectId

	if err := h.catalog.UpdateProduct(ctx, &product); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return notFound(c, "Product not found")
		}
		return serverError(c, "Error updating product")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Product updated successfully",
		Result:  &fiber.Map{"product": product},
	})
}

func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	objectId, err := primitive.ObjectIDFromHex(c.Query("productId"))
	if err != nil {
		return badRequest(c, "Invalid product ID format")
	}

	if err := h.catalog.DeleteProduct(ctx, objectId); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return notFound(c, "Product not found")
		}
		return serverError(c, "Error deleting product")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Product deleted successfully",
	})
}

func (h *Handler) SearchProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	name := c.Query("name")
	category := c.Query("category")

	products, err := h.catalog.SearchProducts(ctx, name, category)
	if err != nil {
		return serverError(c, "Error in fetching products")
	}

	if len(products) == 0 {
		return notFound(c, "No products found")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Products found",
		Result: &fiber.Map{
			"totalProducts": len(products),
			"products":      products,
		},
	})
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
