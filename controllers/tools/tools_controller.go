package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/models"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/responses"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/store"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	catalog  store.CatalogStore
	validate *validator.Validate
}

func NewHandler(catalog store.CatalogStore) *Handler {
	return &Handler{
		catalog:  catalog,
		validate: validator.New(),
	}
}

func (h *Handler) GetAllTools(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	tools, err := h.catalog.ListTools(ctx)
	if err != nil {
		return serverError(c, "Error fetching tools")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Fetched Tools",
		Result: &fiber.Map{
			"totalTools": len(tools),
			"tools":      tools,
		},
	})
}

func (h *Handler) FetchToolDetails(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	objectId, err := primitive.ObjectIDFromHex(c.Query("toolId"))
	if err != nil {
		return badRequest(c, "Invalid tool ID format")
	}

	tool, err := h.catalog.GetTool(ctx, objectId)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return notFound(c, "Tool not found")
		}
		return serverError(c, "Error fetching tool details")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Tool fetched successfully",
		Result:  &fiber.Map{"tool": tool},
	})
}

func (h *Handler) AddTool(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var tool models.Tool
	if err := c.BodyParser(&tool); err != nil {
		return badRequest(c, "Error parsing tool data")
	}
	if err := h.validate.Struct(tool); err != nil {
		return badRequest(c, "Tool name, price and category are required")
	}

	tool.ID = primitive.NilObjectID
	tool.CreatedAt = time.Now()
	if tool.Status == "" {
		tool.Status = "available"
	}

	if err := h.catalog.InsertTool(ctx, &tool); err != nil {
		return serverError(c, "Error inserting tool")
	}

	return c.Status(fiber.StatusCreated).JSON(responses.UserResponse{
		Status:  fiber.StatusCreated,
		Success: true,
		Message: "Tool added successfully",
		Result:  &fiber.Map{"tool": tool},
	})
}

func (h *Handler) UpdateTool(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var tool models.Tool
	if err := c.BodyParser(&tool); err != nil {
		return badRequest(c, "Error parsing tool data")
	}

	objectId, err := primitive.ObjectIDFromHex(c.Query("toolId"))
	if err != nil {
		return badRequest(c, "Invalid tool ID format")
	}
	tool.ID = objectId

	if err := h.catalog.UpdateTool(ctx, &tool); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return notFound(c, "Tool not found")
		}
		return serverError(c, "Error updating tool")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Tool updated successfully",
		Result:  &fiber.Map{"tool": tool},
	})
}

func (h *Handler) DeleteTool(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	objectId, err := primitive.ObjectIDFromHex(c.Query("toolId"))
	if err != nil {
		return badRequest(c, "Invalid tool ID format")
	}

	if err := h.catalog.DeleteTool(ctx, objectId); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return notFound(c, "Tool not found")
		}
		return serverError(c, "Error deleting tool")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Tool deleted successfully",
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
