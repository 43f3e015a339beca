package feedbackController

import (
	"context"
	"time"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/models"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/responses"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/store"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	feedback store.FeedbackStore
	users    store.UserStore
	validate *validator.Validate
}

func NewHandler(feedback store.FeedbackStore, users store.UserStore) *Handler {
	return &Handler{
		feedback: feedback,
		users:    users,
		validate: validator.New(),
	}
}

type feedbackRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

func (h *Handler) AddFeedback(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req feedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request format")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Rating must be between 1 and 5")
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return badRequest(c, "Invalid product ID format")
	}

	userId, idOk := c.Locals("userId").(string)
	if !idOk || userId == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
		})
	}
	userObjectID, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user ID format",
		})
	}

	username := ""
	if user, err := h.users.GetUser(ctx, userObjectID); err == nil {
		username = user.UserName
	}

	feedback := models.Feedback{
		UserID:    userObjectID,
		ProductID: productID,
		UserName:  username,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	if err := h.feedback.InsertFeedback(ctx, &feedback); err != nil {
		return serverError(c, "Error saving feedback")
	}

	return c.Status(fiber.StatusCreated).JSON(responses.UserResponse{
		Status:  fiber.StatusCreated,
		Success: true,
		Message: "Feedback added successfully",
		Result:  &fiber.Map{"feedback": feedback},
	})
}

func (h *Handler) ProductFeedback(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Query("productId"))
	if err != nil {
		return badRequest(c, "Invalid product ID format")
	}

	feedback, err := h.feedback.FeedbackByProduct(ctx, productID)
	if err != nil {
		return serverError(c, "Error fetching feedback")
	}

	average, count, err := h.feedback.AverageRating(ctx, productID)
	if err != nil {
		return serverError(c, "Error aggregating ratings")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Success: true,
		Message: "Feedback fetched successfully",
		Result: &fiber.Map{
			"feedback":      feedback,
			"averageRating": average,
			"totalRatings":  count,
		},
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
		Status:  fiber.StatusBadRequest,
		Message: message,
	})
}

func serverError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
		Status:  fiber.StatusInternalServerError,
		Message: message,
	})
}
