package routes

import (
	feedbackController "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/feedback"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/middlewares"

	"github.com/gofiber/fiber/v2"
)

func FeedbackRoutes(app *fiber.App, h *feedbackController.Handler) {
	app.Get("/api/feedback", h.ProductFeedback)
	app.Post("/api/feedback/add", middlewares.AuthMiddleware, h.AddFeedback)
}
