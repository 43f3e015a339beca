package routes

import (
	cartController "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/cart"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/middlewares"

	"github.com/gofiber/fiber/v2"
)

func CartRoutes(app *fiber.App, h *cartController.Handler) {
	app.Get("/api/cart", middlewares.AuthMiddleware, h.GetCart)
	app.Post("/api/cart/add", middlewares.AuthMiddleware, h.AddToCart)
	app.Post("/api/cart/decrement", middlewares.AuthMiddleware, h.DecrementFromCart)
	app.Post("/api/cart/remove", middlewares.AuthMiddleware, h.RemoveFromCart)
	app.Post("/api/cart/merge", middlewares.AuthMiddleware, h.MergeCart)
}
