package routes

import (
	orderController "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/orders"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/middlewares"

	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App, h *orderController.Handler) {
	app.Post("/api/order/place", middlewares.AuthMiddleware, h.PlaceOrder)
	app.Post("/api/order/userorders", middlewares.AuthMiddleware, h.UserOrders)
	app.Post("/api/order/verify", middlewares.AuthMiddleware, h.VerifyPayment)

	app.Get("/api/order/list", middlewares.AuthMiddleware, middlewares.RequireAdmin, h.ListOrders)
	app.Post("/api/order/status", middlewares.AuthMiddleware, middlewares.RequireAdmin, h.UpdateStatus)
}
