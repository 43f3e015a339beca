package routes

import (
	adminController "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/admin"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/middlewares"

	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App, h *adminController.Handler) {
	app.Get("/api/admin/dashboard", middlewares.AuthMiddleware, middlewares.RequireAdmin, h.Dashboard)
	app.Get("/api/admin/topsellers", middlewares.AuthMiddleware, middlewares.RequireAdmin, h.TopSellers)
	app.Get("/api/admin/recentorders", middlewares.AuthMiddleware, middlewares.RequireAdmin, h.RecentOrders)
}
