package routes

import (
	controllers "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/products"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/middlewares"

	"github.com/gofiber/fiber/v2"
)

func ProductsRoutes(app *fiber.App, h *controllers.Handler) {
	app.Get("/api/product/list", h.GetAllProducts)
	app.Get("/api/product/details", h.FetchProductDetails)
	app.Get("/api/product/search", h.SearchProducts)

	// Seller-facing catalog writes
	app.Post("/api/product/add", middlewares.AuthMiddleware, middlewares.RequireFarmer, h.AddProduct)
	app.Put("/api/product/update", middlewares.AuthMiddleware, middlewares.RequireFarmer, h.UpdateProduct)
	app.Delete("/api/product/delete", middlewares.AuthMiddleware, middlewares.RequireFarmer, h.DeleteProduct)
}
