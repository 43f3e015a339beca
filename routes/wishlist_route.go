package routes

import (
	wishlistController "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/wishlist"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/middlewares"

	"github.com/gofiber/fiber/v2"
)

func WishlistRoutes(app *fiber.App, h *wishlistController.Handler) {
	app.Get("/api/wishlist", middlewares.AuthMiddleware, h.GetWishlist)
	app.Post("/api/wishlist/add", middlewares.AuthMiddleware, h.AddToWishlist)
	app.Post("/api/wishlist/remove", middlewares.AuthMiddleware, h.RemoveFromWishlist)
}
