package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/configs"
	adminController "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/admin"
	cartController "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/cart"
	feedbackController "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/feedback"
	orderController "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/orders"
	productsController "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/products"
	toolsController "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/tools"
	userController "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/user"
	wishlistController "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/controllers/wishlist"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/routes"
	catalogsvc "github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/services/catalog"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/services/orders"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	configs.LoadEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := configs.ConnectMongoDB(ctx, configs.EnvMongoURI(), configs.EnvDatabaseName())
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Stores
	catalogStore := store.NewMongoCatalog(db)
	orderStore := store.NewMongoOrders(db)
	userStore := store.NewMongoUsers(db)
	feedbackStore := store.NewMongoFeedback(db)

	// Cache is optional; without REDIS_ADDR every catalog read hits Mongo.
	var cache store.CatalogCache
	if addr := configs.EnvRedisAddr(); addr != "" {
		redisClient, err := configs.ConnectRedis(ctx, addr, configs.EnvRedisPassword())
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		cache = store.NewRedisCache(redisClient)
		log.Println("Connected to Redis")
	}

	// Payment gateway is optional; without keys only cash-on-delivery works.
	var gateway orders.PaymentGateway
	if keyID := configs.EnvRazorpayKeyId(); keyID != "" {
		gateway = orders.NewRazorpayGateway(keyID, configs.EnvRazorpayKeySecret())
	}

	// Services
	catalogService := catalogsvc.NewService(catalogStore, cache)
	orderService := orders.NewService(catalogStore, orderStore, gateway)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Static("/images", "./uploads")

	routes.UserRoutes(app, userController.NewHandler(userStore))
	routes.ProductsRoutes(app, productsController.NewHandler(catalogService))
	routes.ToolsRoutes(app, toolsController.NewHandler(catalogStore))
	routes.CartRoutes(app, cartController.NewHandler(userStore, catalogStore))
	routes.WishlistRoutes(app, wishlistController.NewHandler(userStore, catalogStore))
	routes.OrderRoutes(app, orderController.NewHandler(orderService, userStore))
	routes.AdminRoutes(app, adminController.NewHandler(userStore, catalogStore, orderStore))
	routes.FeedbackRoutes(app, feedbackController.NewHandler(feedbackStore, userStore))

	go func() {
		if err := app.Listen(":" + configs.EnvPort()); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Harvest Hub listening on port %s", configs.EnvPort())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := db.Client().Disconnect(context.Background()); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
	log.Println("Server stopped")
}
