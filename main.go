package main

import (
	"log"
	"net/http"

	"backoffice-service/cache"
	"backoffice-service/config"
	"backoffice-service/consumers"
	"backoffice-service/controllers"
	"backoffice-service/database"
	"backoffice-service/middlewares"
	"backoffice-service/models"
	"backoffice-service/rabbitmq"
	"backoffice-service/repositories"
	"backoffice-service/services"
	"backoffice-service/store/mysqlstore"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.LoadConfig()

	if err := database.InitDB(cfg); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer database.CloseDB()

	var productCache services.ProductCache
	if cfg.RedisAddr != "" {
		redisCache := cache.NewProductCache(cfg.RedisAddr)
		defer redisCache.Close()
		productCache = redisCache
	}

	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		rmq, err := rabbitmq.NewRabbitMQ(cfg)
		if err != nil {
			log.Printf("RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			defer rmq.Close()
			if err := rmq.SetupQueues(); err != nil {
				log.Fatalf("Failed to setup RabbitMQ queues: %v", err)
			}
			consumers.StartOrderConsumer(rmq.Channel, cfg)
			events = rmq
		}
	}

	db := database.DB
	txStore := mysqlstore.New(db)

	userRepo := repositories.NewUserRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	lineItemRepo := repositories.NewLineItemRepository(db)

	userService := services.NewUserService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	contactService := services.NewContactService(contactRepo, userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo, productCache)
	orderService := services.NewOrderService(txStore, userRepo, orderRepo, events, productCache)
	lineItemService := services.NewLineItemService(txStore, lineItemRepo, events, productCache)

	userController := controllers.NewUserController(userService)
	contactController := controllers.NewContactController(contactService)
	categoryController := controllers.NewCategoryController(categoryService)
	productController := controllers.NewProductController(productService)
	orderController := controllers.NewOrderController(orderService)
	lineItemController := controllers.NewLineItemController(lineItemService)

	r := gin.Default()

	r.Use(middlewares.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/api/auth/login", userController.Login)

	authGroup := r.Group("/api")
	authGroup.Use(middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		managerOnly := middlewares.PermittedRoles(models.RoleManager)

		authGroup.POST("/users", managerOnly, userController.Register)
		authGroup.GET("/users", managerOnly, userController.GetAll)
		authGroup.GET("/users/:username", userController.Get)
		authGroup.PATCH("/users/:username", managerOnly, userController.Update)

		authGroup.POST("/users/:username/contact", contactController.Create)
		authGroup.GET("/users/:username/contact", contactController.Get)
		authGroup.PATCH("/users/:username/contact", contactController.Update)
		authGroup.DELETE("/users/:username/contact", contactController.Delete)

		authGroup.POST("/categories", managerOnly, categoryController.Create)
		authGroup.GET("/categories", categoryController.GetAll)
		authGroup.GET("/categories/:id", categoryController.Get)
		authGroup.PUT("/categories/:id", managerOnly, categoryController.Update)
		authGroup.DELETE("/categories/:id", managerOnly, categoryController.Delete)

		authGroup.POST("/products", managerOnly, productController.Create)
		authGroup.GET("/products", productController.GetAll)
		authGroup.GET("/products/:id", productController.Get)
		authGroup.PATCH("/products/:id", managerOnly, productController.Update)
		authGroup.DELETE("/products/:id", managerOnly, productController.Delete)

		authGroup.POST("/orders", orderController.Create)
		authGroup.GET("/orders", orderController.GetAll)
		authGroup.GET("/orders/:id", orderController.Get)
		authGroup.DELETE("/orders/:id", orderController.Delete)

		authGroup.POST("/order-line-items", lineItemController.Create)
		authGroup.GET("/order-line-items", lineItemController.GetAll)
		authGroup.GET("/order-line-items/:id", lineItemController.Get)
		authGroup.PATCH("/order-line-items/:id", lineItemController.Update)
		authGroup.DELETE("/order-line-items/:id", lineItemController.Delete)
	}

	addr := ":" + cfg.HTTPPort
	log.Printf("Back office service starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
