package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/SamuelSnowball/Bookstore/internal/checkout"
	"github.com/SamuelSnowball/Bookstore/internal/client"
	"github.com/SamuelSnowball/Bookstore/internal/events"
	"github.com/SamuelSnowball/Bookstore/internal/handler"
	"github.com/SamuelSnowball/Bookstore/internal/repository"
	"github.com/SamuelSnowball/Bookstore/pkg/config"
	"github.com/SamuelSnowball/Bookstore/pkg/metrics"
	"github.com/SamuelSnowball/Bookstore/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("kafka_brokers", cfg.KafkaBrokers),
		zap.String("order_service_url", cfg.OrderServiceURL),
		zap.String("payment_service_url", cfg.PaymentServiceURL))

	// Initialize components
	dynamoClient, err := repository.NewDynamoDBClient(cfg)
	if err != nil {
		log.Fatal("Failed to create DynamoDB client:", err)
	}

	kafkaProducer, err := events.NewKafkaProducer(cfg.KafkaBrokers, logger)
	if err != nil {
		log.Fatal("Failed to create Kafka producer:", err)
	}
	defer kafkaProducer.Close()

	compensationProducer, err := events.NewCompensationProducer(cfg.KafkaBrokers, logger)
	if err != nil {
		log.Fatal("Failed to create compensation producer:", err)
	}
	defer compensationProducer.Close()

	orderRest := client.New("order-service", cfg.OrderServiceURL, cfg.UpstreamTimeout, logger)
	paymentRest := client.New("payment-service", cfg.PaymentServiceURL, cfg.UpstreamTimeout, logger)
	entityRest := client.New("entity-service", cfg.EntityServiceURL, cfg.UpstreamTimeout, logger)
	authRest := client.New("auth-service", cfg.AuthServiceURL, cfg.UpstreamTimeout, logger)

	cartClient := client.NewCartClient(orderRest)
	orderClient := client.NewOrderClient(orderRest)
	paymentClient := client.NewPaymentClient(paymentRest)
	bookClient := client.NewBookClient(entityRest)
	addressClient := client.NewAddressClient(entityRest)
	authClient := client.NewAuthClient(authRest)

	activationRepo := repository.NewActivationRepository(dynamoClient, cfg.CheckoutTableName)
	checkoutMetrics := metrics.NewCheckoutMetrics()

	orchestrator := checkout.NewOrchestrator(
		cartClient, orderClient, paymentClient, activationRepo, checkoutMetrics, logger)
	confirmer := checkout.NewConfirmer(
		paymentClient, paymentClient, activationRepo, kafkaProducer, compensationProducer, checkoutMetrics, logger)

	checkoutHandler := handler.NewCheckoutHandler(orchestrator, confirmer, activationRepo, logger)
	storefrontHandler := handler.NewStorefrontHandler(
		bookClient, cartClient, orderClient, addressClient, authClient, logger)

	// Setup Gin Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/checkout/session", checkoutHandler.CreateSession)
		v1.GET("/checkout/complete", checkoutHandler.Complete)
		v1.GET("/checkout/activations/:activationId", checkoutHandler.GetActivation)

		v1.GET("/books", storefrontHandler.ListBooks)
		v1.POST("/auth/login", storefrontHandler.Login)

		v1.GET("/cart", storefrontHandler.GetCart)
		v1.POST("/cart", storefrontHandler.AddCartItem)
		v1.PUT("/cart/:cartItemId", storefrontHandler.UpdateCartItem)
		v1.DELETE("/cart/:cartItemId", storefrontHandler.RemoveCartItem)

		v1.GET("/orders", storefrontHandler.GetOrders)

		v1.GET("/addresses", storefrontHandler.ListAddresses)
		v1.GET("/addresses/default", storefrontHandler.GetDefaultAddress)
		v1.POST("/addresses", storefrontHandler.CreateAddress)
		v1.PUT("/addresses/:addressId", storefrontHandler.UpdateAddress)
		v1.DELETE("/addresses/:addressId", storefrontHandler.DeleteAddress)
		v1.PATCH("/addresses/:addressId/set-default", storefrontHandler.SetDefaultAddress)

		v1.GET("/health", func(c *gin.Context) {
			status := gin.H{
				"status":  "healthy",
				"service": "checkout-service",
				"port":    cfg.Port,
			}
			if err := kafkaProducer.HealthCheck(); err != nil {
				status["kafka"] = "unhealthy"
				c.JSON(503, status)
				return
			}
			status["kafka"] = "healthy"
			c.JSON(200, status)
		})
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
