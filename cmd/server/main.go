package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"pitak-order-api/internal/config"
	"pitak-order-api/internal/controller"
	"pitak-order-api/internal/dto"
	"pitak-order-api/internal/events"
	"pitak-order-api/internal/line"
	"pitak-order-api/internal/logger"
	"pitak-order-api/internal/middleware"
	"pitak-order-api/internal/notion"
	"pitak-order-api/internal/service"
	"pitak-order-api/internal/slips"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatal(err)
	}
	defer zap.L().Sync() //nolint:errcheck

	// External collaborators
	notionClient := notion.NewClient(cfg.NotionToken, cfg.NotionDatabaseID)
	lineClient := line.NewClient(cfg.LineChannelAccessToken)

	// MongoDB holds the uploaded payment slips (GridFS)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	db := client.Database(cfg.MongoDBName)

	slipStore, err := slips.NewStore(db, cfg.PublicBaseURL)
	if err != nil {
		log.Fatal(err)
	}

	// RabbitMQ carries the post-commit order events
	conn, err := amqp091.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("rabbitmq dial: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbitmq channel: %v", err)
	}

	publisher, err := events.Setup(ch)
	if err != nil {
		log.Fatalf("rabbitmq setup: %v", err)
	}

	notifier := events.NewNotifyConsumer(lineClient, cfg.AdminLineUserID)
	if err := events.SetupNotifyConsumer(ch, notifier); err != nil {
		log.Fatalf("rabbitmq consumer: %v", err)
	}

	// Services and handlers
	orderService := service.NewOrderService(notionClient, publisher)
	ctrl := controller.NewOrderController(orderService, slipStore, lineClient, notionClient)

	// Router
	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	// Public routes
	r.GET("/api/health", ctrl.Health)
	r.POST("/api/orders", ctrl.CreateOrder)
	r.GET("/api/orders/:orderId", ctrl.GetOrder)
	r.POST("/api/orders/:orderId/slip", ctrl.UploadSlip)
	r.GET("/uploads/:filename", ctrl.DownloadSlip)
	r.POST("/webhook", ctrl.Webhook)

	// Admin routes
	admin := r.Group("/api")
	admin.Use(middleware.AdminOnly(cfg.AdminKey))
	admin.GET("/orders", ctrl.ListOrders)
	admin.PATCH("/orders/:orderId/status", ctrl.UpdateStatus)
	admin.GET("/orders/:orderId/pdf", ctrl.GetPDF)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.Fail("NOT_FOUND", "Route "+c.Request.URL.Path+" not found"))
	})

	zap.L().Info("pitak order api running",
		zap.String("port", cfg.Port),
		zap.Bool("notion", notionClient.Available()),
		zap.Bool("line", lineClient.Configured()))

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
