package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayhive/config"
	"stayhive/cron"
	"stayhive/handlers"
	"stayhive/middleware"
	"stayhive/routes"
	"stayhive/services/booking"
	"stayhive/services/offers"
	"stayhive/services/payment"
	"stayhive/services/rooms"
	"stayhive/services/tasks"
	"stayhive/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()
	utils.StartHealthMonitor([]*redis.Client{utils.GetSessionCacheClient()})

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// External collaborators.
	roomsClient := rooms.NewHTTPClient(config.AppConfig.RoomAPIBaseURL, logger)
	offersClient := offers.NewHTTPClient(config.AppConfig.OfferAPIBaseURL, logger)
	gateway := payment.NewStripeGateway(logger)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	queue := tasks.NewQueue(asynqClient)

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	store := booking.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)

	bookingService := booking.NewBookingSessionService(
		store,
		roomsClient,
		offersClient,
		gateway,
		queue,
		booking.NewNotifier(),
		logger,
		config.AppConfig.TaxRate,
		config.AppConfig.Currency,
	)

	bookingHandler := handlers.NewBookingHandler(bookingService, roomsClient, logger)
	routes.RegisterRoutes(router, bookingHandler)

	// Deliver confirmed bookings in the background.
	cron.InitSubmissionWorker()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
