package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nabokov223u/CRM-Originarsa/config"
	"github.com/nabokov223u/CRM-Originarsa/controllers"
	"github.com/nabokov223u/CRM-Originarsa/middleware"
	"github.com/nabokov223u/CRM-Originarsa/notifier"
	"github.com/nabokov223u/CRM-Originarsa/queue"
	"github.com/nabokov223u/CRM-Originarsa/repository"
	"github.com/nabokov223u/CRM-Originarsa/routes"
	"github.com/nabokov223u/CRM-Originarsa/service"
	"github.com/nabokov223u/CRM-Originarsa/utils"
)

func main() {
	utils.InitLogger()

	cfg := config.LoadConfig()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := repository.InitMongoDB(cfg.MongoURI, cfg.MongoDB); err != nil {
		utils.Logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer repository.CloseMongoDB()

	leadStore := repository.NewLeadStore()
	appStore := repository.NewApplicationStore()
	activityStore := repository.NewActivityStore()

	leadService := service.NewUnifiedLeadService(leadStore, appStore)
	statusService := service.NewStatusService(leadStore, appStore, activityStore)

	// notification pipeline, enabled only when a broker URL is configured
	var producer queue.ProducerInterface
	if cfg.AMQPUrl != "" {
		rmq, err := queue.NewRabbitMQ(cfg.AMQPUrl)
		if err != nil {
			utils.Logger.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rmq.Close()

		producer = queue.NewProducer(rmq.Ch)

		var emailChannel notifier.EmailChannel
		if cfg.SMTPHost != "" {
			emailChannel = notifier.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.FromMail)
		}
		var whatsAppChannel notifier.WhatsAppChannel
		if cfg.WhatsAppToken != "" && cfg.WhatsAppPhoneID != "" {
			whatsAppChannel = notifier.NewWhatsAppClient(cfg.WhatsAppToken, cfg.WhatsAppPhoneID, cfg.WhatsAppBaseURL)
		}

		dispatcher := notifier.NewDispatcher(emailChannel, whatsAppChannel)
		worker := queue.NewWorker(rmq.Ch, dispatcher)
		if err := worker.Start(queue.QueueName); err != nil {
			utils.Logger.Fatal().Err(err).Msg("failed to start notification worker")
		}
	} else {
		utils.Logger.Info().Msg("AMQP_URL not set, notification pipeline disabled")
	}

	controllers.Setup(leadService, statusService, appStore, activityStore, producer)

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	routes.RegisterRoutes(router)

	if err := repository.InitializeCollections(); err != nil {
		utils.Logger.Error().Err(err).Msg("failed to initialize collections")
	}
	if err := repository.InitializeAdminAccount(); err != nil {
		utils.Logger.Error().Err(err).Msg("failed to bootstrap admin account")
	}

	if cfg.SeedDemoData {
		if err := repository.SeedDemoData(context.Background()); err != nil {
			utils.Logger.Error().Err(err).Msg("demo seed failed")
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Logger.Info().Msgf("server listening on port %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Logger.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal().Err(err).Msg("server shutdown failed")
	}

	utils.Logger.Info().Msg("server stopped cleanly")
}
