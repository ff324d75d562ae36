package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cleanops/internal/config"
	"cleanops/internal/database"
	"cleanops/internal/middleware"
	"cleanops/internal/modules/assignment"
	"cleanops/internal/modules/auth"
	"cleanops/internal/modules/billing"
	"cleanops/internal/modules/dashboard"
	"cleanops/internal/modules/favorite"
	"cleanops/internal/modules/job"
	"cleanops/internal/modules/notification"
	"cleanops/internal/modules/offer"
	"cleanops/internal/modules/property"
	"cleanops/internal/modules/review"
	jwtsvc "cleanops/internal/pkg/jwt"
	"cleanops/internal/repository"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("config")
	}

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.WithError(err).Fatal("database")
	}

	ownerRepo := repository.NewOwnerRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	jobRepo := repository.NewJobRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	notificationService := notification.NewService(notificationRepo, logger)
	notificationHandler := notification.NewHandler(notificationService)

	authService := auth.NewService(ownerRepo, j)
	authHandler := auth.NewHandler(authService)

	propertyService := property.NewService(propertyRepo)
	propertyHandler := property.NewHandler(propertyService)

	jobService := job.NewService(jobRepo, propertyRepo, applicationRepo, assignmentRepo, notificationService)
	jobHandler := job.NewHandler(jobService)

	offerService := offer.NewService(offerRepo, jobRepo, propertyRepo, workerRepo, assignmentRepo, notificationService)
	offerHandler := offer.NewHandler(offerService)

	assignmentService := assignment.NewService(assignmentRepo, jobRepo, propertyRepo, workerRepo, notificationService)
	assignmentHandler := assignment.NewHandler(assignmentService)

	billingService := billing.NewService(invoiceRepo, notificationService)
	billingHandler := billing.NewHandler(billingService)

	favoriteService := favorite.NewService(favoriteRepo, workerRepo)
	favoriteHandler := favorite.NewHandler(favoriteService)

	reviewService := review.NewService(reviewRepo, assignmentRepo, jobRepo, propertyRepo, workerRepo)
	reviewHandler := review.NewHandler(reviewService)

	dashboardService := dashboard.NewService(jobRepo, invoiceRepo, reviewRepo, notificationRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			propertyHandler.RegisterRoutes(protected)
			jobHandler.RegisterRoutes(protected)
			offerHandler.RegisterRoutes(protected)
			assignmentHandler.RegisterRoutes(protected)
			billingHandler.RegisterRoutes(protected)
			favoriteHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)
		}
	}

	logger.WithField("port", cfg.Port).Info("starting api")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("server")
	}
}
